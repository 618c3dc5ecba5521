// Package stats persists the single platform statistics snapshot.
package stats

import (
	"context"

	"github.com/kongenga/kongenga/internal/server/models"
)

type Repository interface {
	// Get returns the snapshot or common.ErrorNotFound before the first refresh.
	Get(ctx context.Context) (*models.PlatformStatistics, error)
	Save(ctx context.Context, s *models.PlatformStatistics) error
}
