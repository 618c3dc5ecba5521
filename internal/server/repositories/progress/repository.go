// Package progress persists the per-user engagement counters.
package progress

import (
	"context"

	"github.com/kongenga/kongenga/internal/server/models"
)

type Repository interface {
	// Get returns the stored record or common.ErrorNotFound.
	Get(ctx context.Context, userID string) (*models.Progress, error)
	// Save upserts the whole record.
	Save(ctx context.Context, userID string, p models.Progress) error
}
