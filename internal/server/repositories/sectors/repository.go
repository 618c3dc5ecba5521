// Package sectors persists the career sectors. A sector's job count is not
// stored; it is computed from the active jobs on every read.
package sectors

import (
	"context"

	"github.com/kongenga/kongenga/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Sector, error)
	Get(ctx context.Context, id string) (*models.Sector, error)
	Create(ctx context.Context, s *models.Sector) error
	Count(ctx context.Context) (int, error)
}
