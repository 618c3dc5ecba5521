package companies

import (
	"context"

	"github.com/kongenga/kongenga/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, skip, limit int) ([]*models.Company, error)
	Get(ctx context.Context, id string) (*models.Company, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.Company, error)
	Create(ctx context.Context, c *models.Company) error
	Count(ctx context.Context) (int, error)
}
