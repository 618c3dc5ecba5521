package trainings

import (
	"context"

	"github.com/kongenga/kongenga/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, skip, limit int) ([]*models.Training, error)
	Get(ctx context.Context, id string) (*models.Training, error)
	// ListBySkill returns the active trainings whose skills contain skill.
	ListBySkill(ctx context.Context, skill string) ([]*models.Training, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.Training, error)
	Create(ctx context.Context, t *models.Training) error
	Count(ctx context.Context) (int, error)
}
