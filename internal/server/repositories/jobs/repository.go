// Package jobs persists the job catalog. Deleting a job only clears its
// is_active flag; inactive jobs are invisible to every list and lookup
// except GetAny.
package jobs

import (
	"context"

	"github.com/kongenga/kongenga/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, f models.JobFilter) ([]*models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	// ListByIDs returns the active jobs among ids, in the order of ids.
	ListByIDs(ctx context.Context, ids []string) ([]*models.Job, error)
	Create(ctx context.Context, j *models.Job) error
	Update(ctx context.Context, j *models.Job) error
	SoftDelete(ctx context.Context, id string) error
	ListRecent(ctx context.Context, limit int) ([]*models.Job, error)
	CountActive(ctx context.Context) (int, error)
	SectorStats(ctx context.Context) ([]models.SectorStat, error)
}
