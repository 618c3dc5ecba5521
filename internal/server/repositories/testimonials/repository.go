// Package testimonials persists user-submitted testimonials. New entries
// are pending until a site manager approves them; only approved ones are
// publicly listed.
package testimonials

import (
	"context"

	"github.com/kongenga/kongenga/internal/server/models"
)

type Repository interface {
	ListApproved(ctx context.Context, skip, limit int) ([]*models.Testimonial, error)
	ListApprovedByJob(ctx context.Context, jobID string) ([]*models.Testimonial, error)
	ListPending(ctx context.Context) ([]*models.Testimonial, error)
	Create(ctx context.Context, t *models.Testimonial) error
	Approve(ctx context.Context, id string) error
	Verify(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int, error)
}
