package testimonials

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kongenga/kongenga/internal/common"
	"github.com/kongenga/kongenga/internal/dbx"
	"github.com/kongenga/kongenga/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectTestimonials = `SELECT id, name, position, company, quote, job_id, author_id,
		   is_verified, is_approved, created_at
		 FROM testimonials`

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Testimonial, 0)
	for rows.Next() {
		t := &models.Testimonial{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Position, &t.Company, &t.Quote, &t.JobID,
			&t.AuthorID, &t.IsVerified, &t.IsApproved, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) ListApproved(ctx context.Context, skip, limit int) ([]*models.Testimonial, error) {
	query := selectTestimonials + ` WHERE is_approved ORDER BY created_at DESC, id OFFSET $1 LIMIT $2`
	return r.query(ctx, query, skip, limit)
}

func (r *PostgresRepository) ListApprovedByJob(ctx context.Context, jobID string) ([]*models.Testimonial, error) {
	query := selectTestimonials + ` WHERE is_approved AND job_id = $1 ORDER BY created_at DESC, id`
	return r.query(ctx, query, jobID)
}

func (r *PostgresRepository) ListPending(ctx context.Context) ([]*models.Testimonial, error) {
	query := selectTestimonials + ` WHERE NOT is_approved ORDER BY created_at, id`
	return r.query(ctx, query)
}

// Create stores t as pending and unverified regardless of its flags.
func (r *PostgresRepository) Create(ctx context.Context, t *models.Testimonial) error {
	query :=
		`INSERT INTO testimonials (id, name, position, company, quote, job_id, author_id,
		   is_verified, is_approved)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, FALSE)
		 RETURNING is_verified, is_approved, created_at`

	err := r.db.QueryRowContext(ctx, query, t.ID, t.Name, t.Position, t.Company, t.Quote,
		t.JobID, t.AuthorID).Scan(&t.IsVerified, &t.IsApproved, &t.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: unknown job %q", common.ErrorValidation, t.JobID)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, id string) error {
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Approve(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE testimonials SET is_approved = TRUE WHERE id = $1`, id)
}

func (r *PostgresRepository) Verify(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE testimonials SET is_verified = TRUE WHERE id = $1`, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
}

func (r *PostgresRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM testimonials WHERE NOT is_approved`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
