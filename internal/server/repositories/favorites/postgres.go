package favorites

import (
	"context"
	"fmt"

	"github.com/kongenga/kongenga/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Exists locks the pair's row (when present) so concurrent toggles of the
// same pair inside transactions serialize.
func (r *PostgresRepository) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM favorites WHERE user_id = $1 AND job_id = $2 FOR UPDATE
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, jobID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Add(ctx context.Context, userID, jobID string) error {
	query :=
		`INSERT INTO favorites (user_id, job_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, job_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, jobID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, jobID string) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND job_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, jobID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListJobIDs skips pairs whose job was soft-deleted; the pairs themselves
// stay so the user can still remove them.
func (r *PostgresRepository) ListJobIDs(ctx context.Context, userID string) ([]string, error) {
	query :=
		`SELECT f.job_id FROM favorites f
		 JOIN jobs j ON j.id = f.job_id
		 WHERE f.user_id = $1 AND j.is_active
		 ORDER BY f.created_at, f.job_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ids, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM favorites`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
