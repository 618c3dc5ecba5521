package trainings

import (
	"context"
	"database/sql"
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

const selectTrainings = `SELECT id, name, provider, description, duration, cost, level, format,
		   external_link, skills, certificate, is_active, created_at
		 FROM trainings`

type scanner interface {
	Scan(dest ...any) error
}

func scanTraining(row scanner) (*models.Training, error) {
	t := &models.Training{}
	err := row.Scan(&t.ID, &t.Name, &t.Provider, &t.Description, &t.Duration, &t.Cost,
		&t.Level, &t.Format, &t.ExternalLink, &t.Skills, &t.Certificate, &t.IsActive, &t.CreatedAt)
	return t, err
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Training, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Training, 0)
	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) List(ctx context.Context, skip, limit int) ([]*models.Training, error) {
	query := selectTrainings + ` WHERE is_active ORDER BY id OFFSET $1 LIMIT $2`
	return r.query(ctx, query, skip, limit)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Training, error) {
	t, err := scanTraining(r.db.QueryRowContext(ctx, selectTrainings+` WHERE id = $1 AND is_active`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) ListBySkill(ctx context.Context, skill string) ([]*models.Training, error) {
	query := selectTrainings + ` WHERE is_active AND skills @> jsonb_build_array($1::text) ORDER BY id`
	return r.query(ctx, query, skill)
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Training, error) {
	if len(ids) == 0 {
		return []*models.Training{}, nil
	}
	query := selectTrainings + ` WHERE is_active AND id IN (SELECT jsonb_array_elements_text($1::jsonb)) ORDER BY id`
	return r.query(ctx, query, models.StringList(ids))
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Training) error {
	query :=
		`INSERT INTO trainings (id, name, provider, description, duration, cost, level, format,
		   external_link, skills, certificate, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE)
		 RETURNING is_active, created_at`

	err := r.db.QueryRowContext(ctx, query, t.ID, t.Name, t.Provider, t.Description, t.Duration,
		t.Cost, t.Level, t.Format, t.ExternalLink, t.Skills, t.Certificate,
	).Scan(&t.IsActive, &t.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM trainings WHERE is_active`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
