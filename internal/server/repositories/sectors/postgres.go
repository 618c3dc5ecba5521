package sectors

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

const selectSectors = `SELECT s.id, s.name, s.description, s.icon, s.color, s.background_image,
		   s.growth, s.is_active, s.created_at,
		   (SELECT count(*) FROM jobs j WHERE j.sector_id = s.id AND j.is_active) AS job_count
		 FROM sectors s`

type scanner interface {
	Scan(dest ...any) error
}

func scanSector(row scanner) (*models.Sector, error) {
	s := &models.Sector{}
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Icon, &s.Color, &s.BackgroundImage,
		&s.Growth, &s.IsActive, &s.CreatedAt, &s.JobCount)
	return s, err
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Sector, error) {
	query := selectSectors + ` WHERE s.is_active ORDER BY s.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Sector, 0)
	for rows.Next() {
		s, err := scanSector(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Sector, error) {
	query := selectSectors + ` WHERE s.id = $1`

	s, err := scanSector(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Sector) error {
	query :=
		`INSERT INTO sectors (id, name, description, icon, color, background_image, growth, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, s.ID, s.Name, s.Description, s.Icon, s.Color,
		s.BackgroundImage, s.Growth, s.IsActive).Scan(&s.CreatedAt)
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
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM sectors WHERE is_active`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
