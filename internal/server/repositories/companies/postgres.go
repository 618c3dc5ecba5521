package companies

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

const selectCompanies = `SELECT id, name, description, logo, website, location, sector_id, size,
		   is_active, created_at
		 FROM companies`

type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(row scanner) (*models.Company, error) {
	c := &models.Company{}
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Logo, &c.Website, &c.Location,
		&c.SectorID, &c.Size, &c.IsActive, &c.CreatedAt)
	return c, err
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Company, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) List(ctx context.Context, skip, limit int) ([]*models.Company, error) {
	query := selectCompanies + ` WHERE is_active ORDER BY name, id OFFSET $1 LIMIT $2`
	return r.query(ctx, query, skip, limit)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Company, error) {
	c, err := scanCompany(r.db.QueryRowContext(ctx, selectCompanies+` WHERE id = $1 AND is_active`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Company, error) {
	if len(ids) == 0 {
		return []*models.Company{}, nil
	}
	query := selectCompanies + ` WHERE is_active AND id IN (SELECT jsonb_array_elements_text($1::jsonb)) ORDER BY name, id`
	return r.query(ctx, query, models.StringList(ids))
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Company) error {
	query :=
		`INSERT INTO companies (id, name, description, logo, website, location, sector_id, size, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		 RETURNING is_active, created_at`

	err := r.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Description, c.Logo, c.Website,
		c.Location, c.SectorID, c.Size).Scan(&c.IsActive, &c.CreatedAt)
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
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM companies WHERE is_active`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
