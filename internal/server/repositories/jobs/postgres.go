package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

const selectJobs = `SELECT id, title, sector_id, description, education, salary_min, salary_max,
		   salary_currency, hiring_rate, growth_projection, skills, company_ids, training_ids,
		   requirements, work_environment, career_path, is_active, created_at, updated_at
		 FROM jobs`

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*models.Job, error) {
	j := &models.Job{}
	err := row.Scan(&j.ID, &j.Title, &j.SectorID, &j.Description, &j.Education,
		&j.SalaryMin, &j.SalaryMax, &j.SalaryCurrency, &j.HiringRate, &j.GrowthProjection,
		&j.Skills, &j.CompanyIDs, &j.TrainingIDs, &j.Requirements, &j.WorkEnvironment,
		&j.CareerPath, &j.IsActive, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// List filters by sector and by a case-insensitive search over titles and
// skills, then pages with skip/limit.
func (r *PostgresRepository) List(ctx context.Context, f models.JobFilter) ([]*models.Job, error) {
	var sb strings.Builder
	sb.WriteString(selectJobs)
	sb.WriteString(` WHERE is_active`)

	args := []any{}
	if f.SectorID != "" {
		args = append(args, f.SectorID)
		fmt.Fprintf(&sb, ` AND sector_id = $%d`, len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		fmt.Fprintf(&sb, ` AND (title::text ILIKE $%d OR skills::text ILIKE $%d)`, len(args), len(args))
	}

	sb.WriteString(` ORDER BY created_at, id`)
	args = append(args, f.Skip)
	fmt.Fprintf(&sb, ` OFFSET $%d`, len(args))
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}

	return r.query(ctx, sb.String(), args...)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Job, error) {
	query := selectJobs + ` WHERE id = $1 AND is_active`

	j, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Job, error) {
	if len(ids) == 0 {
		return []*models.Job{}, nil
	}

	query := selectJobs + ` WHERE is_active AND id IN (SELECT jsonb_array_elements_text($1::jsonb))`
	found, err := r.query(ctx, query, models.StringList(ids))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Job, len(found))
	for _, j := range found {
		byID[j.ID] = j
	}
	out := make([]*models.Job, 0, len(found))
	for _, id := range ids {
		if j, ok := byID[id]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *PostgresRepository) Create(ctx context.Context, j *models.Job) error {
	query :=
		`INSERT INTO jobs (id, title, sector_id, description, education, salary_min, salary_max,
		   salary_currency, hiring_rate, growth_projection, skills, company_ids, training_ids,
		   requirements, work_environment, career_path, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, TRUE)
		 RETURNING is_active, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, j.ID, j.Title, j.SectorID, j.Description, j.Education,
		j.SalaryMin, j.SalaryMax, j.SalaryCurrency, j.HiringRate, j.GrowthProjection, j.Skills,
		j.CompanyIDs, j.TrainingIDs, j.Requirements, j.WorkEnvironment, j.CareerPath,
	).Scan(&j.IsActive, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return common.ErrorAlreadyExists
			case "23503":
				return fmt.Errorf("%w: unknown sector %q", common.ErrorValidation, j.SectorID)
			}
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update replaces every mutable column of an active job.
func (r *PostgresRepository) Update(ctx context.Context, j *models.Job) error {
	query :=
		`UPDATE jobs SET title = $2, sector_id = $3, description = $4, education = $5,
		   salary_min = $6, salary_max = $7, salary_currency = $8, hiring_rate = $9,
		   growth_projection = $10, skills = $11, company_ids = $12, training_ids = $13,
		   requirements = $14, work_environment = $15, career_path = $16, updated_at = now()
		 WHERE id = $1 AND is_active
		 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, j.ID, j.Title, j.SectorID, j.Description, j.Education,
		j.SalaryMin, j.SalaryMax, j.SalaryCurrency, j.HiringRate, j.GrowthProjection, j.Skills,
		j.CompanyIDs, j.TrainingIDs, j.Requirements, j.WorkEnvironment, j.CareerPath,
	).Scan(&j.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: unknown sector %q", common.ErrorValidation, j.SectorID)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE jobs SET is_active = FALSE, updated_at = now() WHERE id = $1 AND is_active`

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

func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*models.Job, error) {
	query := selectJobs + ` WHERE is_active ORDER BY created_at DESC, id LIMIT $1`
	return r.query(ctx, query, limit)
}

func (r *PostgresRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM jobs WHERE is_active`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) SectorStats(ctx context.Context) ([]models.SectorStat, error) {
	query :=
		`SELECT s.id, s.name, s.growth, count(j.id)
		 FROM sectors s
		 LEFT JOIN jobs j ON j.sector_id = s.id AND j.is_active
		 WHERE s.is_active
		 GROUP BY s.id, s.name, s.growth
		 ORDER BY s.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.SectorStat, 0)
	for rows.Next() {
		var s models.SectorStat
		if err := rows.Scan(&s.SectorID, &s.Name, &s.Growth, &s.JobCount); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
