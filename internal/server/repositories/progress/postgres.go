package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Progress, error) {
	query :=
		`SELECT profile_complete, jobs_explored, trainings_started, skills_assessed
		 FROM progress WHERE user_id = $1`

	p := &models.Progress{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ProfileComplete, &p.JobsExplored, &p.TrainingsStarted, &p.SkillsAssessed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Save(ctx context.Context, userID string, p models.Progress) error {
	query :=
		`INSERT INTO progress (user_id, profile_complete, jobs_explored, trainings_started, skills_assessed)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET
		   profile_complete = excluded.profile_complete,
		   jobs_explored = excluded.jobs_explored,
		   trainings_started = excluded.trainings_started,
		   skills_assessed = excluded.skills_assessed,
		   updated_at = now()`

	_, err := r.db.ExecContext(ctx, query, userID,
		p.ProfileComplete, p.JobsExplored, p.TrainingsStarted, p.SkillsAssessed)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
