package stats

import (
	"context"
	"database/sql"
	"encoding/json"
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

func (r *PostgresRepository) Get(ctx context.Context) (*models.PlatformStatistics, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM platform_statistics WHERE id = 1`).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	s := &models.PlatformStatistics{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode statistics: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Save(ctx context.Context, s *models.PlatformStatistics) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode statistics: %w", err)
	}

	query :=
		`INSERT INTO platform_statistics (id, data, updated_at) VALUES (1, $1, now())
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query, data); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
