// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/kongenga/kongenga/internal/dbx"
	"github.com/kongenga/kongenga/internal/server/migrations"
	"github.com/kongenga/kongenga/internal/server/repositories/companies"
	"github.com/kongenga/kongenga/internal/server/repositories/favorites"
	"github.com/kongenga/kongenga/internal/server/repositories/jobs"
	"github.com/kongenga/kongenga/internal/server/repositories/progress"
	"github.com/kongenga/kongenga/internal/server/repositories/sectors"
	"github.com/kongenga/kongenga/internal/server/repositories/stats"
	"github.com/kongenga/kongenga/internal/server/repositories/testimonials"
	"github.com/kongenga/kongenga/internal/server/repositories/trainings"
	"github.com/kongenga/kongenga/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Progress(db dbx.DBTX) progress.Repository {
	return progress.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Favorites(db dbx.DBTX) favorites.Repository {
	return favorites.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Sectors(db dbx.DBTX) sectors.Repository {
	return sectors.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Jobs(db dbx.DBTX) jobs.Repository {
	return jobs.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Companies(db dbx.DBTX) companies.Repository {
	return companies.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Trainings(db dbx.DBTX) trainings.Repository {
	return trainings.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Testimonials(db dbx.DBTX) testimonials.Repository {
	return testimonials.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Stats(db dbx.DBTX) stats.Repository {
	return stats.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
