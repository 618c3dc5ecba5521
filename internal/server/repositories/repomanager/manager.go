package repomanager

import (
	"context"
	"database/sql"

	"github.com/kongenga/kongenga/internal/dbx"
	"github.com/kongenga/kongenga/internal/server/repositories/companies"
	"github.com/kongenga/kongenga/internal/server/repositories/favorites"
	"github.com/kongenga/kongenga/internal/server/repositories/jobs"
	"github.com/kongenga/kongenga/internal/server/repositories/progress"
	"github.com/kongenga/kongenga/internal/server/repositories/sectors"
	"github.com/kongenga/kongenga/internal/server/repositories/stats"
	"github.com/kongenga/kongenga/internal/server/repositories/testimonials"
	"github.com/kongenga/kongenga/internal/server/repositories/trainings"
	"github.com/kongenga/kongenga/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or a
// transaction, so services can run several repositories in one tx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Progress(db dbx.DBTX) progress.Repository
	Favorites(db dbx.DBTX) favorites.Repository
	Sectors(db dbx.DBTX) sectors.Repository
	Jobs(db dbx.DBTX) jobs.Repository
	Companies(db dbx.DBTX) companies.Repository
	Trainings(db dbx.DBTX) trainings.Repository
	Testimonials(db dbx.DBTX) testimonials.Repository
	Stats(db dbx.DBTX) stats.Repository
}
