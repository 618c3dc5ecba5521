package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kongenga/kongenga/internal/common"
	"github.com/kongenga/kongenga/internal/logging"
	"github.com/kongenga/kongenga/internal/server/models"
	"github.com/kongenga/kongenga/internal/server/repositories/repomanager"
)

const (
	dashboardRecentLimit = 5
	exportLimit          = 10000
)

// AdminService backs the site manager endpoints.
type AdminService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewAdminService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *AdminService {
	return &AdminService{db: db, repomanager: m, logger: logger.With("module", "admin")}
}

// Statistics returns the stored snapshot, computing one if none exists yet.
func (s *AdminService) Statistics(ctx context.Context) (*models.PlatformStatistics, error) {
	st, err := s.repomanager.Stats(s.db).Get(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return s.RefreshStatistics(ctx)
	}
	return st, err
}

// RefreshStatistics recomputes the snapshot from live counts and stores it.
func (s *AdminService) RefreshStatistics(ctx context.Context) (*models.PlatformStatistics, error) {
	us, err := s.repomanager.Users(s.db).Stats(ctx, now().UTC(), now().UTC())
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	st := &models.PlatformStatistics{
		TotalUsers:    us.TotalUsers,
		TotalStudents: us.TotalStudents,
		LastUpdated:   now().UTC(),
	}

	counts := []struct {
		name string
		dst  *int
		fn   func(context.Context) (int, error)
	}{
		{"jobs", &st.TotalJobs, s.repomanager.Jobs(s.db).CountActive},
		{"sectors", &st.TotalSectors, s.repomanager.Sectors(s.db).Count},
		{"companies", &st.TotalCompanies, s.repomanager.Companies(s.db).Count},
		{"trainings", &st.TotalTrainings, s.repomanager.Trainings(s.db).Count},
		{"favorites", &st.TotalFavorites, s.repomanager.Favorites(s.db).Count},
		{"pending testimonials", &st.PendingTestimonials, s.repomanager.Testimonials(s.db).CountPending},
	}
	for _, c := range counts {
		n, err := c.fn(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
		*c.dst = n
	}

	if err := s.repomanager.Stats(s.db).Save(ctx, st); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "platform statistics refreshed", "users", st.TotalUsers, "jobs", st.TotalJobs)
	return st, nil
}

func (s *AdminService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	users := s.repomanager.Users(s.db)
	jobs := s.repomanager.Jobs(s.db)

	d := &models.Dashboard{LastUpdated: now().UTC()}
	var err error

	if d.Totals.Jobs, err = jobs.CountActive(ctx); err != nil {
		return nil, err
	}
	us, err := users.Stats(ctx, d.LastUpdated, d.LastUpdated)
	if err != nil {
		return nil, err
	}
	d.Totals.Users = us.TotalUsers
	if d.Totals.Companies, err = s.repomanager.Companies(s.db).Count(ctx); err != nil {
		return nil, err
	}
	if d.Totals.PendingTestimonials, err = s.repomanager.Testimonials(s.db).CountPending(ctx); err != nil {
		return nil, err
	}
	if d.RecentUsers, err = users.ListRecent(ctx, models.RoleStudent, dashboardRecentLimit); err != nil {
		return nil, err
	}
	if d.RecentJobs, err = jobs.ListRecent(ctx, dashboardRecentLimit); err != nil {
		return nil, err
	}
	if d.SectorStats, err = jobs.SectorStats(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *AdminService) ExportUsers(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx, 0, exportLimit)
}

func (s *AdminService) ExportJobs(ctx context.Context) ([]*models.Job, error) {
	return s.repomanager.Jobs(s.db).List(ctx, models.JobFilter{})
}
