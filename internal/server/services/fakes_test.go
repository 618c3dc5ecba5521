package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kongenga/kongenga/internal/common"
	"github.com/kongenga/kongenga/internal/dbx"
	"github.com/kongenga/kongenga/internal/server/models"
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

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// --- users ---

type fakeUsersRepo struct {
	mu        sync.Mutex
	byID      map[string]*models.User
	createErr error
	getErr    error
	touched   map[string]time.Time
	avatars   map[string]string
	stats     *models.UserStats
	list      []*models.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}, touched: map[string]time.Time{}, avatars: map[string]string{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, common.ErrorAlreadyExists
		}
	}
	cp := *u
	cp.Email = strings.ToLower(cp.Email)
	f.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) UpdateProfile(_ context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.University != nil {
		u.University = *upd.University
	}
	if upd.Year != nil {
		u.Year = *upd.Year
	}
	if upd.Field != nil {
		u.Field = *upd.Field
	}
	if upd.PreferredLanguage != nil {
		u.PreferredLanguage = *upd.PreferredLanguage
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) TouchLastActive(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[id] = at
	return nil
}

func (f *fakeUsersRepo) SetAvatar(_ context.Context, id string, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	f.avatars[id] = key
	return nil
}

func (f *fakeUsersRepo) List(context.Context, int, int) ([]*models.User, error) {
	return f.list, nil
}

func (f *fakeUsersRepo) ListRecent(context.Context, string, int) ([]*models.User, error) {
	return f.list, nil
}

func (f *fakeUsersRepo) Stats(context.Context, time.Time, time.Time) (*models.UserStats, error) {
	if f.stats == nil {
		return nil, errBoom
	}
	return f.stats, nil
}

// --- progress ---

type fakeProgressRepo struct {
	mu      sync.Mutex
	records map[string]models.Progress
	getErr  error
	saveErr error
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{records: map[string]models.Progress{}}
}

func (f *fakeProgressRepo) Get(_ context.Context, userID string) (*models.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.records[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (f *fakeProgressRepo) Save(_ context.Context, userID string, p models.Progress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records[userID] = p
	return nil
}

// --- favorites ---

type fakeFavoritesRepo struct {
	mu     sync.Mutex
	pairs  map[string][]string
	addErr error
	// jobs, when set, hides pairs of inactive jobs from ListJobIDs like the
	// SQL join does.
	jobs *fakeJobsRepo
}

func newFakeFavoritesRepo() *fakeFavoritesRepo {
	return &fakeFavoritesRepo{pairs: map[string][]string{}}
}

func (f *fakeFavoritesRepo) Exists(_ context.Context, userID, jobID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.pairs[userID] {
		if id == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFavoritesRepo) Add(_ context.Context, userID, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	for _, id := range f.pairs[userID] {
		if id == jobID {
			return nil
		}
	}
	f.pairs[userID] = append(f.pairs[userID], jobID)
	return nil
}

func (f *fakeFavoritesRepo) Remove(_ context.Context, userID, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := f.pairs[userID]
	for i, id := range ids {
		if id == jobID {
			f.pairs[userID] = append(ids[:i:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeFavoritesRepo) ListJobIDs(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []string{}
	for _, id := range f.pairs[userID] {
		if f.jobs != nil {
			if _, ok := f.jobs.byID[id]; !ok {
				continue
			}
		}
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeFavoritesRepo) Count(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, ids := range f.pairs {
		n += len(ids)
	}
	return n, nil
}

// --- jobs ---

type fakeJobsRepo struct {
	jobs.Repository
	byID      map[string]*models.Job
	listCalls int
	created   []*models.Job
	deleted   []string
}

func newFakeJobsRepo(ids ...string) *fakeJobsRepo {
	f := &fakeJobsRepo{byID: map[string]*models.Job{}}
	for _, id := range ids {
		f.byID[id] = &models.Job{ID: id, Title: models.LocalizedText{"fr": id}, SectorID: "tech", IsActive: true}
	}
	return f
}

func (f *fakeJobsRepo) Get(_ context.Context, id string) (*models.Job, error) {
	j, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJobsRepo) ListByIDs(_ context.Context, ids []string) ([]*models.Job, error) {
	out := []*models.Job{}
	for _, id := range ids {
		if j, ok := f.byID[id]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobsRepo) List(context.Context, models.JobFilter) ([]*models.Job, error) {
	f.listCalls++
	out := []*models.Job{}
	for _, j := range f.byID {
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJobsRepo) Create(_ context.Context, j *models.Job) error {
	f.created = append(f.created, j)
	f.byID[j.ID] = j
	return nil
}

func (f *fakeJobsRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeJobsRepo) ListRecent(context.Context, int) ([]*models.Job, error) {
	return []*models.Job{}, nil
}

func (f *fakeJobsRepo) CountActive(context.Context) (int, error) { return len(f.byID), nil }

func (f *fakeJobsRepo) SectorStats(context.Context) ([]models.SectorStat, error) {
	return []models.SectorStat{{SectorID: "tech", JobCount: len(f.byID)}}, nil
}

// --- counters for the admin snapshot ---

type fakeSectorsRepo struct {
	sectors.Repository
	n         int
	listCalls int
}

func (f *fakeSectorsRepo) Count(context.Context) (int, error) { return f.n, nil }
func (f *fakeSectorsRepo) List(context.Context) ([]*models.Sector, error) {
	f.listCalls++
	return []*models.Sector{{ID: "tech", Name: models.LocalizedText{"fr": "Tech"}, JobCount: 2}}, nil
}

type fakeCompaniesRepo struct {
	companies.Repository
	n int
}

func (f *fakeCompaniesRepo) Count(context.Context) (int, error) { return f.n, nil }
func (f *fakeCompaniesRepo) ListByIDs(_ context.Context, ids []string) ([]*models.Company, error) {
	out := []*models.Company{}
	for _, id := range ids {
		out = append(out, &models.Company{ID: id})
	}
	return out, nil
}

type fakeTrainingsRepo struct {
	trainings.Repository
	n int
}

func (f *fakeTrainingsRepo) Count(context.Context) (int, error) { return f.n, nil }
func (f *fakeTrainingsRepo) ListByIDs(context.Context, []string) ([]*models.Training, error) {
	return []*models.Training{}, nil
}

type fakeTestimonialsRepo struct {
	testimonials.Repository
	pending  int
	created  []*models.Testimonial
	approved []string
}

func (f *fakeTestimonialsRepo) CountPending(context.Context) (int, error) { return f.pending, nil }
func (f *fakeTestimonialsRepo) ListApprovedByJob(context.Context, string) ([]*models.Testimonial, error) {
	return []*models.Testimonial{}, nil
}
func (f *fakeTestimonialsRepo) Create(_ context.Context, t *models.Testimonial) error {
	f.created = append(f.created, t)
	return nil
}
func (f *fakeTestimonialsRepo) Approve(_ context.Context, id string) error {
	f.approved = append(f.approved, id)
	return nil
}

type fakeStatsRepo struct {
	saved *models.PlatformStatistics
}

func (f *fakeStatsRepo) Get(context.Context) (*models.PlatformStatistics, error) {
	if f.saved == nil {
		return nil, common.ErrorNotFound
	}
	return f.saved, nil
}

func (f *fakeStatsRepo) Save(_ context.Context, s *models.PlatformStatistics) error {
	f.saved = s
	return nil
}

// --- manager ---

type fakeRepoManager struct {
	users        *fakeUsersRepo
	progress     *fakeProgressRepo
	favorites    *fakeFavoritesRepo
	jobs         *fakeJobsRepo
	sectors      *fakeSectorsRepo
	companies    *fakeCompaniesRepo
	trainings    *fakeTrainingsRepo
	testimonials *fakeTestimonialsRepo
	stats        *fakeStatsRepo
}

func newFakeRepoManager(jobIDs ...string) *fakeRepoManager {
	favs := newFakeFavoritesRepo()
	favs.jobs = newFakeJobsRepo(jobIDs...)
	return &fakeRepoManager{
		users:        newFakeUsersRepo(),
		progress:     newFakeProgressRepo(),
		favorites:    favs,
		jobs:         favs.jobs,
		sectors:      &fakeSectorsRepo{},
		companies:    &fakeCompaniesRepo{},
		trainings:    &fakeTrainingsRepo{},
		testimonials: &fakeTestimonialsRepo{},
		stats:        &fakeStatsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository               { return m.users }
func (m *fakeRepoManager) Progress(dbx.DBTX) progress.Repository         { return m.progress }
func (m *fakeRepoManager) Favorites(dbx.DBTX) favorites.Repository       { return m.favorites }
func (m *fakeRepoManager) Sectors(dbx.DBTX) sectors.Repository           { return m.sectors }
func (m *fakeRepoManager) Jobs(dbx.DBTX) jobs.Repository                 { return m.jobs }
func (m *fakeRepoManager) Companies(dbx.DBTX) companies.Repository       { return m.companies }
func (m *fakeRepoManager) Trainings(dbx.DBTX) trainings.Repository       { return m.trainings }
func (m *fakeRepoManager) Testimonials(dbx.DBTX) testimonials.Repository { return m.testimonials }
func (m *fakeRepoManager) Stats(dbx.DBTX) stats.Repository               { return m.stats }
