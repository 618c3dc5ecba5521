package httpapi

import (
	"context"
	"time"

	"github.com/kongenga/kongenga/internal/common"
	"github.com/kongenga/kongenga/internal/server/models"
	"github.com/kongenga/kongenga/internal/server/services"
)

type fakeUsers struct {
	registerIn  services.Registration
	registerErr error
	loginIn     []string
	loginErr    error
	meErr       error
	updateIn    models.ProfileUpdate
	toggleIn    []string
	toggleOut   string
	toggleErr   error
	favorites   []*models.Job
	progressIn  map[string]int
	progressErr error
	listSkip    int
	listLimit   int
}

func (f *fakeUsers) user(id string) *models.User {
	return &models.User{ID: id, Name: "Amani", Email: "amani@example.cd", Role: models.RoleStudent,
		PreferredLanguage: "fr", FavoriteJobs: []string{}, Progress: models.DefaultProgress()}
}

func (f *fakeUsers) Register(_ context.Context, r services.Registration) (*services.AuthResult, error) {
	f.registerIn = r
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &services.AuthResult{AccessToken: "tok", TokenType: "bearer", User: f.user("u-1")}, nil
}

func (f *fakeUsers) Login(_ context.Context, email, password, userType string) (*services.AuthResult, error) {
	f.loginIn = []string{email, password, userType}
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &services.AuthResult{AccessToken: "tok", TokenType: "bearer", User: f.user("u-1")}, nil
}

func (f *fakeUsers) Me(_ context.Context, userID string) (*models.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.user(userID), nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	f.updateIn = upd
	u := f.user(userID)
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	return u, nil
}

func (f *fakeUsers) ToggleFavorite(_ context.Context, userID, jobID string) (string, error) {
	f.toggleIn = []string{userID, jobID}
	return f.toggleOut, f.toggleErr
}

func (f *fakeUsers) ListFavorites(context.Context, string) ([]*models.Job, error) {
	return f.favorites, nil
}

func (f *fakeUsers) UpdateProgress(_ context.Context, _ string, partial map[string]int) (models.Progress, error) {
	f.progressIn = partial
	if f.progressErr != nil {
		return models.Progress{}, f.progressErr
	}
	return models.DefaultProgress().Merge(partial)
}

func (f *fakeUsers) ListUsers(_ context.Context, skip, limit int) ([]*models.User, error) {
	f.listSkip, f.listLimit = skip, limit
	return []*models.User{f.user("u-1")}, nil
}

func (f *fakeUsers) Stats(context.Context) (*models.UserStats, error) {
	return &models.UserStats{TotalUsers: 2}, nil
}

type fakeCatalog struct {
	CatalogService
	jobs    map[string]*models.Job
	filter  models.JobFilter
	updated *models.Job
	listErr error
}

func (f *fakeCatalog) Jobs(_ context.Context, jf models.JobFilter) ([]*models.Job, error) {
	f.filter = jf
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.Job{}
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeCatalog) Job(_ context.Context, id string) (*models.JobDetail, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.JobDetail{Job: *j, Companies: []*models.Company{{ID: "vodacom", Name: "Vodacom"}}}, nil
}

func (f *fakeCatalog) RawJob(_ context.Context, id string) (*models.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *j
	return &cp, nil
}

func (f *fakeCatalog) UpdateJob(_ context.Context, j *models.Job) error {
	f.updated = j
	return nil
}

func (f *fakeCatalog) Sectors(context.Context) ([]*models.Sector, error) {
	return []*models.Sector{{ID: "tech", Name: models.LocalizedText{"fr": "Technologie"}, JobCount: 1}}, nil
}

type fakeAdmin struct {
	AdminService
	refreshed int
}

func (f *fakeAdmin) Statistics(context.Context) (*models.PlatformStatistics, error) {
	return &models.PlatformStatistics{TotalUsers: 5}, nil
}

func (f *fakeAdmin) RefreshStatistics(context.Context) (*models.PlatformStatistics, error) {
	f.refreshed++
	return &models.PlatformStatistics{TotalUsers: 6}, nil
}

func (f *fakeAdmin) ExportUsers(context.Context) ([]*models.User, error) {
	return []*models.User{{ID: "u-1"}, {ID: "u-2"}}, nil
}

type fakeAvatars struct{}

func (fakeAvatars) PresignUpload(_ context.Context, userID string) (*services.AvatarUpload, error) {
	return &services.AvatarUpload{Key: "avatars/" + userID + "/a", URL: "http://s3/avatars/" + userID + "/a?sig", ExpiresAt: time.Unix(0, 0).UTC()}, nil
}
