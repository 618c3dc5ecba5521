package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/kongenga/kongenga/internal/client/config"
	"github.com/kongenga/kongenga/internal/client/i18n"
	"github.com/kongenga/kongenga/internal/client/models"
	"github.com/kongenga/kongenga/internal/client/services"
	"github.com/kongenga/kongenga/internal/logging"
)

// fakeSession records what the commands ask of the session store.
type fakeSession struct {
	user      *models.User
	lang      string
	favorites map[string]bool

	loginEmail, loginPassword, loginRole string
	loginRes                             services.AuthResult

	registered  *services.Profile
	registerRes services.AuthResult

	logoutCalled bool
	refreshErr   error

	profileUpd *models.ProfileUpdate
	profileErr error

	toggled   string
	toggleAct string
	toggleErr error

	favJobs []*models.Job
	favErr  error

	progressIn  map[string]int
	progressOut *models.Progress
	progressErr error

	avatarData []byte
	avatarCT   string
	avatarErr  error

	langErr error
}

func (f *fakeSession) Initialize(context.Context) {}

func (f *fakeSession) Login(_ context.Context, email, password, roleHint string) services.AuthResult {
	f.loginEmail, f.loginPassword, f.loginRole = email, password, roleHint
	if f.loginRes.OK {
		f.user = f.loginRes.User
	}
	return f.loginRes
}

func (f *fakeSession) Register(_ context.Context, p services.Profile) services.AuthResult {
	f.registered = &p
	return f.registerRes
}

func (f *fakeSession) Logout(context.Context) {
	f.logoutCalled = true
	f.user = nil
}

func (f *fakeSession) IsAuthenticated() bool { return f.user != nil }
func (f *fakeSession) User() *models.User    { return f.user.Clone() }

func (f *fakeSession) RefreshUserData(context.Context) (*models.User, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.user.Clone(), nil
}

func (f *fakeSession) UpdateProfile(_ context.Context, upd models.ProfileUpdate) (*models.User, error) {
	f.profileUpd = &upd
	return f.user.Clone(), f.profileErr
}

func (f *fakeSession) ToggleFavorite(_ context.Context, jobID string) (string, error) {
	f.toggled = jobID
	return f.toggleAct, f.toggleErr
}

func (f *fakeSession) IsFavorite(jobID string) bool { return f.favorites[jobID] }

func (f *fakeSession) Favorites(context.Context) ([]*models.Job, error) {
	return f.favJobs, f.favErr
}

func (f *fakeSession) UpdateProgress(_ context.Context, partial map[string]int) (*models.Progress, error) {
	f.progressIn = partial
	return f.progressOut, f.progressErr
}

func (f *fakeSession) Progress() (models.Progress, bool) {
	if f.user == nil {
		return models.Progress{}, false
	}
	return f.user.Progress, true
}

func (f *fakeSession) UploadAvatar(_ context.Context, data []byte, contentType string) (string, error) {
	f.avatarData, f.avatarCT = data, contentType
	return "avatars/u-1/a", f.avatarErr
}

func (f *fakeSession) Language() string {
	if f.lang == "" {
		return "fr"
	}
	return f.lang
}

func (f *fakeSession) SetLanguage(_ context.Context, lang string) error {
	if f.langErr != nil {
		return f.langErr
	}
	f.lang = lang
	return nil
}

func (f *fakeSession) T(key string, args ...any) string {
	return i18n.Default().T(f.Language(), key, args...)
}

func (f *fakeSession) Message(err error) string {
	return err.Error()
}

type fakeCatalog struct {
	sectors []*models.Sector
	jobs    []*models.Job
	job     *models.Job
	err     error

	query models.JobQuery
	jobID string
}

func (f *fakeCatalog) Sectors(context.Context) ([]*models.Sector, error) {
	return f.sectors, f.err
}

func (f *fakeCatalog) Jobs(_ context.Context, q models.JobQuery) ([]*models.Job, error) {
	f.query = q
	return f.jobs, f.err
}

func (f *fakeCatalog) Job(_ context.Context, id string) (*models.Job, error) {
	f.jobID = id
	return f.job, f.err
}

func newTestApp(t *testing.T, s *fakeSession, c *fakeCatalog, input ...string) (*App, *bytes.Buffer) {
	t.Helper()
	if c == nil {
		c = &fakeCatalog{}
	}
	var out bytes.Buffer
	return &App{
		config:  &config.Config{ServerURL: "http://test"},
		session: s,
		catalog: c,
		logger:  logging.Nop(),
		reader:  bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n")),
		out:     &out,
	}, &out
}

func amina() *models.User {
	return &models.User{
		ID: "u-1", Name: "Amina", Email: "amina@example.cd", Role: models.RoleStudent,
		Progress: models.DefaultProgress(),
	}
}

// stubPasswords makes getPassword return pws in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(string, io.Writer) ([]byte, error) {
		if len(pws) == 0 {
			return nil, io.EOF
		}
		pw := pws[0]
		pws = pws[1:]
		return []byte(pw), nil
	}
}
