package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kongenga/kongenga/internal/client/client"
	"github.com/kongenga/kongenga/internal/client/config"
	"github.com/kongenga/kongenga/internal/client/i18n"
	"github.com/kongenga/kongenga/internal/client/models"
	"github.com/kongenga/kongenga/internal/client/services"
	"github.com/kongenga/kongenga/internal/filex"
	"github.com/kongenga/kongenga/internal/logging"
)

// Session is the part of services.SessionStore the commands use.
type Session interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password, roleHint string) services.AuthResult
	Register(ctx context.Context, p services.Profile) services.AuthResult
	Logout(ctx context.Context)
	IsAuthenticated() bool
	User() *models.User
	RefreshUserData(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
	ToggleFavorite(ctx context.Context, jobID string) (string, error)
	IsFavorite(jobID string) bool
	Favorites(ctx context.Context) ([]*models.Job, error)
	UpdateProgress(ctx context.Context, partial map[string]int) (*models.Progress, error)
	Progress() (models.Progress, bool)
	UploadAvatar(ctx context.Context, data []byte, contentType string) (string, error)
	Language() string
	SetLanguage(ctx context.Context, lang string) error
	T(key string, args ...any) string
	Message(err error) string
}

// Catalog is the public, unauthenticated part of the API.
type Catalog interface {
	Sectors(ctx context.Context) ([]*models.Sector, error)
	Jobs(ctx context.Context, q models.JobQuery) ([]*models.Job, error)
	Job(ctx context.Context, id string) (*models.Job, error)
}

type App struct {
	config  *config.Config
	session Session
	catalog Catalog
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	closers []io.Closer
}

const (
	dbFileName  = "kongenga.db"
	logFileName = "kongenga.log"
)

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	logFile, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	logger := logging.NewJSONLogger(logFile, "info")

	db, err := client.InitDatabase(ctx, filepath.Join(dir, dbFileName))
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	store := services.NewSessionStore(api, db, i18n.Default(), logger, c.Language)

	return &App{
		config:  c,
		session: store,
		catalog: api,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closers: []io.Closer{db, logFile},
	}, nil
}

// Run restores the saved session and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Initialize(ctx)
	a.logger.Info(ctx, "cli started", "server", a.config.ServerURL, "authenticated", a.session.IsAuthenticated())

	a.println(a.T("repl.welcome"))
	if u := a.session.User(); u != nil {
		a.println(a.T("auth.welcome", u.Name))
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) T(key string, args ...any) string {
	return a.session.T(key, args...)
}

func (a *App) status() string {
	who := a.T("auth.anonymous")
	if u := a.session.User(); u != nil {
		who = u.Name
	}
	return fmt.Sprintf("(%s %s)", who, a.session.Language())
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// requireLogin reports whether a session exists, telling the user when not.
func (a *App) requireLogin() bool {
	if a.session.IsAuthenticated() {
		return true
	}
	a.println(a.T("error.not_logged_in"))
	return false
}

func (a *App) usage(u string) error {
	a.println(a.T("error.usage", u))
	return errUsage
}

var errUsage = errors.New("usage")

// fail reports err to the user and returns it.
func (a *App) fail(ctx context.Context, op string, err error) error {
	a.logger.Warn(ctx, op+" failed", "error", err)
	if errors.Is(err, client.ErrUnauthorized) {
		a.println(a.T("error.session"))
		return err
	}
	a.println(a.T("common.error") + ": " + a.session.Message(err))
	return err
}
