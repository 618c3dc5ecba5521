// Package services holds the CLI's session store: the authenticated
// identity, the favorites set and the progress record, kept in memory and
// mirrored to the local metadata table.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/kongenga/kongenga/internal/client/client"
	"github.com/kongenga/kongenga/internal/client/i18n"
	"github.com/kongenga/kongenga/internal/client/models"
	"github.com/kongenga/kongenga/internal/client/repositories/metadata"
	"github.com/kongenga/kongenga/internal/dbx"
	"github.com/kongenga/kongenga/internal/logging"
)

// Keys of the persisted session.
const (
	KeyToken     = "kongenga_token"
	KeyUser      = "kongenga_user"
	KeyFavorites = "kongenga_favorites"
	KeyLanguage  = "kongenga_language"
)

const minPasswordLength = 6

var (
	// ErrSessionChanged is returned when the session was replaced (logout,
	// new login, invalidation) while a request was in flight; its result
	// was discarded.
	ErrSessionChanged      = errors.New("session changed")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// AuthResult reports a login or registration. Expected failures set
// Message and leave OK false.
type AuthResult struct {
	OK      bool
	User    *models.User
	Message string
}

// Profile is what a new account is registered with.
type Profile struct {
	Name              string
	Email             string
	Password          string
	ConfirmPassword   string
	University        string
	Year              string
	Field             string
	PreferredLanguage string
}

// SessionStore is safe for concurrent use. Remote calls run without the
// lock held; gen changes whenever the session does, so a response that
// belongs to an older session is dropped instead of applied.
type SessionStore struct {
	api     client.Client
	db      *sql.DB
	catalog *i18n.Catalog
	logger  logging.Logger

	// serializes writes to the metadata table
	persistMu sync.Mutex

	mu        sync.RWMutex
	gen       uint64
	token     string
	user      *models.User
	favorites map[string]struct{}
	lang      string
}

func NewSessionStore(api client.Client, db *sql.DB, catalog *i18n.Catalog, logger logging.Logger, lang string) *SessionStore {
	if !catalog.Supported(lang) {
		lang = i18n.DefaultLanguage
	}
	return &SessionStore{
		api:       api,
		db:        db,
		catalog:   catalog,
		logger:    logger.With("module", "session"),
		favorites: map[string]struct{}{},
		lang:      lang,
	}
}

// Initialize restores the persisted session and validates it against
// GET /users/me. Any failure leaves the store unauthenticated with the
// persisted session removed.
func (s *SessionStore) Initialize(ctx context.Context) {
	repo := metadata.NewSQLiteRepository(s.db)

	if b, err := repo.Get(ctx, KeyLanguage); err != nil {
		s.logger.Warn(ctx, "load language", "error", err)
	} else if l := string(b); s.catalog.Supported(l) {
		s.mu.Lock()
		s.lang = l
		s.mu.Unlock()
	}

	token, err := repo.Get(ctx, KeyToken)
	if err != nil {
		s.logger.Warn(ctx, "load token", "error", err)
		s.Logout(ctx)
		return
	}
	raw, err := repo.Get(ctx, KeyUser)
	if err != nil {
		s.logger.Warn(ctx, "load user snapshot", "error", err)
		s.Logout(ctx)
		return
	}
	if len(token) == 0 || len(raw) == 0 {
		if len(token) != 0 || len(raw) != 0 {
			s.Logout(ctx)
		}
		return
	}

	var snapshot models.User
	if err := json.Unmarshal(raw, &snapshot); err != nil || snapshot.ID == "" {
		s.logger.Warn(ctx, "corrupt user snapshot, clearing session", "error", err)
		s.Logout(ctx)
		return
	}

	gen := s.install(string(token), &snapshot)

	fresh, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Warn(ctx, "session validation failed", "error", err)
		s.invalidate(ctx, gen)
		return
	}
	if s.applyUser(gen, fresh) {
		s.persist(ctx)
	}
}

// Login authenticates and, on success, persists the session and loads the
// favorites set.
func (s *SessionStore) Login(ctx context.Context, email, password, roleHint string) AuthResult {
	if roleHint == "" {
		roleHint = models.RoleStudent
	}

	res, err := s.api.Login(ctx, strings.TrimSpace(email), password, roleHint)
	if err != nil {
		return AuthResult{Message: s.Message(err)}
	}
	if res.AccessToken == "" || res.User == nil {
		return AuthResult{Message: s.T("error.generic")}
	}

	gen := s.install(res.AccessToken, res.User)
	s.persist(ctx)
	s.loadFavorites(ctx, gen)

	return AuthResult{OK: true, User: s.User()}
}

func (s *SessionStore) validateProfile(p Profile) string {
	if strings.TrimSpace(p.Name) == "" {
		return "register.name"
	}
	if addr, err := mail.ParseAddress(p.Email); err != nil || addr.Address != p.Email {
		return "register.email"
	}
	if p.Password != p.ConfirmPassword {
		return "register.mismatch"
	}
	if len(p.Password) < minPasswordLength {
		return "register.password"
	}
	return ""
}

// Register validates p locally, creates the account and starts a session
// with no favorites.
func (s *SessionStore) Register(ctx context.Context, p Profile) AuthResult {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	if key := s.validateProfile(p); key != "" {
		return AuthResult{Message: s.T(key)}
	}
	if p.PreferredLanguage == "" {
		p.PreferredLanguage = s.Language()
	}

	res, err := s.api.Register(ctx, client.RegisterRequest{
		Name:              p.Name,
		Email:             p.Email,
		Password:          p.Password,
		University:        p.University,
		Year:              p.Year,
		Field:             p.Field,
		PreferredLanguage: p.PreferredLanguage,
	})
	if err != nil {
		return AuthResult{Message: s.Message(err)}
	}
	if res.AccessToken == "" || res.User == nil {
		return AuthResult{Message: s.T("error.generic")}
	}

	u := res.User.Clone()
	u.FavoriteJobs = []string{}
	if u.Progress == (models.Progress{}) {
		u.Progress = models.DefaultProgress()
	}

	s.install(res.AccessToken, u)
	s.persist(ctx)

	return AuthResult{OK: true, User: s.User()}
}

// Logout drops the session from memory, the transport and storage. Calls
// still in flight for the old session are discarded when they return.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	s.persist(ctx)
}

// RefreshUserData reloads the user record and the favorites set.
func (s *SessionStore) RefreshUserData(ctx context.Context) (*models.User, error) {
	gen, ok := s.current()
	if !ok {
		return nil, nil
	}

	u, err := s.api.Me(ctx)
	if err != nil {
		s.checkUnauthorized(ctx, gen, err)
		return nil, err
	}
	if !s.applyUser(gen, u) {
		return nil, ErrSessionChanged
	}
	s.persist(ctx)
	s.loadFavorites(ctx, gen)

	return s.User(), nil
}

// UpdateProfile sends upd and replaces the snapshot with the answer.
func (s *SessionStore) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	gen, ok := s.current()
	if !ok {
		return nil, nil
	}

	u, err := s.api.UpdateMe(ctx, upd)
	if err != nil {
		s.checkUnauthorized(ctx, gen, err)
		return nil, err
	}
	if !s.applyUser(gen, u) {
		return nil, ErrSessionChanged
	}
	s.persist(ctx)

	return s.User(), nil
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// User returns a copy of the snapshot, or nil when unauthenticated.
func (s *SessionStore) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

func (s *SessionStore) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// SetLanguage switches the message language and persists the choice.
func (s *SessionStore) SetLanguage(ctx context.Context, lang string) error {
	if !s.catalog.Supported(lang) {
		return fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	s.lang = lang
	s.mu.Unlock()

	return metadata.NewSQLiteRepository(s.db).Set(ctx, KeyLanguage, []byte(lang))
}

// T looks key up in the current language.
func (s *SessionStore) T(key string, args ...any) string {
	return s.catalog.T(s.Language(), key, args...)
}

// Message turns an API error into displayable text: the backend's detail,
// else its message, else a localized generic text.
func (s *SessionStore) Message(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	if errors.Is(err, client.ErrUnavailable) {
		return s.T("error.network")
	}
	return s.T("error.generic")
}

func (s *SessionStore) current() (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen, s.token != ""
}

// install starts a new session generation.
func (s *SessionStore) install(token string, u *models.User) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.token = token
	s.user = u.Clone()
	s.setFavoritesLocked(u.FavoriteJobs)
	s.api.SetToken(token)
	return s.gen
}

func (s *SessionStore) resetLocked() {
	s.gen++
	s.token = ""
	s.user = nil
	s.favorites = map[string]struct{}{}
	s.api.SetToken("")
}

// applyUser replaces the snapshot when gen is still current.
func (s *SessionStore) applyUser(gen uint64, u *models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen || s.token == "" {
		return false
	}
	s.user = u.Clone()
	s.setFavoritesLocked(u.FavoriteJobs)
	return true
}

// invalidate ends session gen, unless it already ended.
func (s *SessionStore) invalidate(ctx context.Context, gen uint64) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.resetLocked()
	s.mu.Unlock()

	s.persist(ctx)
}

func (s *SessionStore) checkUnauthorized(ctx context.Context, gen uint64, err error) {
	if errors.Is(err, client.ErrUnauthorized) {
		s.logger.Info(ctx, "token rejected, session invalidated")
		s.invalidate(ctx, gen)
	}
}

// persist mirrors the in-memory session to the metadata table; an
// unauthenticated store removes it. Failures are logged only.
func (s *SessionStore) persist(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	token, user := s.token, s.user.Clone()
	s.mu.RUnlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if token == "" {
			return repo.Delete(ctx, KeyToken, KeyUser, KeyFavorites)
		}

		userJSON, err := json.Marshal(user)
		if err != nil {
			return err
		}
		favJSON, err := json.Marshal(user.FavoriteJobs)
		if err != nil {
			return err
		}

		if err := repo.Set(ctx, KeyToken, []byte(token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyUser, userJSON); err != nil {
			return err
		}
		return repo.Set(ctx, KeyFavorites, favJSON)
	})
	if err != nil {
		s.logger.Warn(ctx, "persist session", "error", err)
	}
}
