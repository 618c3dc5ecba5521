// Package services contains the server-side business logic behind the HTTP
// API. This file implements UserService: accounts, sessions, favorites and
// progress.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kongenga/kongenga/internal/common"
	"github.com/kongenga/kongenga/internal/cryptox"
	"github.com/kongenga/kongenga/internal/dbx"
	"github.com/kongenga/kongenga/internal/logging"
	"github.com/kongenga/kongenga/internal/server/auth"
	"github.com/kongenga/kongenga/internal/server/config"
	"github.com/kongenga/kongenga/internal/server/models"
	"github.com/kongenga/kongenga/internal/server/repositories/repomanager"
)

// Favorite toggle outcomes as reported to clients.
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

// UserTypeManager is the login role hint that requires a site_manager
// account.
const UserTypeManager = "manager"

const (
	minPasswordLength = 6
	// bcrypt ignores input past 72 bytes.
	maxPasswordLength = 72
)

var (
	now       = time.Now
	newUserID = func() string { return uuid.NewString() }
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	TokenType   string
	User        *models.User
}

// Registration is the input of Register.
type Registration struct {
	Name              string
	Email             string
	Password          string
	University        string
	Year              string
	Field             string
	PreferredLanguage string
}

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	logger                      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		logger:                      logger.With("module", "users"),
	}
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, fmt.Sprintf(format, args...))
}

func validateCredentials(email, password string) error {
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return validationError("invalid email address")
	}
	if len(password) < minPasswordLength {
		return validationError("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return validationError("password must be at most %d bytes", maxPasswordLength)
	}
	return nil
}

// Register creates a student account with the default progress record and
// returns a fresh access token for it.
func (s *UserService) Register(ctx context.Context, r Registration) (*AuthResult, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" {
		return nil, validationError("name is required")
	}
	if err := validateCredentials(r.Email, r.Password); err != nil {
		return nil, err
	}
	if r.PreferredLanguage == "" {
		r.PreferredLanguage = "fr"
	}
	if !models.ValidLanguage(r.PreferredLanguage) {
		return nil, validationError("unsupported language %q", r.PreferredLanguage)
	}

	user, err := s.createUser(ctx, &models.User{
		Name:              r.Name,
		Email:             r.Email,
		Role:              models.RoleStudent,
		University:        r.University,
		Year:              r.Year,
		Field:             r.Field,
		PreferredLanguage: r.PreferredLanguage,
	}, r.Password)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return s.issue(user)
}

// createUser stores u and its default progress in one transaction.
func (s *UserService) createUser(ctx context.Context, u *models.User, password string) (*models.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.ID = newUserID()
	u.PasswordHash = hash

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Users(tx).Create(ctx, u)
		if err != nil {
			return err
		}
		return s.repomanager.Progress(tx).Save(ctx, created.ID, models.DefaultProgress())
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: Email already registered", common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	created.Progress = models.DefaultProgress()
	created.FavoriteJobs = []string{}
	return created, nil
}

// Login verifies the credentials. A userType of "manager" additionally
// requires the account to hold the site_manager role.
func (s *UserService) Login(ctx context.Context, email, password, userType string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	if err := cryptox.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, common.ErrorUnauthorized
	}
	if userType == UserTypeManager && user.Role != models.RoleSiteManager {
		return nil, fmt.Errorf("%w: site manager access required", common.ErrorForbidden)
	}

	at := now().UTC()
	if err := repo.TouchLastActive(ctx, user.ID, at); err != nil {
		s.logger.Warn(ctx, "touch last_active failed", "user_id", user.ID, "error", err)
	} else {
		user.LastActive = at
	}

	if err := s.hydrate(ctx, s.db, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{AccessToken: token, TokenType: "bearer", User: user}, nil
}

// hydrate fills the progress record and favorite job ids of u.
func (s *UserService) hydrate(ctx context.Context, db dbx.DBTX, u *models.User) error {
	p, err := s.repomanager.Progress(db).Get(ctx, u.ID)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		u.Progress = models.DefaultProgress()
	case err != nil:
		return fmt.Errorf("error loading progress: %w", err)
	default:
		u.Progress = *p
	}

	ids, err := s.repomanager.Favorites(db).ListJobIDs(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("error loading favorites: %w", err)
	}
	u.FavoriteJobs = ids
	return nil
}

// Me returns the authoritative record of the user.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, s.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the user-editable fields; role and email are not
// editable.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, validationError("name must not be empty")
	}
	if upd.PreferredLanguage != nil && !models.ValidLanguage(*upd.PreferredLanguage) {
		return nil, validationError("unsupported language %q", *upd.PreferredLanguage)
	}
	if upd.Empty() {
		return s.Me(ctx, userID)
	}

	user, err := s.repomanager.Users(s.db).UpdateProfile(ctx, userID, upd)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, s.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleFavorite flips the (user, job) pair inside one transaction and
// reports which way it went.
func (s *UserService) ToggleFavorite(ctx context.Context, userID, jobID string) (string, error) {
	if strings.TrimSpace(jobID) == "" {
		return "", validationError("job id is required")
	}

	var action string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		favs := s.repomanager.Favorites(tx)
		exists, err := favs.Exists(ctx, userID, jobID)
		if err != nil {
			return err
		}
		// A stored pair is removable even after its job was retired.
		if exists {
			action = ActionRemoved
			return favs.Remove(ctx, userID, jobID)
		}

		if _, err := s.repomanager.Jobs(tx).Get(ctx, jobID); err != nil {
			return err
		}
		action = ActionAdded
		return favs.Add(ctx, userID, jobID)
	})
	if err != nil {
		return "", err
	}

	s.logger.Debug(ctx, "favorite toggled", "user_id", userID, "job_id", jobID, "action", action)
	return action, nil
}

// ListFavorites returns the user's favorite jobs that are still active.
func (s *UserService) ListFavorites(ctx context.Context, userID string) ([]*models.Job, error) {
	ids, err := s.repomanager.Favorites(s.db).ListJobIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Jobs(s.db).ListByIDs(ctx, ids)
}

// UpdateProgress merges partial, a map of absolute counter values, into the
// stored record. Absent counters keep their value.
func (s *UserService) UpdateProgress(ctx context.Context, userID string, partial map[string]int) (models.Progress, error) {
	var merged models.Progress
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Progress(tx)

		current := models.DefaultProgress()
		p, err := repo.Get(ctx, userID)
		switch {
		case errors.Is(err, common.ErrorNotFound):
		case err != nil:
			return err
		default:
			current = *p
		}

		merged, err = current.Merge(partial)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		return repo.Save(ctx, userID, merged)
	})
	if err != nil {
		return models.Progress{}, err
	}
	return merged, nil
}

func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx, skip, limit)
}

// Stats counts accounts; "active" means seen within the last 30 days.
func (s *UserService) Stats(ctx context.Context) (*models.UserStats, error) {
	t := now().UTC()
	monthStart := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return s.repomanager.Users(s.db).Stats(ctx, monthStart, t.AddDate(0, 0, -30))
}

// EnsureAdmin creates the site manager account if no account uses email.
// An existing account is left as is, whatever its role.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	existing, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err == nil {
		if existing.Role != models.RoleSiteManager {
			s.logger.Warn(ctx, "admin email belongs to a non-manager account", "user_id", existing.ID)
		}
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	u, err := s.createUser(ctx, &models.User{
		Name:              name,
		Email:             email,
		Role:              models.RoleSiteManager,
		PreferredLanguage: "fr",
	}, password)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "admin account created", "user_id", u.ID)
	return nil
}
