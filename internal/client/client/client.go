package client

import (
	"context"
	"time"

	"github.com/kongenga/kongenga/internal/client/models"
)

// AuthResponse is the body of /auth/login and /auth/register.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

type RegisterRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	University        string `json:"university,omitempty"`
	Year              string `json:"year,omitempty"`
	Field             string `json:"field,omitempty"`
	PreferredLanguage string `json:"preferredLanguage,omitempty"`
}

// ToggleResponse is the body of POST /users/favorites/{jobId}.
type ToggleResponse struct {
	Status string `json:"status"`
	Action string `json:"action"`
	JobID  string `json:"job_id"`
}

type AvatarUpload struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Client interface {
	// SetToken installs the bearer token sent with every request; "" drops it.
	SetToken(token string)
	Ping(ctx context.Context) error

	Login(ctx context.Context, email, password, userType string) (*AuthResponse, error)
	Register(ctx context.Context, r RegisterRequest) (*AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)
	UpdateMe(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
	ToggleFavorite(ctx context.Context, jobID string) (*ToggleResponse, error)
	Favorites(ctx context.Context) ([]*models.Job, error)
	UpdateProgress(ctx context.Context, partial map[string]int) (models.Progress, error)
	PresignAvatar(ctx context.Context) (*AvatarUpload, error)

	Sectors(ctx context.Context) ([]*models.Sector, error)
	Jobs(ctx context.Context, q models.JobQuery) ([]*models.Job, error)
	Job(ctx context.Context, id string) (*models.Job, error)
}
