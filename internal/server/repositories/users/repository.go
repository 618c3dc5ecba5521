// Package users persists user accounts.
package users

import (
	"context"
	"time"

	"github.com/kongenga/kongenga/internal/server/models"
)

// Repository defines operations on user accounts. Lookups of absent users
// return common.ErrorNotFound; a duplicate email on Create returns
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error)
	TouchLastActive(ctx context.Context, id string, at time.Time) error
	SetAvatar(ctx context.Context, id string, key string) error
	List(ctx context.Context, skip, limit int) ([]*models.User, error)
	ListRecent(ctx context.Context, role string, limit int) ([]*models.User, error)
	Stats(ctx context.Context, monthStart, activeSince time.Time) (*models.UserStats, error)
}
