package httpapi

import (
	"context"

	"github.com/kongenga/kongenga/internal/server/models"
	"github.com/kongenga/kongenga/internal/server/services"
)

// UserService is the account side of the API.
type UserService interface {
	Register(ctx context.Context, r services.Registration) (*services.AuthResult, error)
	Login(ctx context.Context, email, password, userType string) (*services.AuthResult, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error)
	ToggleFavorite(ctx context.Context, userID, jobID string) (string, error)
	ListFavorites(ctx context.Context, userID string) ([]*models.Job, error)
	UpdateProgress(ctx context.Context, userID string, partial map[string]int) (models.Progress, error)
	ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error)
	Stats(ctx context.Context) (*models.UserStats, error)
}

type CatalogService interface {
	Sectors(ctx context.Context) ([]*models.Sector, error)
	Sector(ctx context.Context, id string) (*models.Sector, error)
	CreateSector(ctx context.Context, s *models.Sector) error
	Jobs(ctx context.Context, f models.JobFilter) ([]*models.Job, error)
	Job(ctx context.Context, id string) (*models.JobDetail, error)
	RawJob(ctx context.Context, id string) (*models.Job, error)
	CreateJob(ctx context.Context, j *models.Job) error
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id string) error
	Companies(ctx context.Context, skip, limit int) ([]*models.Company, error)
	Company(ctx context.Context, id string) (*models.Company, error)
	CreateCompany(ctx context.Context, c *models.Company) error
	Trainings(ctx context.Context, skip, limit int) ([]*models.Training, error)
	Training(ctx context.Context, id string) (*models.Training, error)
	TrainingsBySkill(ctx context.Context, skill string) ([]*models.Training, error)
	CreateTraining(ctx context.Context, t *models.Training) error
	Testimonials(ctx context.Context, skip, limit int) ([]*models.Testimonial, error)
	TestimonialsByJob(ctx context.Context, jobID string) ([]*models.Testimonial, error)
	SubmitTestimonial(ctx context.Context, authorID string, t *models.Testimonial) error
	PendingTestimonials(ctx context.Context) ([]*models.Testimonial, error)
	ApproveTestimonial(ctx context.Context, id string) error
	VerifyTestimonial(ctx context.Context, id string) error
	DeleteTestimonial(ctx context.Context, id string) error
}

type AdminService interface {
	Statistics(ctx context.Context) (*models.PlatformStatistics, error)
	RefreshStatistics(ctx context.Context) (*models.PlatformStatistics, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	ExportUsers(ctx context.Context) ([]*models.User, error)
	ExportJobs(ctx context.Context) ([]*models.Job, error)
}

type AvatarService interface {
	PresignUpload(ctx context.Context, userID string) (*services.AvatarUpload, error)
}

// Services bundles everything the handlers call.
type Services struct {
	Users   UserService
	Catalog CatalogService
	Admin   AdminService
	Avatars AvatarService
}
