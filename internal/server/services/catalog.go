package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kongenga/kongenga/internal/logging"
	"github.com/kongenga/kongenga/internal/server/cache"
	"github.com/kongenga/kongenga/internal/server/models"
	"github.com/kongenga/kongenga/internal/server/repositories/repomanager"
)

const catalogKeyPrefix = "catalog:"

// CatalogService serves sectors, jobs, companies, trainings and
// testimonials. Reads go through the cache; any write drops every cached
// catalog entry.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.Cache
	ttl         time.Duration
	logger      logging.Logger
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, c cache.Cache, ttl time.Duration, logger logging.Logger) *CatalogService {
	if c == nil {
		c = cache.Noop{}
	}
	return &CatalogService{db: db, repomanager: m, cache: c, ttl: ttl, logger: logger.With("module", "catalog")}
}

// cached returns the value under key, loading and storing it on a miss.
// Cache failures are logged and otherwise ignored.
func cached[T any](ctx context.Context, s *CatalogService, key string, load func() (T, error)) (T, error) {
	var v T
	ok, err := s.cache.GetJSON(ctx, catalogKeyPrefix+key, &v)
	if err != nil {
		s.logger.Warn(ctx, "cache read failed", "key", key, "error", err)
	}
	if ok {
		return v, nil
	}

	v, err = load()
	if err != nil {
		return v, err
	}
	if err := s.cache.SetJSON(ctx, catalogKeyPrefix+key, v, s.ttl); err != nil {
		s.logger.Warn(ctx, "cache write failed", "key", key, "error", err)
	}
	return v, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if err := s.cache.DelPrefix(ctx, catalogKeyPrefix); err != nil {
		s.logger.Warn(ctx, "cache invalidation failed", "error", err)
	}
}

func (s *CatalogService) Sectors(ctx context.Context) ([]*models.Sector, error) {
	return cached(ctx, s, "sectors", func() ([]*models.Sector, error) {
		return s.repomanager.Sectors(s.db).List(ctx)
	})
}

func (s *CatalogService) Sector(ctx context.Context, id string) (*models.Sector, error) {
	return cached(ctx, s, "sector:"+id, func() (*models.Sector, error) {
		return s.repomanager.Sectors(s.db).Get(ctx, id)
	})
}

func (s *CatalogService) CreateSector(ctx context.Context, sec *models.Sector) error {
	if strings.TrimSpace(sec.ID) == "" || sec.Name.In("fr") == "" {
		return validationError("sector id and French name are required")
	}
	sec.IsActive = true
	if err := s.repomanager.Sectors(s.db).Create(ctx, sec); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) Jobs(ctx context.Context, f models.JobFilter) ([]*models.Job, error) {
	key := fmt.Sprintf("jobs:%s:%s:%d:%d", f.SectorID, strings.ToLower(f.Search), f.Skip, f.Limit)
	return cached(ctx, s, key, func() ([]*models.Job, error) {
		return s.repomanager.Jobs(s.db).List(ctx, f)
	})
}

// Job returns the job joined with its companies, trainings and approved
// testimonials.
func (s *CatalogService) Job(ctx context.Context, id string) (*models.JobDetail, error) {
	return cached(ctx, s, "job:"+id, func() (*models.JobDetail, error) {
		j, err := s.repomanager.Jobs(s.db).Get(ctx, id)
		if err != nil {
			return nil, err
		}
		d := &models.JobDetail{Job: *j}
		if d.Companies, err = s.repomanager.Companies(s.db).ListByIDs(ctx, j.CompanyIDs); err != nil {
			return nil, err
		}
		if d.Trainings, err = s.repomanager.Trainings(s.db).ListByIDs(ctx, j.TrainingIDs); err != nil {
			return nil, err
		}
		if d.Testimonials, err = s.repomanager.Testimonials(s.db).ListApprovedByJob(ctx, id); err != nil {
			return nil, err
		}
		return d, nil
	})
}

// RawJob returns the stored job without joins or caching, for edits.
func (s *CatalogService) RawJob(ctx context.Context, id string) (*models.Job, error) {
	return s.repomanager.Jobs(s.db).Get(ctx, id)
}

func validateJob(j *models.Job) error {
	if strings.TrimSpace(j.ID) == "" || j.Title.In("fr") == "" || j.SectorID == "" {
		return validationError("job id, French title and sector are required")
	}
	if j.SalaryMin < 0 || j.SalaryMax < 0 || (j.SalaryMax > 0 && j.SalaryMin > j.SalaryMax) {
		return validationError("invalid salary range")
	}
	return nil
}

func (s *CatalogService) CreateJob(ctx context.Context, j *models.Job) error {
	if err := validateJob(j); err != nil {
		return err
	}
	if j.SalaryCurrency == "" {
		j.SalaryCurrency = "USD"
	}
	if err := s.repomanager.Jobs(s.db).Create(ctx, j); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) UpdateJob(ctx context.Context, j *models.Job) error {
	if err := validateJob(j); err != nil {
		return err
	}
	if err := s.repomanager.Jobs(s.db).Update(ctx, j); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) DeleteJob(ctx context.Context, id string) error {
	if err := s.repomanager.Jobs(s.db).SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) Companies(ctx context.Context, skip, limit int) ([]*models.Company, error) {
	return cached(ctx, s, fmt.Sprintf("companies:%d:%d", skip, limit), func() ([]*models.Company, error) {
		return s.repomanager.Companies(s.db).List(ctx, skip, limit)
	})
}

func (s *CatalogService) Company(ctx context.Context, id string) (*models.Company, error) {
	return cached(ctx, s, "company:"+id, func() (*models.Company, error) {
		return s.repomanager.Companies(s.db).Get(ctx, id)
	})
}

func (s *CatalogService) CreateCompany(ctx context.Context, c *models.Company) error {
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
		return validationError("company id and name are required")
	}
	if err := s.repomanager.Companies(s.db).Create(ctx, c); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) Trainings(ctx context.Context, skip, limit int) ([]*models.Training, error) {
	return cached(ctx, s, fmt.Sprintf("trainings:%d:%d", skip, limit), func() ([]*models.Training, error) {
		return s.repomanager.Trainings(s.db).List(ctx, skip, limit)
	})
}

func (s *CatalogService) Training(ctx context.Context, id string) (*models.Training, error) {
	return cached(ctx, s, "training:"+id, func() (*models.Training, error) {
		return s.repomanager.Trainings(s.db).Get(ctx, id)
	})
}

func (s *CatalogService) TrainingsBySkill(ctx context.Context, skill string) ([]*models.Training, error) {
	return cached(ctx, s, "trainings:skill:"+skill, func() ([]*models.Training, error) {
		return s.repomanager.Trainings(s.db).ListBySkill(ctx, skill)
	})
}

func (s *CatalogService) CreateTraining(ctx context.Context, t *models.Training) error {
	if strings.TrimSpace(t.ID) == "" || t.Name.In("fr") == "" {
		return validationError("training id and French name are required")
	}
	if err := s.repomanager.Trainings(s.db).Create(ctx, t); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) Testimonials(ctx context.Context, skip, limit int) ([]*models.Testimonial, error) {
	return cached(ctx, s, fmt.Sprintf("testimonials:%d:%d", skip, limit), func() ([]*models.Testimonial, error) {
		return s.repomanager.Testimonials(s.db).ListApproved(ctx, skip, limit)
	})
}

func (s *CatalogService) TestimonialsByJob(ctx context.Context, jobID string) ([]*models.Testimonial, error) {
	return cached(ctx, s, "testimonials:job:"+jobID, func() ([]*models.Testimonial, error) {
		return s.repomanager.Testimonials(s.db).ListApprovedByJob(ctx, jobID)
	})
}

// SubmitTestimonial stores t as pending; it becomes public once approved.
func (s *CatalogService) SubmitTestimonial(ctx context.Context, authorID string, t *models.Testimonial) error {
	if strings.TrimSpace(t.Name) == "" || t.Quote.In("fr") == "" || t.JobID == "" {
		return validationError("name, French quote and job are required")
	}
	t.ID = uuid.NewString()
	t.AuthorID = authorID
	return s.repomanager.Testimonials(s.db).Create(ctx, t)
}

func (s *CatalogService) PendingTestimonials(ctx context.Context) ([]*models.Testimonial, error) {
	return s.repomanager.Testimonials(s.db).ListPending(ctx)
}

func (s *CatalogService) ApproveTestimonial(ctx context.Context, id string) error {
	if err := s.repomanager.Testimonials(s.db).Approve(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) VerifyTestimonial(ctx context.Context, id string) error {
	if err := s.repomanager.Testimonials(s.db).Verify(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) DeleteTestimonial(ctx context.Context, id string) error {
	if err := s.repomanager.Testimonials(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}
