package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

type JobRepository interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJobByID(ctx context.Context, id uint) (*models.Job, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListJobs(ctx context.Context, query models.JobQuery, page Page) ([]models.Job, int64, error)
	ListJobsByPoster(ctx context.Context, posterID uint, page Page) ([]models.Job, int64, error)
	RecommendedJobs(ctx context.Context, user *models.User, page Page) ([]models.Job, int64, error)
	UpdateJob(ctx context.Context, job *models.Job) error

	Apply(ctx context.Context, app *models.JobApplication) (models.Upsert[*models.JobApplication], error)
	GetApplication(ctx context.Context, id uint) (*models.JobApplication, error)
	ListApplicationsForJob(ctx context.Context, jobID uint, page Page) ([]models.JobApplication, int64, error)
	ListApplicationsByUser(ctx context.Context, userID uint, page Page) ([]models.JobApplication, int64, error)
	UpdateApplication(ctx context.Context, app *models.JobApplication) error

	SaveJob(ctx context.Context, userID, jobID uint) (bool, error)
	UnsaveJob(ctx context.Context, userID, jobID uint) (bool, error)
	ListSavedJobs(ctx context.Context, userID uint, page Page) ([]models.Job, int64, error)
}

// PostgresJobRepository implements JobRepository for PostgreSQL
type PostgresJobRepository struct {
	db *gorm.DB
}

func NewPostgresJobRepository(db *gorm.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) CreateJob(ctx context.Context, job *models.Job) error {
	return translate(r.db.WithContext(ctx).Create(job).Error)
}

func (r *PostgresJobRepository) GetJobByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (r *PostgresJobRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func pageJobs(q *gorm.DB, order string, page Page) ([]models.Job, int64, error) {
	var (
		jobs  []models.Job
		total int64
	)
	q = q.Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order(order).Scopes(page.apply).Find(&jobs).Error
	return jobs, total, err
}

// ListJobs pages through open jobs matching the query, newest first
func (r *PostgresJobRepository) ListJobs(ctx context.Context, query models.JobQuery, page Page) ([]models.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{}).Where("jobs.is_active = ?", true)
	if s := strings.TrimSpace(query.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(jobs.title) LIKE ? OR LOWER(jobs.description) LIKE ? OR jobs.company_id IN (SELECT id FROM companies WHERE LOWER(name) LIKE ?)",
			like, like, like)
	}
	if query.Location != "" {
		q = q.Where("LOWER(jobs.location) LIKE ?", "%"+strings.ToLower(query.Location)+"%")
	}
	if query.JobType != "" {
		q = q.Where("jobs.job_type = ?", query.JobType)
	}
	if query.ExperienceLevel != "" {
		q = q.Where("jobs.experience_level = ?", query.ExperienceLevel)
	}
	if query.WorkplaceType != "" {
		q = q.Where("jobs.workplace_type = ?", query.WorkplaceType)
	}
	if query.CompanyID != 0 {
		q = q.Where("jobs.company_id = ?", query.CompanyID)
	}
	return pageJobs(q, "jobs.is_featured DESC, jobs.created_at DESC, jobs.id DESC", page)
}

func (r *PostgresJobRepository) ListJobsByPoster(ctx context.Context, posterID uint, page Page) ([]models.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{}).Where("posted_by_id = ?", posterID)
	return pageJobs(q, "created_at DESC, id DESC", page)
}

// RecommendedJobs matches open jobs on the member's experience level or the
// hiring company's industry, skipping jobs they already applied to.
func (r *PostgresJobRepository) RecommendedJobs(ctx context.Context, user *models.User, page Page) ([]models.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("jobs.is_active = ?", true).
		Where("jobs.posted_by_id <> ?", user.ID).
		Where("jobs.id NOT IN (SELECT job_id FROM job_applications WHERE applicant_id = ?)", user.ID).
		Where("jobs.experience_level = ? OR jobs.company_id IN (SELECT id FROM companies WHERE industry <> '' AND LOWER(industry) = ?)",
			user.ExperienceLevel, strings.ToLower(user.Industry))
	return pageJobs(q, "jobs.created_at DESC, jobs.id DESC", page)
}

func (r *PostgresJobRepository) UpdateJob(ctx context.Context, job *models.Job) error {
	return translate(r.db.WithContext(ctx).Save(job).Error)
}

// Apply files one application per member and job. A repeated application
// returns the existing one with Created false.
func (r *PostgresJobRepository) Apply(ctx context.Context, app *models.JobApplication) (models.Upsert[*models.JobApplication], error) {
	res := models.Upsert[*models.JobApplication]{Value: app}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := insertIfAbsent(tx, app)
		if err != nil {
			return err
		}
		if !created {
			existing := &models.JobApplication{}
			if err := tx.Where("job_id = ? AND applicant_id = ?", app.JobID, app.ApplicantID).First(existing).Error; err != nil {
				return err
			}
			res.Value = existing
			return nil
		}
		res.Created = true
		return incrementColumn(tx, &models.Job{}, app.JobID, "application_count", 1)
	})
	return res, translate(err)
}

func (r *PostgresJobRepository) GetApplication(ctx context.Context, id uint) (*models.JobApplication, error) {
	var app models.JobApplication
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func pageApplications(q *gorm.DB, page Page) ([]models.JobApplication, int64, error) {
	var (
		apps  []models.JobApplication
		total int64
	)
	q = q.Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Scopes(page.apply).Find(&apps).Error
	return apps, total, err
}

func (r *PostgresJobRepository) ListApplicationsForJob(ctx context.Context, jobID uint, page Page) ([]models.JobApplication, int64, error) {
	return pageApplications(r.db.WithContext(ctx).Model(&models.JobApplication{}).Where("job_id = ?", jobID), page)
}

func (r *PostgresJobRepository) ListApplicationsByUser(ctx context.Context, userID uint, page Page) ([]models.JobApplication, int64, error) {
	return pageApplications(r.db.WithContext(ctx).Model(&models.JobApplication{}).Where("applicant_id = ?", userID), page)
}

func (r *PostgresJobRepository) UpdateApplication(ctx context.Context, app *models.JobApplication) error {
	return r.db.WithContext(ctx).Model(app).
		Select("status", "status_updated_by", "status_updated_at").
		Updates(app).Error
}

func (r *PostgresJobRepository) SaveJob(ctx context.Context, userID, jobID uint) (bool, error) {
	created, err := insertIfAbsent(r.db.WithContext(ctx), &models.SavedJob{UserID: userID, JobID: jobID})
	return created, translate(err)
}

func (r *PostgresJobRepository) UnsaveJob(ctx context.Context, userID, jobID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND job_id = ?", userID, jobID).Delete(&models.SavedJob{})
	return res.RowsAffected > 0, res.Error
}

func (r *PostgresJobRepository) ListSavedJobs(ctx context.Context, userID uint, page Page) ([]models.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{}).
		Joins("JOIN saved_jobs ON saved_jobs.job_id = jobs.id").
		Where("saved_jobs.user_id = ?", userID)
	return pageJobs(q, "saved_jobs.created_at DESC, saved_jobs.id DESC", page)
}
