package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompanyByID(ctx context.Context, id uint) (*models.Company, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListCompanies(ctx context.Context, search, industry string, page Page) ([]models.Company, int64, error)
	UpdateCompany(ctx context.Context, company *models.Company) error
	FollowCompany(ctx context.Context, companyID, userID uint) (bool, error)
	UnfollowCompany(ctx context.Context, companyID, userID uint) (bool, error)
	IsFollowing(ctx context.Context, companyID, userID uint) (bool, error)
	ListFollowedCompanies(ctx context.Context, userID uint, page Page) ([]models.Company, int64, error)
	GetStats(ctx context.Context, companyID uint) (*models.CompanyStats, error)
}

// PostgresCompanyRepository implements CompanyRepository for PostgreSQL
type PostgresCompanyRepository struct {
	db *gorm.DB
}

func NewPostgresCompanyRepository(db *gorm.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) CreateCompany(ctx context.Context, company *models.Company) error {
	return translate(r.db.WithContext(ctx).Create(company).Error)
}

func (r *PostgresCompanyRepository) GetCompanyByID(ctx context.Context, id uint) (*models.Company, error) {
	var c models.Company
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *PostgresCompanyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Company{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// ListCompanies pages through active companies, most followed first
func (r *PostgresCompanyRepository) ListCompanies(ctx context.Context, search, industry string, page Page) ([]models.Company, int64, error) {
	var (
		companies []models.Company
		total     int64
	)
	q := r.db.WithContext(ctx).Model(&models.Company{}).Where("is_active = ?", true)
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(headquarters) LIKE ?", like, like, like)
	}
	if industry != "" {
		q = q.Where("LOWER(industry) = ?", strings.ToLower(industry))
	}
	q = q.Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("follower_count DESC, name").Scopes(page.apply).Find(&companies).Error
	return companies, total, err
}

func (r *PostgresCompanyRepository) UpdateCompany(ctx context.Context, company *models.Company) error {
	return translate(r.db.WithContext(ctx).Save(company).Error)
}

// FollowCompany adds the follower and bumps follower_count together.
func (r *PostgresCompanyRepository) FollowCompany(ctx context.Context, companyID, userID uint) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = insertIfAbsent(tx, &models.CompanyFollower{CompanyID: companyID, UserID: userID})
		if err != nil || !created {
			return err
		}
		return incrementColumn(tx, &models.Company{}, companyID, "follower_count", 1)
	})
	return created, translate(err)
}

func (r *PostgresCompanyRepository) UnfollowCompany(ctx context.Context, companyID, userID uint) (bool, error) {
	var removed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("company_id = ? AND user_id = ?", companyID, userID).Delete(&models.CompanyFollower{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected > 0
		if !removed {
			return nil
		}
		return decrementColumn(tx, &models.Company{}, companyID, "follower_count", 1)
	})
	return removed, err
}

func (r *PostgresCompanyRepository) IsFollowing(ctx context.Context, companyID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CompanyFollower{}).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresCompanyRepository) ListFollowedCompanies(ctx context.Context, userID uint, page Page) ([]models.Company, int64, error) {
	var (
		companies []models.Company
		total     int64
	)
	q := r.db.WithContext(ctx).Model(&models.Company{}).
		Joins("JOIN company_followers ON company_followers.company_id = companies.id").
		Where("company_followers.user_id = ?", userID).
		Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("company_followers.created_at DESC").Scopes(page.apply).Find(&companies).Error
	return companies, total, err
}

func (r *PostgresCompanyRepository) GetStats(ctx context.Context, companyID uint) (*models.CompanyStats, error) {
	db := r.db.WithContext(ctx)
	c, err := r.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	stats := &models.CompanyStats{CompanyID: c.ID, FollowerCount: c.FollowerCount}
	if err := db.Model(&models.Job{}).Where("company_id = ?", companyID).Count(&stats.TotalJobs).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Job{}).Where("company_id = ? AND is_active = ?", companyID, true).Count(&stats.OpenJobs).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.JobApplication{}).
		Where("job_id IN (SELECT id FROM jobs WHERE company_id = ?)", companyID).
		Count(&stats.Applications).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
