package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
)

// CompanyService manages company pages and their followers.
type CompanyService struct {
	stores   Stores
	activity *ActivityLog
}

func NewCompanyService(stores Stores, activity *ActivityLog) *CompanyService {
	return &CompanyService{stores: stores, activity: activity}
}

// uniqueSlug appends -1, -2, ... to the slugified name until exists
// reports the slug free.
func uniqueSlug(ctx context.Context, name string, exists func(context.Context, string) (bool, error)) (string, error) {
	base := Slugify(name)
	slug := base
	for n := 1; ; n++ {
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

func (s *CompanyService) Create(ctx context.Context, actor uint, req models.CompanyRequest) (*models.Company, error) {
	slug, err := uniqueSlug(ctx, req.Name, s.stores.Companies.SlugExists)
	if err != nil {
		return nil, err
	}
	company := &models.Company{
		Slug:        slug,
		CreatedByID: actor,
		IsActive:    true,
	}
	applyCompany(company, req)
	if err := s.stores.Companies.CreateCompany(ctx, company); err != nil {
		return nil, storeError(err, "Company")
	}
	return company, nil
}

func applyCompany(c *models.Company, req models.CompanyRequest) {
	c.Name = strings.TrimSpace(req.Name)
	c.Description = req.Description
	c.Website = req.Website
	c.Industry = req.Industry
	c.CompanySize = req.CompanySize
	c.FoundedYear = req.FoundedYear
	c.Headquarters = req.Headquarters
	c.LogoURL = req.LogoURL
}

func (s *CompanyService) List(ctx context.Context, search, industry string, page repositories.Page) ([]models.Company, int64, error) {
	return s.stores.Companies.ListCompanies(ctx, search, industry, page)
}

func (s *CompanyService) activeCompany(ctx context.Context, id uint) (*models.Company, error) {
	company, err := s.stores.Companies.GetCompanyByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Company")
	}
	if !company.IsActive {
		return nil, notFound("Company not found")
	}
	return company, nil
}

func (s *CompanyService) Get(ctx context.Context, id uint) (*models.Company, error) {
	return s.activeCompany(ctx, id)
}

// Update is limited to the member who created the company. The slug is
// kept so existing links keep working.
func (s *CompanyService) Update(ctx context.Context, actor, id uint, req models.CompanyRequest) (*models.Company, error) {
	company, err := s.activeCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if company.CreatedByID != actor {
		return nil, forbidden("Only the company creator can edit this company")
	}
	applyCompany(company, req)
	if err := s.stores.Companies.UpdateCompany(ctx, company); err != nil {
		return nil, storeError(err, "Company")
	}
	return company, nil
}

func (s *CompanyService) Follow(ctx context.Context, actor, id uint) (models.Outcome, error) {
	if _, err := s.activeCompany(ctx, id); err != nil {
		return "", err
	}
	created, err := s.stores.Companies.FollowCompany(ctx, id, actor)
	if err != nil {
		return "", err
	}
	if !created {
		return models.OutcomeAlreadyFollowed, nil
	}
	s.activity.trackObject(ctx, actor, models.ActivityCompanyFollow, "company", id)
	return models.OutcomeFollowed, nil
}

func (s *CompanyService) Unfollow(ctx context.Context, actor, id uint) (models.Outcome, error) {
	removed, err := s.stores.Companies.UnfollowCompany(ctx, id, actor)
	if err != nil {
		return "", err
	}
	if !removed {
		return "", notFound("You are not following this company")
	}
	return models.OutcomeUnfollowed, nil
}

func (s *CompanyService) Followed(ctx context.Context, actor uint, page repositories.Page) ([]models.Company, int64, error) {
	return s.stores.Companies.ListFollowedCompanies(ctx, actor, page)
}

func (s *CompanyService) Stats(ctx context.Context, id uint) (*models.CompanyStats, error) {
	stats, err := s.stores.Companies.GetStats(ctx, id)
	return stats, storeError(err, "Company")
}
