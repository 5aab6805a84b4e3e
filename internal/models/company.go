package models

import "time"

type Company struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"size:200;not null"`
	Slug          string    `json:"slug" gorm:"size:220;uniqueIndex;not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Website       string    `json:"website"`
	Industry      string    `json:"industry" gorm:"size:100;index"`
	CompanySize   string    `json:"company_size" gorm:"size:20"`
	FoundedYear   *int      `json:"founded_year,omitempty"`
	Headquarters  string    `json:"headquarters" gorm:"size:200"`
	LogoURL       string    `json:"logo_url,omitempty"`
	CreatedByID   uint      `json:"created_by_id" gorm:"not null;index"`
	IsVerified    bool      `json:"is_verified"`
	IsActive      bool      `json:"is_active" gorm:"index"`
	FollowerCount int64     `json:"follower_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CompanyFollower struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CompanyID uint      `json:"company_id" gorm:"not null;uniqueIndex:idx_company_follower"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_company_follower;index"`
	CreatedAt time.Time `json:"created_at"`
}

type CompanyRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	Website      string `json:"website" validate:"omitempty,url"`
	Industry     string `json:"industry" validate:"max=100"`
	CompanySize  string `json:"company_size" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 501-1000 1001-5000 5001-10000 10000+"`
	FoundedYear  *int   `json:"founded_year" validate:"omitempty,min=1800,max=2100"`
	Headquarters string `json:"headquarters" validate:"max=200"`
	LogoURL      string `json:"logo_url" validate:"omitempty,url"`
}

type CompanyStats struct {
	CompanyID     uint  `json:"company_id"`
	FollowerCount int64 `json:"follower_count"`
	OpenJobs      int64 `json:"open_jobs"`
	TotalJobs     int64 `json:"total_jobs"`
	Applications  int64 `json:"applications"`
}
