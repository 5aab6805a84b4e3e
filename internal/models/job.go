package models

import "time"

type JobType string

const (
	JobFullTime   JobType = "full_time"
	JobPartTime   JobType = "part_time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
	JobTemporary  JobType = "temporary"
	JobVolunteer  JobType = "volunteer"
)

type WorkplaceType string

const (
	WorkplaceOnSite WorkplaceType = "on_site"
	WorkplaceRemote WorkplaceType = "remote"
	WorkplaceHybrid WorkplaceType = "hybrid"
)

type Job struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	Title               string          `json:"title" gorm:"size:200;not null"`
	Slug                string          `json:"slug" gorm:"size:240;uniqueIndex;not null"`
	Description         string          `json:"description" gorm:"type:text;not null"`
	Requirements        string          `json:"requirements" gorm:"type:text"`
	Responsibilities    string          `json:"responsibilities" gorm:"type:text"`
	CompanyID           uint            `json:"company_id" gorm:"not null;index"`
	Location            string          `json:"location" gorm:"size:200;index"`
	WorkplaceType       WorkplaceType   `json:"workplace_type" gorm:"size:20"`
	JobType             JobType         `json:"job_type" gorm:"size:20;index"`
	ExperienceLevel     ExperienceLevel `json:"experience_level" gorm:"size:20;index"`
	SalaryMin           *float64        `json:"salary_min,omitempty"`
	SalaryMax           *float64        `json:"salary_max,omitempty"`
	SalaryCurrency      string          `json:"salary_currency" gorm:"size:3"`
	SalaryType          string          `json:"salary_type" gorm:"size:20"`
	IsActive            bool            `json:"is_active" gorm:"index"`
	IsFeatured          bool            `json:"is_featured"`
	PostedByID          uint            `json:"posted_by_id" gorm:"not null;index"`
	ApplicationDeadline *time.Time      `json:"application_deadline,omitempty"`
	ViewCount           int64           `json:"view_count"`
	ApplicationCount    int64           `json:"application_count"`
	CreatedAt           time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// AcceptingApplications reports whether the job is open at t.
func (j *Job) AcceptingApplications(t time.Time) bool {
	if !j.IsActive {
		return false
	}
	return j.ApplicationDeadline == nil || t.Before(*j.ApplicationDeadline)
}

type ApplicationStatus string

const (
	ApplicationSubmitted          ApplicationStatus = "submitted"
	ApplicationUnderReview        ApplicationStatus = "under_review"
	ApplicationInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationInterviewed        ApplicationStatus = "interviewed"
	ApplicationOfferExtended      ApplicationStatus = "offer_extended"
	ApplicationHired              ApplicationStatus = "hired"
	ApplicationRejected           ApplicationStatus = "rejected"
	ApplicationWithdrawn          ApplicationStatus = "withdrawn"
)

type JobApplication struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	JobID           uint              `json:"job_id" gorm:"not null;uniqueIndex:idx_job_applicant"`
	ApplicantID     uint              `json:"applicant_id" gorm:"not null;uniqueIndex:idx_job_applicant;index"`
	CoverLetter     string            `json:"cover_letter" gorm:"type:text"`
	ResumeURL       string            `json:"resume_url,omitempty"`
	PortfolioURL    string            `json:"portfolio_url,omitempty"`
	Status          ApplicationStatus `json:"status" gorm:"size:30;index"`
	StatusUpdatedBy *uint             `json:"status_updated_by,omitempty"`
	StatusUpdatedAt time.Time         `json:"status_updated_at"`
	CreatedAt       time.Time         `json:"applied_date"`
}

type SavedJob struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_job_save"`
	JobID     uint      `json:"job_id" gorm:"not null;uniqueIndex:idx_user_job_save"`
	CreatedAt time.Time `json:"saved_at"`
}

// JobView is one counted job view, windowed like PostView.
type JobView struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	JobID     uint      `json:"job_id" gorm:"not null;index:idx_job_views_job_viewed,priority:1"`
	UserID    *uint     `json:"user_id,omitempty" gorm:"index"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	UserAgent string    `json:"user_agent" gorm:"type:text"`
	ViewedAt  time.Time `json:"viewed_at" gorm:"autoCreateTime;index:idx_job_views_job_viewed,priority:2"`
}

type JobRequest struct {
	Title               string     `json:"title" validate:"required,min=2,max=200"`
	Description         string     `json:"description" validate:"required"`
	Requirements        string     `json:"requirements"`
	Responsibilities    string     `json:"responsibilities"`
	CompanyID           uint       `json:"company_id" validate:"required"`
	Location            string     `json:"location" validate:"required,max=200"`
	WorkplaceType       string     `json:"workplace_type" validate:"omitempty,oneof=on_site remote hybrid"`
	JobType             string     `json:"job_type" validate:"required,oneof=full_time part_time contract internship temporary volunteer"`
	ExperienceLevel     string     `json:"experience_level" validate:"required,oneof=entry associate mid director executive"`
	SalaryMin           *float64   `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax           *float64   `json:"salary_max" validate:"omitempty,min=0,gtefield=SalaryMin"`
	SalaryCurrency      string     `json:"salary_currency" validate:"omitempty,len=3"`
	SalaryType          string     `json:"salary_type" validate:"omitempty,oneof=hourly daily monthly yearly"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
}

type UpdateJobRequest struct {
	Title               *string    `json:"title" validate:"omitempty,min=2,max=200"`
	Description         *string    `json:"description" validate:"omitempty,min=1"`
	Location            *string    `json:"location" validate:"omitempty,max=200"`
	IsActive            *bool      `json:"is_active"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
}

type ApplyRequest struct {
	CoverLetter  string `json:"cover_letter" validate:"max=10000"`
	ResumeURL    string `json:"resume_url" validate:"omitempty,url"`
	PortfolioURL string `json:"portfolio_url" validate:"omitempty,url"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=submitted under_review interview_scheduled interviewed offer_extended hired rejected"`
}

// JobQuery carries list filters for the jobs endpoints.
type JobQuery struct {
	Search          string
	Location        string
	JobType         JobType
	ExperienceLevel ExperienceLevel
	WorkplaceType   WorkplaceType
	CompanyID       uint
}
