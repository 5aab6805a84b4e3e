package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
)

// JobService manages postings, applications and saved jobs.
type JobService struct {
	stores   Stores
	notifier *Notifier
	activity *ActivityLog
	now      Clock
}

func NewJobService(stores Stores, notifier *Notifier, activity *ActivityLog) *JobService {
	return &JobService{stores: stores, notifier: notifier, activity: activity, now: time.Now}
}

// Create posts a job for a company the actor created.
func (s *JobService) Create(ctx context.Context, actor uint, req models.JobRequest) (*models.Job, error) {
	company, err := s.stores.Companies.GetCompanyByID(ctx, req.CompanyID)
	if err != nil {
		if IsKind(storeError(err, "Company"), KindNotFound) {
			return nil, fieldError("company_id", "Company not found")
		}
		return nil, err
	}
	if company.CreatedByID != actor {
		return nil, forbidden("Only the company creator can post jobs for this company")
	}
	if req.ApplicationDeadline != nil && !req.ApplicationDeadline.After(s.now()) {
		return nil, fieldError("application_deadline", "Application deadline must be in the future")
	}
	slug, err := uniqueSlug(ctx, req.Title+" "+company.Name, s.stores.Jobs.SlugExists)
	if err != nil {
		return nil, err
	}
	job := &models.Job{
		Title:               strings.TrimSpace(req.Title),
		Slug:                slug,
		Description:         req.Description,
		Requirements:        req.Requirements,
		Responsibilities:    req.Responsibilities,
		CompanyID:           company.ID,
		Location:            req.Location,
		WorkplaceType:       models.WorkplaceType(req.WorkplaceType),
		JobType:             models.JobType(req.JobType),
		ExperienceLevel:     models.ExperienceLevel(req.ExperienceLevel),
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		SalaryCurrency:      req.SalaryCurrency,
		SalaryType:          req.SalaryType,
		IsActive:            true,
		PostedByID:          actor,
		ApplicationDeadline: req.ApplicationDeadline,
	}
	if job.WorkplaceType == "" {
		job.WorkplaceType = models.WorkplaceOnSite
	}
	if job.SalaryCurrency == "" {
		job.SalaryCurrency = "USD"
	}
	if err := s.stores.Jobs.CreateJob(ctx, job); err != nil {
		return nil, storeError(err, "Job")
	}
	return job, nil
}

func (s *JobService) List(ctx context.Context, query models.JobQuery, page repositories.Page) ([]models.Job, int64, error) {
	return s.stores.Jobs.ListJobs(ctx, query, page)
}

// Get returns a job and counts the view. Closed jobs stay readable by
// their poster only.
func (s *JobService) Get(ctx context.Context, viewer models.Viewer, id uint) (*models.Job, error) {
	job, err := s.stores.Jobs.GetJobByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Job")
	}
	poster := viewer.UserID != nil && *viewer.UserID == job.PostedByID
	if !job.IsActive && !poster {
		return nil, notFound("Job not found")
	}
	if poster {
		return job, nil
	}
	now := s.now()
	counted, err := s.stores.Views.RecordJobView(ctx, &models.JobView{
		JobID:     job.ID,
		UserID:    viewer.UserID,
		IPAddress: viewer.IP,
		UserAgent: viewer.UserAgent,
		ViewedAt:  now,
	}, now.Add(-models.ViewWindow))
	if err != nil {
		return nil, err
	}
	if counted {
		job.ViewCount++
		if viewer.UserID != nil {
			s.activity.trackObject(ctx, *viewer.UserID, models.ActivityJobView, "job", job.ID)
		}
	}
	return job, nil
}

func (s *JobService) ownJob(ctx context.Context, actor, id uint) (*models.Job, error) {
	job, err := s.stores.Jobs.GetJobByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Job")
	}
	if job.PostedByID != actor {
		return nil, forbidden("Only the job poster can manage this job")
	}
	return job, nil
}

func (s *JobService) Update(ctx context.Context, actor, id uint, req models.UpdateJobRequest) (*models.Job, error) {
	job, err := s.ownJob(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	setString(&job.Title, req.Title)
	setString(&job.Description, req.Description)
	setString(&job.Location, req.Location)
	setBool(&job.IsActive, req.IsActive)
	if req.ApplicationDeadline != nil {
		job.ApplicationDeadline = req.ApplicationDeadline
	}
	if err := s.stores.Jobs.UpdateJob(ctx, job); err != nil {
		return nil, storeError(err, "Job")
	}
	return job, nil
}

// Apply files the actor's application. Applying twice reports
// already_applied with the original application.
func (s *JobService) Apply(ctx context.Context, actor, id uint, req models.ApplyRequest) (models.Outcome, *models.JobApplication, error) {
	job, err := s.stores.Jobs.GetJobByID(ctx, id)
	if err != nil {
		return "", nil, storeError(err, "Job")
	}
	if job.PostedByID == actor {
		return "", nil, validation("You cannot apply to your own job posting")
	}
	now := s.now()
	if !job.AcceptingApplications(now) {
		return "", nil, validation("This job is no longer accepting applications")
	}
	res, err := s.stores.Jobs.Apply(ctx, &models.JobApplication{
		JobID:           job.ID,
		ApplicantID:     actor,
		CoverLetter:     req.CoverLetter,
		ResumeURL:       req.ResumeURL,
		PortfolioURL:    req.PortfolioURL,
		Status:          models.ApplicationSubmitted,
		StatusUpdatedAt: now,
		CreatedAt:       now,
	})
	if err != nil {
		return "", nil, err
	}
	if !res.Created {
		return models.OutcomeAlreadyApplied, res.Value, nil
	}
	s.notifier.notify(ctx, models.Notice{
		Recipient: job.PostedByID,
		Sender:    &actor,
		Type:      models.NotificationJobApplication,
		Title:     "New job application",
		Message:   fmt.Sprintf("%s applied to %s", s.notifier.nameOf(ctx, actor), job.Title),
		ActionURL: fmt.Sprintf("/jobs/%d/applications", job.ID),
	})
	s.activity.trackObject(ctx, actor, models.ActivityJobApply, "job", job.ID)
	return models.OutcomeApplied, res.Value, nil
}

func finalStatus(status models.ApplicationStatus) bool {
	switch status {
	case models.ApplicationHired, models.ApplicationRejected, models.ApplicationWithdrawn:
		return true
	}
	return false
}

// Withdraw lets an applicant pull an application that is still open.
func (s *JobService) Withdraw(ctx context.Context, actor, applicationID uint) (*models.JobApplication, error) {
	app, err := s.stores.Jobs.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, storeError(err, "Application")
	}
	if app.ApplicantID != actor {
		return nil, notFound("Application not found")
	}
	if finalStatus(app.Status) {
		return nil, validation(fmt.Sprintf("Application is already %s", app.Status))
	}
	app.Status = models.ApplicationWithdrawn
	app.StatusUpdatedBy = &actor
	app.StatusUpdatedAt = s.now()
	if err := s.stores.Jobs.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *JobService) Applications(ctx context.Context, actor, jobID uint, page repositories.Page) ([]models.JobApplication, int64, error) {
	if _, err := s.ownJob(ctx, actor, jobID); err != nil {
		return nil, 0, err
	}
	return s.stores.Jobs.ListApplicationsForJob(ctx, jobID, page)
}

// UpdateApplicationStatus moves an application through the hiring
// pipeline and tells the applicant.
func (s *JobService) UpdateApplicationStatus(ctx context.Context, actor, applicationID uint, status models.ApplicationStatus) (*models.JobApplication, error) {
	app, err := s.stores.Jobs.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, storeError(err, "Application")
	}
	job, err := s.ownJob(ctx, actor, app.JobID)
	if err != nil {
		return nil, err
	}
	if app.Status == models.ApplicationWithdrawn {
		return nil, validation("Application was withdrawn by the applicant")
	}
	if app.Status == status {
		return app, nil
	}
	app.Status = status
	app.StatusUpdatedBy = &actor
	app.StatusUpdatedAt = s.now()
	if err := s.stores.Jobs.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}
	s.notifier.notify(ctx, models.Notice{
		Recipient: app.ApplicantID,
		Sender:    &actor,
		Type:      models.NotificationSystem,
		Title:     "Application update",
		Message:   fmt.Sprintf("Your application for %s is now %s", job.Title, strings.ReplaceAll(string(status), "_", " ")),
		ActionURL: "/jobs/applications",
	})
	return app, nil
}

func (s *JobService) MyApplications(ctx context.Context, actor uint, page repositories.Page) ([]models.JobApplication, int64, error) {
	return s.stores.Jobs.ListApplicationsByUser(ctx, actor, page)
}

func (s *JobService) MyPostings(ctx context.Context, actor uint, page repositories.Page) ([]models.Job, int64, error) {
	return s.stores.Jobs.ListJobsByPoster(ctx, actor, page)
}

func (s *JobService) Recommended(ctx context.Context, actor uint, page repositories.Page) ([]models.Job, int64, error) {
	user, err := s.stores.Users.GetUserByID(ctx, actor)
	if err != nil {
		return nil, 0, storeError(err, "User")
	}
	return s.stores.Jobs.RecommendedJobs(ctx, user, page)
}

func (s *JobService) Save(ctx context.Context, actor, id uint) (models.Outcome, error) {
	job, err := s.stores.Jobs.GetJobByID(ctx, id)
	if err != nil {
		return "", storeError(err, "Job")
	}
	if !job.IsActive {
		return "", notFound("Job not found")
	}
	created, err := s.stores.Jobs.SaveJob(ctx, actor, id)
	if err != nil {
		return "", err
	}
	if !created {
		return models.OutcomeAlreadySaved, nil
	}
	s.activity.trackObject(ctx, actor, models.ActivityJobSave, "job", id)
	return models.OutcomeSaved, nil
}

func (s *JobService) Unsave(ctx context.Context, actor, id uint) (models.Outcome, error) {
	removed, err := s.stores.Jobs.UnsaveJob(ctx, actor, id)
	if err != nil {
		return "", err
	}
	if !removed {
		return "", notFound("Job is not saved")
	}
	return models.OutcomeUnsaved, nil
}

func (s *JobService) Saved(ctx context.Context, actor uint, page repositories.Page) ([]models.Job, int64, error) {
	return s.stores.Jobs.ListSavedJobs(ctx, actor, page)
}
