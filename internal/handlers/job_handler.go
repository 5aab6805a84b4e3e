package handlers

import (
	"net/http"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// JobHandler handles job postings, applications and saved jobs
type JobHandler struct {
	jobs *services.JobService
}

func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// RegisterJobRoutes registers job and application routes
func (h *JobHandler) RegisterJobRoutes(g *echo.Group, mw Guards) {
	g.GET("/jobs", h.ListJobs, mw.Optional)
	g.POST("/jobs", h.CreateJob, mw.Required)
	g.GET("/jobs/saved", h.SavedJobs, mw.Required)
	g.GET("/jobs/mine", h.MyPostings, mw.Required)
	g.GET("/jobs/recommended", h.RecommendedJobs, mw.Required)
	g.GET("/jobs/:id", h.GetJob, mw.Optional)
	g.PUT("/jobs/:id", h.UpdateJob, mw.Required)
	g.POST("/jobs/:id/apply", h.Apply, mw.Required)
	g.POST("/jobs/:id/save", h.SaveJob, mw.Required)
	g.DELETE("/jobs/:id/save", h.UnsaveJob, mw.Required)
	g.GET("/jobs/:id/applications", h.JobApplications, mw.Required)

	g.GET("/applications", h.MyApplications, mw.Required)
	g.PUT("/applications/:id/status", h.UpdateApplicationStatus, mw.Required)
	g.DELETE("/applications/:id", h.WithdrawApplication, mw.Required)
}

func jobQuery(c echo.Context) models.JobQuery {
	return models.JobQuery{
		Search:          c.QueryParam("search"),
		Location:        c.QueryParam("location"),
		JobType:         models.JobType(c.QueryParam("job_type")),
		ExperienceLevel: models.ExperienceLevel(c.QueryParam("experience_level")),
		WorkplaceType:   models.WorkplaceType(c.QueryParam("workplace_type")),
		CompanyID:       queryUint(c, "company_id"),
	}
}

// ListJobs lists active jobs matching the query filters
func (h *JobHandler) ListJobs(c echo.Context) error {
	page := pagination(c, defaultPageSize, maxPageSize)
	jobs, total, err := h.jobs.List(c.Request().Context(), jobQuery(c), page)
	if err != nil {
		return err
	}
	return paginated(c, "jobs", jobs, total, page)
}

func (h *JobHandler) CreateJob(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.JobRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	job, err := h.jobs.Create(c.Request().Context(), currentUserID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, job)
}

// GetJob returns a job and counts the view
func (h *JobHandler) GetJob(c echo.Context) error {
	id, err := parseID(c, "id", "job")
	if err != nil {
		return err
	}
	job, err := h.jobs.Get(c.Request().Context(), viewerFromContext(c), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, job)
}

func (h *JobHandler) UpdateJob(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "job")
	if err != nil {
		return err
	}
	var req models.UpdateJobRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	job, err := h.jobs.Update(c.Request().Context(), currentUserID, id, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, job)
}

func (h *JobHandler) Apply(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "job")
	if err != nil {
		return err
	}
	var req models.ApplyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	outcome, application, err := h.jobs.Apply(c.Request().Context(), currentUserID, id, req)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if outcome == models.OutcomeApplied {
		status = http.StatusCreated
	}
	return success(c, status, echo.Map{"status": outcome, "application": application})
}

func (h *JobHandler) WithdrawApplication(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "application")
	if err != nil {
		return err
	}
	application, err := h.jobs.Withdraw(c.Request().Context(), currentUserID, id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, application)
}

// JobApplications lists applications to a job, for its poster only
func (h *JobHandler) JobApplications(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "job")
	if err != nil {
		return err
	}
	page := pagination(c, defaultPageSize, maxPageSize)
	apps, total, err := h.jobs.Applications(c.Request().Context(), currentUserID, id, page)
	if err != nil {
		return err
	}
	return paginated(c, "applications", apps, total, page)
}

func (h *JobHandler) UpdateApplicationStatus(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "application")
	if err != nil {
		return err
	}
	var req models.ApplicationStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	application, err := h.jobs.UpdateApplicationStatus(c.Request().Context(), currentUserID, id, models.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, application)
}

func (h *JobHandler) MyApplications(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	page := pagination(c, defaultPageSize, maxPageSize)
	apps, total, err := h.jobs.MyApplications(c.Request().Context(), currentUserID, page)
	if err != nil {
		return err
	}
	return paginated(c, "applications", apps, total, page)
}

func (h *JobHandler) MyPostings(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	page := pagination(c, defaultPageSize, maxPageSize)
	jobs, total, err := h.jobs.MyPostings(c.Request().Context(), currentUserID, page)
	if err != nil {
		return err
	}
	return paginated(c, "jobs", jobs, total, page)
}

func (h *JobHandler) RecommendedJobs(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	page := pagination(c, defaultPageSize, maxPageSize)
	jobs, total, err := h.jobs.Recommended(c.Request().Context(), currentUserID, page)
	if err != nil {
		return err
	}
	return paginated(c, "jobs", jobs, total, page)
}

func (h *JobHandler) SaveJob(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "job")
	if err != nil {
		return err
	}
	outcome, err := h.jobs.Save(c.Request().Context(), currentUserID, id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome})
}

func (h *JobHandler) UnsaveJob(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "job")
	if err != nil {
		return err
	}
	outcome, err := h.jobs.Unsave(c.Request().Context(), currentUserID, id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome})
}

func (h *JobHandler) SavedJobs(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	page := pagination(c, defaultPageSize, maxPageSize)
	jobs, total, err := h.jobs.Saved(c.Request().Context(), currentUserID, page)
	if err != nil {
		return err
	}
	return paginated(c, "jobs", jobs, total, page)
}
