package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"acme": true, "acme-1": true}
	exists := func(_ context.Context, slug string) (bool, error) { return taken[slug], nil }

	slug, err := uniqueSlug(context.Background(), "Acme", exists)
	require.NoError(t, err)
	assert.Equal(t, "acme-2", slug)

	slug, err = uniqueSlug(context.Background(), "Globex Inc.", exists)
	require.NoError(t, err)
	assert.Equal(t, "globex-inc", slug)
}

type hiringEnv struct {
	*env
	companies *CompanyService
	jobs      *JobService
}

func newHiringEnv(t *testing.T) *hiringEnv {
	e := newEnv(t)
	activity := NewActivityLog(nil)
	jobs := NewJobService(e.stores, e.notifier, activity)
	jobs.now = e.clock.Now
	return &hiringEnv{env: e, companies: NewCompanyService(e.stores, activity), jobs: jobs}
}

func (h *hiringEnv) job(t *testing.T, poster uint) *models.Job {
	t.Helper()
	ctx := context.Background()
	company, err := h.companies.Create(ctx, poster, models.CompanyRequest{Name: "Acme Corp"})
	require.NoError(t, err)
	job, err := h.jobs.Create(ctx, poster, models.JobRequest{
		Title:           "Go Engineer",
		Description:     "Build services",
		CompanyID:       company.ID,
		Location:        "Remote",
		JobType:         string(models.JobFullTime),
		ExperienceLevel: string(models.ExperienceMid),
	})
	require.NoError(t, err)
	return job
}

func TestCompanySlugsStayUnique(t *testing.T) {
	h := newHiringEnv(t)
	ctx := context.Background()
	owner := h.user(t, "Olga")

	first, err := h.companies.Create(ctx, owner.ID, models.CompanyRequest{Name: "Acme Corp"})
	require.NoError(t, err)
	second, err := h.companies.Create(ctx, owner.ID, models.CompanyRequest{Name: "Acme  Corp!"})
	require.NoError(t, err)
	assert.Equal(t, "acme-corp", first.Slug)
	assert.Equal(t, "acme-corp-1", second.Slug)

	other := h.user(t, "Otto")
	_, err = h.companies.Update(ctx, other.ID, first.ID, models.CompanyRequest{Name: "Hijacked"})
	assert.True(t, IsKind(err, KindForbidden))

	outcome, err := h.companies.Follow(ctx, other.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeFollowed, outcome)
	outcome, err = h.companies.Follow(ctx, other.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeAlreadyFollowed, outcome)

	stats, err := h.companies.Stats(ctx, first.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.FollowerCount)
}

func TestJobNeedsCompanyOwner(t *testing.T) {
	h := newHiringEnv(t)
	ctx := context.Background()
	owner := h.user(t, "Olga")
	other := h.user(t, "Otto")
	company, err := h.companies.Create(ctx, owner.ID, models.CompanyRequest{Name: "Initech"})
	require.NoError(t, err)

	req := models.JobRequest{
		Title:           "Analyst",
		Description:     "TPS reports",
		CompanyID:       company.ID,
		Location:        "Austin",
		JobType:         string(models.JobContract),
		ExperienceLevel: string(models.ExperienceEntry),
	}
	_, err = h.jobs.Create(ctx, other.ID, req)
	assert.True(t, IsKind(err, KindForbidden))

	past := h.clock.Now().Add(-time.Hour)
	req.ApplicationDeadline = &past
	_, err = h.jobs.Create(ctx, owner.ID, req)
	assert.True(t, IsKind(err, KindValidation))
}

func TestApplyNotifiesPoster(t *testing.T) {
	h := newHiringEnv(t)
	ctx := context.Background()
	poster := h.user(t, "Pia")
	applicant := h.user(t, "Abe")
	job := h.job(t, poster.ID)

	_, _, err := h.jobs.Apply(ctx, poster.ID, job.ID, models.ApplyRequest{})
	assert.True(t, IsKind(err, KindValidation), "posters cannot apply to their own job")

	outcome, app, err := h.jobs.Apply(ctx, applicant.ID, job.ID, models.ApplyRequest{CoverLetter: "hire me"})
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeApplied, outcome)
	assert.Equal(t, models.ApplicationSubmitted, app.Status)

	outcome, again, err := h.jobs.Apply(ctx, applicant.ID, job.ID, models.ApplyRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeAlreadyApplied, outcome)
	assert.Equal(t, app.ID, again.ID)

	assert.Len(t, h.notifications(t, poster.ID, models.NotificationJobApplication), 1)

	stored, err := h.stores.Jobs.GetJobByID(ctx, job.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stored.ApplicationCount)
}

func TestApplicationPipeline(t *testing.T) {
	h := newHiringEnv(t)
	ctx := context.Background()
	poster := h.user(t, "Pia")
	applicant := h.user(t, "Abe")
	job := h.job(t, poster.ID)
	_, app, err := h.jobs.Apply(ctx, applicant.ID, job.ID, models.ApplyRequest{})
	require.NoError(t, err)

	_, err = h.jobs.UpdateApplicationStatus(ctx, applicant.ID, app.ID, models.ApplicationHired)
	assert.True(t, IsKind(err, KindForbidden))

	updated, err := h.jobs.UpdateApplicationStatus(ctx, poster.ID, app.ID, models.ApplicationUnderReview)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationUnderReview, updated.Status)
	assert.Len(t, h.notifications(t, applicant.ID, models.NotificationSystem), 1)

	withdrawn, err := h.jobs.Withdraw(ctx, applicant.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationWithdrawn, withdrawn.Status)

	_, err = h.jobs.Withdraw(ctx, applicant.ID, app.ID)
	assert.True(t, IsKind(err, KindValidation))
	_, err = h.jobs.UpdateApplicationStatus(ctx, poster.ID, app.ID, models.ApplicationHired)
	assert.True(t, IsKind(err, KindValidation))
}

func TestJobViewsCountedOncePerWindow(t *testing.T) {
	h := newHiringEnv(t)
	ctx := context.Background()
	poster := h.user(t, "Pia")
	reader := h.user(t, "Rex")
	job := h.job(t, poster.ID)
	viewer := models.Viewer{UserID: &reader.ID}

	got, err := h.jobs.Get(ctx, viewer, job.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ViewCount)

	got, err = h.jobs.Get(ctx, viewer, job.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ViewCount)

	got, err = h.jobs.Get(ctx, models.Viewer{UserID: &poster.ID}, job.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ViewCount, "posters do not count")

	closed := false
	_, err = h.jobs.Update(ctx, poster.ID, job.ID, models.UpdateJobRequest{IsActive: &closed})
	require.NoError(t, err)
	_, err = h.jobs.Get(ctx, viewer, job.ID)
	assert.True(t, IsKind(err, KindNotFound))
}
