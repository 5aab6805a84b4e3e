package services

import (
	"context"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/pkg/logging"
	"github.com/anonto42/linkedin-clone/backend/pkg/metrics"
)

const activityTimeout = 5 * time.Second

// ActivityLog records member activity for analytics. Built with a nil
// repository it records nothing and reports empty history.
type ActivityLog struct {
	repo repositories.ActivityRepository
	now  Clock
}

func NewActivityLog(repo repositories.ActivityRepository) *ActivityLog {
	return &ActivityLog{repo: repo, now: time.Now}
}

// Enabled reports whether activity is being stored.
func (l *ActivityLog) Enabled() bool {
	return l != nil && l.repo != nil
}

// Track writes one activity. Failures are logged and counted, never returned.
func (l *ActivityLog) Track(ctx context.Context, activity models.Activity) {
	if !l.Enabled() || activity.UserID == 0 {
		return
	}
	if activity.Timestamp.IsZero() {
		activity.Timestamp = l.now()
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), activityTimeout)
	defer cancel()
	if err := l.repo.InsertActivity(ctx, &activity); err != nil {
		metrics.ActivityTrackFailures.Inc()
		logging.Warn().Err(err).
			Str("activity_type", string(activity.Type)).
			Uint("user_id", activity.UserID).
			Msg("activity not recorded")
	}
}

// trackObject is Track for the common "user did X to object Y" case.
func (l *ActivityLog) trackObject(ctx context.Context, userID uint, kind models.ActivityType, objectType string, objectID uint) {
	l.Track(ctx, models.Activity{UserID: userID, Type: kind, ObjectType: objectType, ObjectID: objectID})
}

func (l *ActivityLog) Recent(ctx context.Context, userID uint, limit int64) ([]models.Activity, error) {
	if !l.Enabled() {
		return []models.Activity{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, activityTimeout)
	defer cancel()
	return l.repo.RecentActivity(ctx, userID, limit)
}

// Summary counts the member's activity per type over the last days.
func (l *ActivityLog) Summary(ctx context.Context, userID uint, days int) ([]models.ActivityCount, error) {
	if days < 1 {
		return nil, fieldError("days", "days must be at least 1")
	}
	if !l.Enabled() {
		return []models.ActivityCount{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, activityTimeout)
	defer cancel()
	return l.repo.Summary(ctx, userID, l.now().AddDate(0, 0, -days))
}
