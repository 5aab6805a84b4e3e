package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryActivity struct {
	mu      sync.Mutex
	stored  []models.Activity
	since   time.Time
	failing bool
}

func (m *memoryActivity) InsertActivity(_ context.Context, a *models.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("mongo unavailable")
	}
	m.stored = append(m.stored, *a)
	return nil
}

func (m *memoryActivity) RecentActivity(_ context.Context, userID uint, limit int64) ([]models.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Activity
	for i := len(m.stored) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if m.stored[i].UserID == userID {
			out = append(out, m.stored[i])
		}
	}
	return out, nil
}

func (m *memoryActivity) Summary(_ context.Context, userID uint, since time.Time) ([]models.ActivityCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.since = since
	counts := map[models.ActivityType]int64{}
	for _, a := range m.stored {
		if a.UserID == userID && !a.Timestamp.Before(since) {
			counts[a.Type]++
		}
	}
	out := make([]models.ActivityCount, 0, len(counts))
	for kind, n := range counts {
		out = append(out, models.ActivityCount{Type: kind, Count: n})
	}
	return out, nil
}

func TestActivityLogDisabled(t *testing.T) {
	log := NewActivityLog(nil)
	assert.False(t, log.Enabled())
	log.Track(context.Background(), models.Activity{UserID: 1, Type: models.ActivityLogin})

	recent, err := log.Recent(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	_, err = log.Summary(context.Background(), 1, 0)
	assert.True(t, IsKind(err, KindValidation))
}

func TestActivityLogTracksAndSummarizes(t *testing.T) {
	repo := &memoryActivity{}
	log := NewActivityLog(repo)
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	log.now = func() time.Time { return now }
	ctx := context.Background()

	log.Track(ctx, models.Activity{UserID: 7, Type: models.ActivityLogin})
	log.trackObject(ctx, 7, models.ActivityPostCreate, "post", 3)
	log.trackObject(ctx, 7, models.ActivityPostCreate, "post", 4)
	log.Track(ctx, models.Activity{Type: models.ActivityLogin})
	require.Len(t, repo.stored, 3, "anonymous activity is dropped")
	assert.Equal(t, now, repo.stored[0].Timestamp)

	recent, err := log.Recent(ctx, 7, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, uint(4), recent[0].ObjectID)

	summary, err := log.Summary(ctx, 7, 30)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.ActivityCount{
		{Type: models.ActivityLogin, Count: 1},
		{Type: models.ActivityPostCreate, Count: 2},
	}, summary)
	assert.Equal(t, now.AddDate(0, 0, -30), repo.since)
}

func TestActivityFailuresAreSwallowed(t *testing.T) {
	repo := &memoryActivity{failing: true}
	log := NewActivityLog(repo)
	assert.NotPanics(t, func() {
		log.Track(context.Background(), models.Activity{UserID: 1, Type: models.ActivityLogin})
	})
	assert.Empty(t, repo.stored)
}
