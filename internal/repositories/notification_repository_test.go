package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUnlessRecent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresNotificationRepository(db)
	ctx := context.Background()

	recipient := testutil.CreateUser(t, db, "Rita", "Recipient")
	sender := testutil.CreateUser(t, db, "Sol", "Sender")
	post := testutil.CreatePost(t, db, recipient.ID, models.VisibilityPublic)

	now := time.Now()
	notice := func(at time.Time) *models.Notification {
		return &models.Notification{
			RecipientID: recipient.ID,
			SenderID:    &sender.ID,
			Type:        models.NotificationLike,
			PostID:      post.ID,
			CreatedAt:   at,
		}
	}

	created, err := repo.CreateUnlessRecent(ctx, notice(now), now.Add(-models.NotificationDedupWindow))
	require.NoError(t, err)
	assert.True(t, created)

	later := now.Add(2 * time.Minute)
	created, err = repo.CreateUnlessRecent(ctx, notice(later), later.Add(-models.NotificationDedupWindow))
	require.NoError(t, err)
	assert.False(t, created, "duplicate inside the window")

	muchLater := now.Add(6 * time.Minute)
	created, err = repo.CreateUnlessRecent(ctx, notice(muchLater), muchLater.Add(-models.NotificationDedupWindow))
	require.NoError(t, err)
	assert.True(t, created, "window has passed")

	other := notice(later)
	other.Type = models.NotificationShare
	created, err = repo.CreateUnlessRecent(ctx, other, later.Add(-models.NotificationDedupWindow))
	require.NoError(t, err)
	assert.True(t, created, "different type is not a duplicate")

	count, err := repo.GetUnreadCount(ctx, recipient.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestNotificationReadState(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresNotificationRepository(db)
	ctx := context.Background()

	recipient := testutil.CreateUser(t, db, "Rita", "Recipient")
	someoneElse := testutil.CreateUser(t, db, "Oz", "Other")
	now := time.Now()

	var ids []uint
	for _, kind := range []models.NotificationType{models.NotificationFollow, models.NotificationSystem} {
		n := &models.Notification{RecipientID: recipient.ID, Type: kind, CreatedAt: now}
		_, err := repo.CreateUnlessRecent(ctx, n, now.Add(-models.NotificationDedupWindow))
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}

	_, err := repo.MarkAsRead(ctx, someoneElse.ID, ids[0], now)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	first, err := repo.MarkAsRead(ctx, recipient.ID, ids[0], now)
	require.NoError(t, err)
	assert.True(t, first.IsRead)
	require.NotNil(t, first.ReadAt)

	again, err := repo.MarkAsRead(ctx, recipient.ID, ids[0], now.Add(time.Hour))
	require.NoError(t, err)
	assert.WithinDuration(t, now, *again.ReadAt, time.Second)

	unread := false
	list, total, err := repo.GetByRecipientID(ctx, recipient.ID, models.NotificationFilter{IsRead: &unread}, repositories.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, ids[1], list[0].ID)

	changed, err := repo.MarkAllAsRead(ctx, recipient.ID, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, changed)

	require.NoError(t, repo.DeleteNotification(ctx, recipient.ID, ids[1]))
	assert.ErrorIs(t, repo.DeleteNotification(ctx, recipient.ID, ids[1]), repositories.ErrNotFound)
}
