package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitDedupWindow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	recipient := e.user(t, "Rita")
	sender := e.user(t, "Sol")

	notice := models.Notice{
		Recipient: recipient.ID,
		Sender:    &sender.ID,
		Type:      models.NotificationFollow,
		Title:     "New follower",
	}

	_, created, err := e.notifier.Emit(ctx, notice)
	require.NoError(t, err)
	assert.True(t, created)

	e.clock.Advance(4 * time.Minute)
	_, created, err = e.notifier.Emit(ctx, notice)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, e.notifications(t, recipient.ID, models.NotificationFollow), 1)

	e.clock.Advance(2 * time.Minute)
	_, created, err = e.notifier.Emit(ctx, notice)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, e.notifications(t, recipient.ID, models.NotificationFollow), 2)
}

func TestEmitSkipsSelfNotifications(t *testing.T) {
	e := newEnv(t)
	me := e.user(t, "Mia")

	n, created, err := e.notifier.Emit(context.Background(), models.Notice{
		Recipient: me.ID,
		Sender:    &me.ID,
		Type:      models.NotificationLike,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, n)
}

func TestEnrichAttachesSenders(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	recipient := e.user(t, "Rita")
	sender := e.user(t, "Sol")

	_, _, err := e.notifier.Emit(ctx, models.Notice{Recipient: recipient.ID, Sender: &sender.ID, Type: models.NotificationFollow})
	require.NoError(t, err)
	_, _, err = e.notifier.Emit(ctx, models.Notice{Recipient: recipient.ID, Type: models.NotificationSystem})
	require.NoError(t, err)

	list, _, err := e.notifier.List(ctx, recipient.ID, models.NotificationFilter{}, pageOne)
	require.NoError(t, err)
	views, err := e.notifier.Enrich(ctx, list)
	require.NoError(t, err)
	require.Len(t, views, 2)

	bySender := map[models.NotificationType]*models.UserCompact{}
	for _, v := range views {
		bySender[v.Type] = v.Sender
	}
	require.NotNil(t, bySender[models.NotificationFollow])
	assert.Equal(t, "Sol Tester", bySender[models.NotificationFollow].FullName)
	assert.Nil(t, bySender[models.NotificationSystem])
}
