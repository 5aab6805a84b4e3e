package services

import (
	"context"
	"testing"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptCreatesConnectionAndNotifiesSender(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "Alice")
	bob := e.user(t, "Bob")

	req, err := e.connections.SendRequest(ctx, alice.ID, models.SendConnectionRequest{ReceiverID: bob.ID, Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionPending, req.Status)
	assert.Len(t, e.notifications(t, bob.ID, models.NotificationConnectionRequest), 1)

	_, _, err = e.connections.Respond(ctx, alice.ID, req.ID, true)
	assert.True(t, IsKind(err, KindForbidden), "only the receiver may respond")

	accepted, conn, err := e.connections.Respond(ctx, bob.ID, req.ID, true)
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, models.ConnectionAccepted, accepted.Status)
	assert.Len(t, e.notifications(t, alice.ID, models.NotificationConnectionAccepted), 1)

	status, err := e.connections.Status(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, conn.ID, status.ConnectionID)
	assert.Nil(t, status.Request)

	_, _, err = e.connections.Respond(ctx, bob.ID, req.ID, true)
	assert.True(t, IsKind(err, KindConflict))
}

func TestSendRequestRejections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "Alice")
	bob := e.user(t, "Bob")

	_, err := e.connections.SendRequest(ctx, alice.ID, models.SendConnectionRequest{ReceiverID: alice.ID})
	assert.True(t, IsKind(err, KindValidation))

	_, err = e.connections.SendRequest(ctx, alice.ID, models.SendConnectionRequest{ReceiverID: 9999})
	assert.True(t, IsKind(err, KindNotFound))

	_, err = e.connections.SendRequest(ctx, alice.ID, models.SendConnectionRequest{ReceiverID: bob.ID})
	require.NoError(t, err)

	_, err = e.connections.SendRequest(ctx, alice.ID, models.SendConnectionRequest{ReceiverID: bob.ID})
	assert.True(t, IsKind(err, KindConflict), "duplicate pending request")

	_, err = e.connections.SendRequest(ctx, bob.ID, models.SendConnectionRequest{ReceiverID: alice.ID})
	assert.True(t, IsKind(err, KindConflict), "reverse pending request")
}

func TestBlockPreventsRequests(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "Alice")
	bob := e.user(t, "Bob")

	created, err := e.connections.Block(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, created)

	_, err = e.connections.SendRequest(ctx, alice.ID, models.SendConnectionRequest{ReceiverID: bob.ID})
	assert.True(t, IsKind(err, KindForbidden))

	removed, err := e.connections.Unblock(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = e.connections.SendRequest(ctx, alice.ID, models.SendConnectionRequest{ReceiverID: bob.ID})
	assert.NoError(t, err)
}

func TestRecommendationsRankByMutualConnections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	me := e.user(t, "Mia")
	a := e.user(t, "Ann")
	b := e.user(t, "Ben")
	popular := e.user(t, "Pat")
	loner := e.user(t, "Lou")

	connect := func(x, y *models.User) {
		req, err := e.connections.SendRequest(ctx, x.ID, models.SendConnectionRequest{ReceiverID: y.ID})
		require.NoError(t, err)
		_, _, err = e.connections.Respond(ctx, y.ID, req.ID, true)
		require.NoError(t, err)
	}
	connect(me, a)
	connect(me, b)
	connect(a, popular)
	connect(b, popular)
	connect(a, loner)

	recs, err := e.connections.Recommendations(ctx, me.ID, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, popular.ID, recs[0].User.ID)
	assert.Equal(t, 2, recs[0].MutualConnections)
	assert.Equal(t, loner.ID, recs[1].User.ID)

	mutual, err := e.connections.MutualConnections(ctx, me.ID, popular.ID)
	require.NoError(t, err)
	assert.Len(t, mutual, 2)
}
