package repositories_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionRequestLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresConnectionRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "A")
	bob := testutil.CreateUser(t, db, "Bob", "B")

	req := &models.ConnectionRequest{SenderID: alice.ID, ReceiverID: bob.ID, Message: "hi"}
	require.NoError(t, repo.SendRequest(ctx, req))
	assert.Equal(t, models.ConnectionPending, req.Status)

	err := repo.SendRequest(ctx, &models.ConnectionRequest{SenderID: alice.ID, ReceiverID: bob.ID})
	assert.ErrorIs(t, err, repositories.ErrRequestPending)

	err = repo.SendRequest(ctx, &models.ConnectionRequest{SenderID: bob.ID, ReceiverID: alice.ID})
	assert.ErrorIs(t, err, repositories.ErrReverseRequest)

	conn, err := repo.AcceptRequest(ctx, req, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionAccepted, req.Status)
	assert.Equal(t, min(alice.ID, bob.ID), conn.User1ID)
	assert.Equal(t, max(alice.ID, bob.ID), conn.User2ID)

	_, err = repo.AcceptRequest(ctx, req, time.Now())
	assert.ErrorIs(t, err, repositories.ErrRequestNotPending)

	for _, pair := range [][2]uint{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		ok, err := repo.AreConnected(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, ok)
	}

	err = repo.SendRequest(ctx, &models.ConnectionRequest{SenderID: bob.ID, ReceiverID: alice.ID})
	assert.ErrorIs(t, err, repositories.ErrAlreadyConnected)

	n, err := repo.CountConnections(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestDeclinedRequestIsReopened(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresConnectionRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "A")
	bob := testutil.CreateUser(t, db, "Bob", "B")

	req := &models.ConnectionRequest{SenderID: alice.ID, ReceiverID: bob.ID}
	require.NoError(t, repo.SendRequest(ctx, req))
	require.NoError(t, repo.SetRequestStatus(ctx, req.ID, models.ConnectionDeclined, time.Now()))

	again := &models.ConnectionRequest{SenderID: alice.ID, ReceiverID: bob.ID, Message: "second try"}
	require.NoError(t, repo.SendRequest(ctx, again))
	assert.Equal(t, req.ID, again.ID)
	assert.Equal(t, models.ConnectionPending, again.Status)
	assert.Nil(t, again.RespondedAt)

	incoming, total, err := repo.ListPendingRequests(ctx, bob.ID, true, repositories.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, incoming, 1)
	assert.Equal(t, "second try", incoming[0].Message)
}

func TestBlockedPairCannotRequest(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresConnectionRepository(db)

	alice := testutil.CreateUser(t, db, "Alice", "A")
	bob := testutil.CreateUser(t, db, "Bob", "B")
	require.NoError(t, db.Create(&models.Block{BlockerID: bob.ID, BlockedID: alice.ID}).Error)

	err := repo.SendRequest(context.Background(), &models.ConnectionRequest{SenderID: alice.ID, ReceiverID: bob.ID})
	assert.ErrorIs(t, err, repositories.ErrBlocked)
}

func TestPage(t *testing.T) {
	assert.Equal(t, 0, repositories.Page{Number: 0, Limit: 10}.Offset())
	assert.Equal(t, 0, repositories.Page{Number: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, repositories.Page{Number: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, repositories.Page{Number: 3, Limit: 0}.Offset())

	huge := repositories.Page{Number: 184467440737095518, Limit: 50}.Offset()
	assert.Positive(t, huge)
	assert.Equal(t, math.MaxInt32, huge)
}
