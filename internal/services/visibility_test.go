package services

import (
	"context"
	"testing"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanView(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author := e.user(t, "Ada")
	friend := e.user(t, "Fred")
	stranger := e.user(t, "Sam")
	testutil.Connect(t, e.db, author.ID, friend.ID)

	network := e.post(t, author.ID, models.VisibilityConnections, "for my network")
	private := e.post(t, author.ID, models.VisibilityPrivate, "note to self")

	cases := []struct {
		name   string
		post   *models.Post
		viewer *uint
		want   bool
	}{
		{"author sees connections-only", network, &author.ID, true},
		{"connection sees connections-only", network, &friend.ID, true},
		{"stranger misses connections-only", network, &stranger.ID, false},
		{"anonymous misses connections-only", network, nil, false},
		{"author sees private", private, &author.ID, true},
		{"connection misses private", private, &friend.ID, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := e.visibility.CanView(ctx, tc.post, tc.viewer)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestAnonymousReadsPublicPostOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")

	public := e.post(t, author.ID, models.VisibilityPublic, "hello world")
	private := e.post(t, author.ID, models.VisibilityPrivate, "diary")

	got, err := e.content.GetPost(ctx, nil, public.ID)
	require.NoError(t, err)
	assert.Equal(t, public.ID, got.ID)

	_, err = e.content.GetPost(ctx, nil, private.ID)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestUnapprovedPostHiddenFromEveryone(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")
	reader := e.user(t, "Rex")

	post := e.post(t, author.ID, models.VisibilityPublic, "pending review")
	require.NoError(t, e.db.Model(post).Update("is_approved", false).Error)

	_, err := e.visibility.VisiblePost(ctx, post.ID, &reader.ID)
	assert.True(t, IsKind(err, KindNotFound))

	_, err = e.visibility.VisiblePost(ctx, post.ID, &author.ID)
	assert.True(t, IsKind(err, KindNotFound))

	feed, total, err := e.feed.Feed(ctx, author.ID, models.PostQuery{}, pageOne)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, feed)
}
