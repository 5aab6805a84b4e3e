package services

import (
	"context"
	"testing"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdatePreferencesValidatesWeightSum(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	me := e.user(t, "Mia")

	_, err := e.feed.UpdatePreferences(ctx, me.ID, models.UpdateFeedPreferencesRequest{
		ConnectionWeight: ptr(1.0),
		EngagementWeight: ptr(0.5),
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))

	pref, err := e.feed.Preferences(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFeedWeights(), pref.Weights, "rejected update is not stored")

	pref, err = e.feed.UpdatePreferences(ctx, me.ID, models.UpdateFeedPreferencesRequest{
		ConnectionWeight: ptr(0.4),
		ShowJobPosts:     ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.4, pref.Weights.Connection)
	assert.False(t, pref.ShowJobPosts)
}

func TestRankedFeedPrefersConnections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	me := e.user(t, "Mia")
	friend := e.user(t, "Fay")
	stranger := e.user(t, "Sam")
	e.connectUsers(t, me.ID, friend.ID)

	fromStranger := e.post(t, stranger.ID, models.VisibilityPublic, "public musings")
	fromFriend := e.post(t, friend.ID, models.VisibilityConnections, "network update")
	e.post(t, stranger.ID, models.VisibilityConnections, "not for you")

	ranked, total, err := e.feed.RankedFeed(ctx, me.ID, pageOne)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, ranked, 2)
	assert.Equal(t, fromFriend.ID, ranked[0].Post.ID)
	assert.Equal(t, fromStranger.ID, ranked[1].Post.ID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestRankedFeedPastTheLastPage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	me := e.user(t, "Mia")
	e.post(t, me.ID, models.VisibilityPublic, "only post")

	for _, page := range []repositories.Page{
		{Number: 2, Limit: 10},
		{Number: 184467440737095518, Limit: 50},
	} {
		ranked, total, err := e.feed.RankedFeed(ctx, me.ID, page)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Empty(t, ranked)
	}
}

func TestFeedHonoursMutes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	me := e.user(t, "Mia")
	loud := e.user(t, "Lou")
	quiet := e.user(t, "Quin")

	e.post(t, loud.ID, models.VisibilityPublic, "buy my course")
	e.post(t, quiet.ID, models.VisibilityPublic, "learning #crypto today")
	kept := e.post(t, quiet.ID, models.VisibilityPublic, "plain update")

	created, err := e.feed.MuteUser(ctx, me.ID, loud.ID)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = e.feed.MuteHashtag(ctx, me.ID, "#Crypto")
	require.NoError(t, err)
	assert.True(t, created)

	posts, total, err := e.feed.Feed(ctx, me.ID, models.PostQuery{}, pageOne)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, kept.ID, posts[0].ID)

	_, err = e.feed.MuteUser(ctx, me.ID, me.ID)
	assert.True(t, IsKind(err, KindValidation))
}

func TestInterestsMergeAuthoredAndReacted(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	me := e.user(t, "Mia")
	other := e.user(t, "Oli")

	e.post(t, me.ID, models.VisibilityPublic, "#golang #kubernetes")
	liked := e.post(t, other.ID, models.VisibilityPublic, "#golang #rust")
	_, err := e.engagement.React(ctx, me.ID, liked.ID, models.ReactionLike)
	require.NoError(t, err)

	interests, err := e.feed.Interests(ctx, me.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"golang", "kubernetes", "rust"}, interests)
}
