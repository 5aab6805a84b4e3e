package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactNotifiesOncePerWindow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")
	fan := e.user(t, "Fay")
	post := e.post(t, author.ID, models.VisibilityPublic, "launch day")

	res, err := e.engagement.React(ctx, fan.ID, post.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeLiked, res.Status)
	assert.Equal(t, models.ReactionLike, res.Reaction)

	res, err = e.engagement.React(ctx, fan.ID, post.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUnliked, res.Status)

	e.clock.Advance(time.Minute)
	_, err = e.engagement.React(ctx, fan.ID, post.ID, models.ReactionLike)
	require.NoError(t, err)

	assert.Len(t, e.notifications(t, author.ID, models.NotificationLike), 1)
}

func TestReactRejectsUnknownKind(t *testing.T) {
	e := newEnv(t)
	author := e.user(t, "Ada")
	post := e.post(t, author.ID, models.VisibilityPublic, "hi")

	_, err := e.engagement.React(context.Background(), author.ID, post.ID, "meh")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
}

func TestReactNeedsVisiblePost(t *testing.T) {
	e := newEnv(t)
	author := e.user(t, "Ada")
	stranger := e.user(t, "Sam")
	post := e.post(t, author.ID, models.VisibilityConnections, "network only")

	_, err := e.engagement.React(context.Background(), stranger.ID, post.ID, models.ReactionLike)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestShareTwice(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")
	sharer := e.user(t, "Sid")
	post := e.post(t, author.ID, models.VisibilityPublic, "worth sharing")

	outcome, share, err := e.engagement.Share(ctx, sharer.ID, post.ID, "look")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeShared, outcome)

	outcome, again, err := e.engagement.Share(ctx, sharer.ID, post.ID, "look again")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeAlreadyShared, outcome)
	assert.Equal(t, share.ID, again.ID)

	var count int64
	require.NoError(t, e.db.Model(&models.Share{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.Len(t, e.notifications(t, author.ID, models.NotificationShare), 1)
}

func TestReportOwnContentRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")
	reader := e.user(t, "Rex")
	post := e.post(t, author.ID, models.VisibilityPublic, "spam?")

	_, err := e.engagement.ReportPost(ctx, author.ID, post.ID, models.ReportRequest{Reason: "spam"})
	assert.True(t, IsKind(err, KindValidation))

	outcome, err := e.engagement.ReportPost(ctx, reader.ID, post.ID, models.ReportRequest{Reason: "spam"})
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeReported, outcome)

	outcome, err = e.engagement.ReportPost(ctx, reader.ID, post.ID, models.ReportRequest{Reason: "spam"})
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeAlreadyReported, outcome)
}

func TestSaveAndUnsave(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")
	reader := e.user(t, "Rex")
	post := e.post(t, author.ID, models.VisibilityPublic, "bookmark me")

	outcome, err := e.engagement.Save(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSaved, outcome)

	outcome, err = e.engagement.Save(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeAlreadySaved, outcome)

	saved, total, err := e.feed.Saved(ctx, reader.ID, pageOne)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, saved, 1)

	outcome, err = e.engagement.Unsave(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUnsaved, outcome)

	_, err = e.engagement.Unsave(ctx, reader.ID, post.ID)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestThirdReportFlagsContent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")
	post := e.post(t, author.ID, models.VisibilityPublic, "questionable")
	comment, err := e.content.CreateComment(ctx, author.ID, post.ID, models.CreateCommentRequest{Content: "me too"})
	require.NoError(t, err)

	flagged := func(model interface{}, id uint) bool {
		var reported bool
		require.NoError(t, e.db.Model(model).Where("id = ?", id).Select("is_reported").Scan(&reported).Error)
		return reported
	}

	for i, name := range []string{"Rex", "Rae", "Roy"} {
		reporter := e.user(t, name)
		_, err := e.engagement.ReportPost(ctx, reporter.ID, post.ID, models.ReportRequest{Reason: "spam"})
		require.NoError(t, err)
		_, err = e.engagement.ReportComment(ctx, reporter.ID, comment.ID, models.ReportRequest{Reason: "harassment"})
		require.NoError(t, err)

		want := i+1 >= models.ReportThreshold
		assert.Equal(t, want, flagged(&models.Post{}, post.ID), "post after %d reports", i+1)
		assert.Equal(t, want, flagged(&models.Comment{}, comment.ID), "comment after %d reports", i+1)
	}
}

func TestRecordViewCountsAgainAfterWindow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")
	reader := e.user(t, "Rex")
	post := e.post(t, author.ID, models.VisibilityPublic, "read me")
	viewer := models.Viewer{UserID: &reader.ID, IP: "10.0.0.1"}

	views := func() int64 {
		var p models.Post
		require.NoError(t, e.db.First(&p, post.ID).Error)
		return p.ViewsCount
	}

	outcome, err := e.engagement.RecordView(ctx, viewer, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeViewed, outcome)

	e.clock.Advance(models.ViewWindow - time.Minute)
	outcome, err = e.engagement.RecordView(ctx, viewer, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeAlreadyViewed, outcome)
	assert.EqualValues(t, 1, views())

	e.clock.Advance(2 * time.Minute)
	outcome, err = e.engagement.RecordView(ctx, viewer, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeViewed, outcome)
	assert.EqualValues(t, 2, views())

	anonymous := models.Viewer{IP: "10.0.0.2"}
	outcome, err = e.engagement.RecordView(ctx, anonymous, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeViewed, outcome)
	outcome, err = e.engagement.RecordView(ctx, anonymous, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeAlreadyViewed, outcome)
}

func TestReadsCarryViewerState(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")
	reader := e.user(t, "Rex")
	post := e.post(t, author.ID, models.VisibilityPublic, "react and keep")
	other := e.post(t, author.ID, models.VisibilityPublic, "left alone")

	_, err := e.engagement.React(ctx, reader.ID, post.ID, models.ReactionCelebrate)
	require.NoError(t, err)
	_, err = e.engagement.Save(ctx, reader.ID, post.ID)
	require.NoError(t, err)

	got, err := e.content.GetPost(ctx, &reader.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionCelebrate, got.UserReactionType)
	assert.True(t, got.IsSaved)

	got, err = e.content.GetPost(ctx, nil, post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.UserReactionType)
	assert.False(t, got.IsSaved)

	feed, _, err := e.feed.Feed(ctx, reader.ID, models.PostQuery{}, pageOne)
	require.NoError(t, err)
	state := map[uint]models.Post{}
	for _, p := range feed {
		state[p.ID] = p
	}
	require.Contains(t, state, post.ID)
	require.Contains(t, state, other.ID)
	assert.True(t, state[post.ID].IsSaved)
	assert.Equal(t, models.ReactionCelebrate, state[post.ID].UserReactionType)
	assert.False(t, state[other.ID].IsSaved)
	assert.Empty(t, state[other.ID].UserReactionType)

	ranked, _, err := e.feed.RankedFeed(ctx, reader.ID, pageOne)
	require.NoError(t, err)
	for _, sp := range ranked {
		assert.Equal(t, sp.Post.ID == post.ID, sp.Post.IsSaved)
	}
}

func TestReactionsBreakdown(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")
	post := e.post(t, author.ID, models.VisibilityPublic, "big news")
	for _, r := range []struct {
		name string
		kind models.ReactionKind
	}{
		{"Rex", models.ReactionLike},
		{"Rae", models.ReactionLike},
		{"Roy", models.ReactionSupport},
	} {
		fan := e.user(t, r.name)
		_, err := e.engagement.React(ctx, fan.ID, post.ID, r.kind)
		require.NoError(t, err)
	}

	got, total, err := e.engagement.Reactions(ctx, nil, post.ID, pageOne)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, got.Reactions, 3)
	assert.EqualValues(t, 2, got.Counts[models.ReactionLike])
	assert.EqualValues(t, 1, got.Counts[models.ReactionSupport])

	hidden := e.post(t, author.ID, models.VisibilityPrivate, "diary")
	_, _, err = e.engagement.Reactions(ctx, nil, hidden.ID, pageOne)
	assert.True(t, IsKind(err, KindNotFound))
}
