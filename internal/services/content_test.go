package services

import (
	"context"
	"testing"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentNotifiesPostAuthor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")
	reader := e.user(t, "Rex")
	post := e.post(t, author.ID, models.VisibilityPublic, "thoughts?")

	_, err := e.content.CreateComment(ctx, reader.ID, post.ID, models.CreateCommentRequest{Content: "nice"})
	require.NoError(t, err)
	notices := e.notifications(t, author.ID, models.NotificationComment)
	require.Len(t, notices, 1)
	assert.Equal(t, reader.ID, *notices[0].SenderID)
	assert.Equal(t, post.ID, notices[0].PostID)

	_, err = e.content.CreateComment(ctx, author.ID, post.ID, models.CreateCommentRequest{Content: "thanks"})
	require.NoError(t, err)
	assert.Len(t, e.notifications(t, author.ID, models.NotificationComment), 1, "own comments do not notify")

	stored, err := e.stores.Posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stored.CommentsCount)
}

func TestRepliesStayOneLevelDeep(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")
	first := e.user(t, "Fin")
	second := e.user(t, "Sue")
	post := e.post(t, author.ID, models.VisibilityPublic, "thread")

	top, err := e.content.CreateComment(ctx, first.ID, post.ID, models.CreateCommentRequest{Content: "top"})
	require.NoError(t, err)
	reply, err := e.content.CreateComment(ctx, second.ID, post.ID, models.CreateCommentRequest{Content: "reply", ParentID: &top.ID})
	require.NoError(t, err)
	nested, err := e.content.CreateComment(ctx, author.ID, post.ID, models.CreateCommentRequest{Content: "nested", ParentID: &reply.ID})
	require.NoError(t, err)
	require.NotNil(t, nested.ParentID)
	assert.Equal(t, top.ID, *nested.ParentID)

	assert.Len(t, e.notifications(t, first.ID, models.NotificationComment), 2, "replies notify the thread starter")

	threads, total, err := e.content.ListComments(ctx, &author.ID, post.ID, pageOne)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, threads, 1)
	assert.Len(t, threads[0].Replies, 2)
}

func TestCommentOnHiddenPost(t *testing.T) {
	e := newEnv(t)
	author := e.user(t, "Ada")
	stranger := e.user(t, "Sam")
	post := e.post(t, author.ID, models.VisibilityPrivate, "diary")

	_, err := e.content.CreateComment(context.Background(), stranger.ID, post.ID, models.CreateCommentRequest{Content: "hi"})
	assert.True(t, IsKind(err, KindNotFound))
}

func TestPostMentionsAndHashtags(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")
	mona := e.user(t, "Mona")

	post := e.post(t, author.ID, models.VisibilityPublic, "Shipping #GoLang services with @mona and @ada")
	require.Len(t, post.Hashtags, 1)
	assert.Equal(t, "golang", post.Hashtags[0].Name)

	assert.Len(t, e.notifications(t, mona.ID, models.NotificationMention), 1)
	assert.Empty(t, e.notifications(t, author.ID, models.NotificationMention))

	posts, total, err := e.content.HashtagPosts(ctx, nil, "#golang", pageOne)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
}

func TestPublicPostNotifiesConnections(t *testing.T) {
	e := newEnv(t)
	author := e.user(t, "Ada")
	friend := e.user(t, "Fay")
	e.connectUsers(t, author.ID, friend.ID)

	e.post(t, author.ID, models.VisibilityPublic, "hello network")
	e.post(t, author.ID, models.VisibilityConnections, "just for you")
	assert.Len(t, e.notifications(t, friend.ID, models.NotificationConnectionPost), 1)
}

func TestModeratePost(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := e.user(t, "Ada")
	mod := e.user(t, "Max")
	require.NoError(t, e.db.Model(mod).Update("is_staff", true).Error)
	post := e.post(t, author.ID, models.VisibilityPublic, "borderline")

	_, err := e.content.ModeratePost(ctx, author.ID, post.ID, false)
	assert.True(t, IsKind(err, KindForbidden))

	withheld, err := e.content.ModeratePost(ctx, mod.ID, post.ID, false)
	require.NoError(t, err)
	assert.False(t, withheld.IsApproved)
	_, err = e.content.GetPost(ctx, &author.ID, post.ID)
	assert.True(t, IsKind(err, KindNotFound))
	assert.Empty(t, e.notifications(t, author.ID, models.NotificationPostApproved))

	approved, err := e.content.ModeratePost(ctx, mod.ID, post.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	_, err = e.content.GetPost(ctx, nil, post.ID)
	assert.NoError(t, err)
	assert.Len(t, e.notifications(t, author.ID, models.NotificationPostApproved), 1)

	_, err = e.content.ModeratePost(ctx, mod.ID, post.ID, true)
	require.NoError(t, err)
	assert.Len(t, e.notifications(t, author.ID, models.NotificationPostApproved), 1, "already approved posts send nothing")
}
