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
	"gorm.io/gorm"
)

func likesCount(t *testing.T, db *gorm.DB, postID uint) int64 {
	t.Helper()
	var p models.Post
	require.NoError(t, db.First(&p, postID).Error)
	return p.LikesCount
}

func TestToggleReaction(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresReactionRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "Ada", "Author")
	fan := testutil.CreateUser(t, db, "Fay", "Fan")
	post := testutil.CreatePost(t, db, author.ID, models.VisibilityPublic)

	t.Run("same kind twice restores the count", func(t *testing.T) {
		res, err := repo.ToggleReaction(ctx, fan.ID, post.ID, models.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeLiked, res.Status)
		assert.EqualValues(t, 1, res.LikesCount)

		res, err = repo.ToggleReaction(ctx, fan.ID, post.ID, models.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeUnliked, res.Status)
		assert.EqualValues(t, 0, res.LikesCount)
		assert.EqualValues(t, 0, likesCount(t, db, post.ID))
	})

	t.Run("different kind replaces in place", func(t *testing.T) {
		_, err := repo.ToggleReaction(ctx, fan.ID, post.ID, models.ReactionLike)
		require.NoError(t, err)
		res, err := repo.ToggleReaction(ctx, fan.ID, post.ID, models.ReactionCelebrate)
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeReactionUpdated, res.Status)
		assert.Equal(t, models.ReactionCelebrate, res.Reaction)
		assert.EqualValues(t, 1, res.LikesCount)

		var rows []models.Reaction
		require.NoError(t, db.Where("post_id = ?", post.ID).Find(&rows).Error)
		require.Len(t, rows, 1)
		assert.Equal(t, models.ReactionCelebrate, rows[0].Kind)
	})

	counts, err := repo.CountByKind(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[models.ReactionCelebrate])

	mine, err := repo.UserReactions(ctx, fan.ID, []uint{post.ID, post.ID + 100})
	require.NoError(t, err)
	assert.Equal(t, map[uint]models.ReactionKind{post.ID: models.ReactionCelebrate}, mine)
}

func TestCreateShareIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresShareRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "Ada", "Author")
	sharer := testutil.CreateUser(t, db, "Sid", "Sharer")
	post := testutil.CreatePost(t, db, author.ID, models.VisibilityPublic)

	first, err := repo.CreateShare(ctx, &models.Share{UserID: sharer.ID, PostID: post.ID, ShareContent: "worth a read"})
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := repo.CreateShare(ctx, &models.Share{UserID: sharer.ID, PostID: post.ID})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Value.ID, second.Value.ID)
	assert.Equal(t, "worth a read", second.Value.ShareContent)

	var n int64
	require.NoError(t, db.Model(&models.Share{}).Where("post_id = ?", post.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	var p models.Post
	require.NoError(t, db.First(&p, post.ID).Error)
	assert.EqualValues(t, 1, p.SharesCount)
}

func TestCommentCountersFollowDeletes(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresCommentRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "Ada", "Author")
	post := testutil.CreatePost(t, db, author.ID, models.VisibilityPublic)

	top := &models.Comment{PostID: post.ID, AuthorID: author.ID, Content: "first", IsApproved: true}
	require.NoError(t, repo.CreateComment(ctx, top))
	reply := &models.Comment{PostID: post.ID, AuthorID: author.ID, Content: "reply", ParentID: &top.ID, IsApproved: true}
	require.NoError(t, repo.CreateComment(ctx, reply))

	var p models.Post
	require.NoError(t, db.First(&p, post.ID).Error)
	assert.EqualValues(t, 2, p.CommentsCount)

	require.NoError(t, repo.DeleteComment(ctx, top))
	require.NoError(t, db.First(&p, post.ID).Error)
	assert.EqualValues(t, 0, p.CommentsCount)

	_, err := repo.GetCommentByID(ctx, reply.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRecordPostViewWindow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresViewRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "Ada", "Author")
	post := testutil.CreatePost(t, db, author.ID, models.VisibilityPublic)

	since := time.Now().Add(-time.Hour)
	counted, err := repo.RecordPostView(ctx, &models.PostView{PostID: post.ID, IPAddress: "10.0.0.1"}, since)
	require.NoError(t, err)
	assert.True(t, counted)

	counted, err = repo.RecordPostView(ctx, &models.PostView{PostID: post.ID, IPAddress: "10.0.0.1"}, since)
	require.NoError(t, err)
	assert.False(t, counted)

	counted, err = repo.RecordPostView(ctx, &models.PostView{PostID: post.ID, IPAddress: "10.0.0.2"}, since)
	require.NoError(t, err)
	assert.True(t, counted)

	var p models.Post
	require.NoError(t, db.First(&p, post.ID).Error)
	assert.EqualValues(t, 2, p.ViewsCount)
}
