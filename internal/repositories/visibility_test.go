package repositories_test

import (
	"context"
	"testing"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visibleIDs(t *testing.T, repo repositories.PostRepository, viewer *uint) []uint {
	t.Helper()
	posts, total, err := repo.ListPosts(context.Background(), repositories.PostListOptions{
		Viewer: viewer,
		Page:   repositories.Page{Number: 1, Limit: 50},
	})
	require.NoError(t, err)
	assert.EqualValues(t, len(posts), total)
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestVisibleTo(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresPostRepository(db)

	author := testutil.CreateUser(t, db, "Ada", "Author")
	friend := testutil.CreateUser(t, db, "Fred", "Friend")
	stranger := testutil.CreateUser(t, db, "Sam", "Stranger")
	testutil.Connect(t, db, friend.ID, author.ID)

	public := testutil.CreatePost(t, db, author.ID, models.VisibilityPublic)
	network := testutil.CreatePost(t, db, author.ID, models.VisibilityConnections)
	private := testutil.CreatePost(t, db, author.ID, models.VisibilityPrivate)
	pending := testutil.CreatePost(t, db, author.ID, models.VisibilityPublic)
	require.NoError(t, db.Model(pending).Update("is_approved", false).Error)

	t.Run("author sees every approved post", func(t *testing.T) {
		assert.ElementsMatch(t, []uint{public.ID, network.ID, private.ID}, visibleIDs(t, repo, &author.ID))
	})
	t.Run("connection sees public and connections-only", func(t *testing.T) {
		assert.ElementsMatch(t, []uint{public.ID, network.ID}, visibleIDs(t, repo, &friend.ID))
	})
	t.Run("stranger sees public only", func(t *testing.T) {
		assert.ElementsMatch(t, []uint{public.ID}, visibleIDs(t, repo, &stranger.ID))
	})
	t.Run("anonymous sees public only", func(t *testing.T) {
		assert.ElementsMatch(t, []uint{public.ID}, visibleIDs(t, repo, nil))
	})
}

func TestListPostsFeedFilter(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresPostRepository(db)
	ctx := context.Background()

	viewer := testutil.CreateUser(t, db, "Vera", "Viewer")
	loud := testutil.CreateUser(t, db, "Lou", "Loud")
	quiet := testutil.CreateUser(t, db, "Quinn", "Quiet")

	require.NoError(t, db.Create(&models.MutedUser{UserID: viewer.ID, MutedUserID: loud.ID}).Error)
	testutil.CreatePost(t, db, loud.ID, models.VisibilityPublic)
	kept := testutil.CreatePost(t, db, quiet.ID, models.VisibilityPublic)

	posts, total, err := repo.ListPosts(ctx, repositories.PostListOptions{
		Viewer: &viewer.ID,
		Feed:   &models.FeedFilter{MutedUsers: true},
		Page:   repositories.Page{Number: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, kept.ID, posts[0].ID)
}
