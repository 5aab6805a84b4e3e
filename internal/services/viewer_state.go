package services

import (
	"context"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
)

// annotate fills in the viewer's own reaction and bookmark on each post.
// Anonymous viewers get the zero state.
func annotate(ctx context.Context, stores Stores, viewer *uint, posts ...*models.Post) error {
	if viewer == nil || len(posts) == 0 {
		return nil
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	reactions, err := stores.Reactions.UserReactions(ctx, *viewer, ids)
	if err != nil {
		return err
	}
	saved, err := stores.SavedPosts.GetSavedPostIDs(ctx, *viewer, ids)
	if err != nil {
		return err
	}
	for _, p := range posts {
		p.UserReactionType = reactions[p.ID]
		p.IsSaved = saved[p.ID]
	}
	return nil
}

func postRefs(posts []models.Post) []*models.Post {
	refs := make([]*models.Post, len(posts))
	for i := range posts {
		refs[i] = &posts[i]
	}
	return refs
}

// annotatePage is annotate for list results, passing the page through.
func annotatePage(ctx context.Context, stores Stores, viewer *uint, posts []models.Post, total int64, err error) ([]models.Post, int64, error) {
	if err != nil {
		return nil, 0, err
	}
	if err := annotate(ctx, stores, viewer, postRefs(posts)...); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
