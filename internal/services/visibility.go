package services

import (
	"context"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
)

// Visibility decides which posts a viewer may see. A nil viewer is an
// anonymous visitor.
type Visibility struct {
	posts       repositories.PostRepository
	connections repositories.ConnectionRepository
}

func NewVisibility(posts repositories.PostRepository, connections repositories.ConnectionRepository) *Visibility {
	return &Visibility{posts: posts, connections: connections}
}

// CanView applies the visibility rules to a single post. Unapproved posts
// are hidden from everyone, their authors included.
func (v *Visibility) CanView(ctx context.Context, post *models.Post, viewer *uint) (bool, error) {
	if !post.IsApproved {
		return false, nil
	}
	if viewer != nil && *viewer == post.AuthorID {
		return true, nil
	}
	switch post.Visibility {
	case models.VisibilityPublic:
		return true, nil
	case models.VisibilityConnections:
		if viewer == nil {
			return false, nil
		}
		return v.connections.AreConnected(ctx, *viewer, post.AuthorID)
	default:
		return false, nil
	}
}

// VisiblePost loads a post and hides it behind not-found when the viewer
// may not see it.
func (v *Visibility) VisiblePost(ctx context.Context, postID uint, viewer *uint) (*models.Post, error) {
	post, err := v.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, storeError(err, "Post")
	}
	ok, err := v.CanView(ctx, post, viewer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("Post not found")
	}
	return post, nil
}
