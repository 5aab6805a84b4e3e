package repositories

import (
	"context"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

// SavedPostRepository defines the interface for saved post operations
type SavedPostRepository interface {
	SavePost(ctx context.Context, userID, postID uint) (models.Upsert[*models.SavedPost], error)
	UnsavePost(ctx context.Context, userID, postID uint) (bool, error)
	ListSavedPosts(ctx context.Context, userID uint, page Page) ([]models.Post, int64, error)
	GetSavedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
}

// PostgresSavedPostRepository implements SavedPostRepository
type PostgresSavedPostRepository struct {
	db *gorm.DB
}

func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{db: db}
}

func (r *PostgresSavedPostRepository) SavePost(ctx context.Context, userID, postID uint) (models.Upsert[*models.SavedPost], error) {
	saved := &models.SavedPost{UserID: userID, PostID: postID}
	created, err := insertIfAbsent(r.db.WithContext(ctx), saved)
	if err != nil {
		return models.Upsert[*models.SavedPost]{}, translate(err)
	}
	if !created {
		if err := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).First(saved).Error; err != nil {
			return models.Upsert[*models.SavedPost]{}, translate(err)
		}
	}
	return models.Upsert[*models.SavedPost]{Value: saved, Created: created}, nil
}

// UnsavePost reports whether a bookmark was removed.
func (r *PostgresSavedPostRepository) UnsavePost(ctx context.Context, userID, postID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.SavedPost{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListSavedPosts returns the bookmarked posts, most recently saved first.
func (r *PostgresSavedPostRepository) ListSavedPosts(ctx context.Context, userID uint, page Page) ([]models.Post, int64, error) {
	var (
		posts []models.Post
		total int64
	)
	q := r.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN saved_posts ON saved_posts.post_id = posts.id").
		Where("saved_posts.user_id = ?", userID).
		Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Hashtags").
		Order("saved_posts.created_at DESC, posts.id DESC").
		Scopes(page.apply).
		Find(&posts).Error
	return posts, total, err
}

// GetSavedPostIDs reports which of the given posts the user has bookmarked.
func (r *PostgresSavedPostRepository) GetSavedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var saved []models.SavedPost
	err := r.db.WithContext(ctx).Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&saved).Error
	if err != nil {
		return nil, err
	}
	for _, s := range saved {
		result[s.PostID] = true
	}
	return result, nil
}
