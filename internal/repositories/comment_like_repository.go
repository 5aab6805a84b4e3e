package repositories

import (
	"context"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

// CommentLikeRepository defines the interface for comment like operations
type CommentLikeRepository interface {
	LikeComment(ctx context.Context, commentID, userID uint) (bool, int64, error)
	UnlikeComment(ctx context.Context, commentID, userID uint) (bool, int64, error)
	HasUserLikedComment(ctx context.Context, commentID, userID uint) (bool, error)
}

type postgresCommentLikeRepository struct {
	db *gorm.DB
}

func NewPostgresCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
	return &postgresCommentLikeRepository{db: db}
}

// LikeComment reports whether a like was added and the resulting count.
func (r *postgresCommentLikeRepository) LikeComment(ctx context.Context, commentID, userID uint) (bool, int64, error) {
	var (
		created bool
		count   int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = insertIfAbsent(tx, &models.CommentLike{CommentID: commentID, UserID: userID})
		if err != nil {
			return err
		}
		if created {
			if err := incrementColumn(tx, &models.Comment{}, commentID, "likes_count", 1); err != nil {
				return err
			}
		}
		count, err = readCounter(tx, &models.Comment{}, commentID, "likes_count")
		return err
	})
	return created, count, translate(err)
}

// UnlikeComment reports whether a like was removed and the resulting count.
func (r *postgresCommentLikeRepository) UnlikeComment(ctx context.Context, commentID, userID uint) (bool, int64, error) {
	var (
		removed bool
		count   int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected > 0
		if removed {
			if err := decrementColumn(tx, &models.Comment{}, commentID, "likes_count", 1); err != nil {
				return err
			}
		}
		var err error
		count, err = readCounter(tx, &models.Comment{}, commentID, "likes_count")
		return err
	})
	return removed, count, translate(err)
}

func (r *postgresCommentLikeRepository) HasUserLikedComment(ctx context.Context, commentID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CommentLike{}).Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error
	return count > 0, err
}
