package repositories

import (
	"context"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	ListComments(ctx context.Context, postID uint, page Page) ([]models.Comment, int64, error)
	ListReplies(ctx context.Context, parentIDs []uint) ([]models.Comment, error)
	DeleteComment(ctx context.Context, comment *models.Comment) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment inserts the comment and bumps the post's comments_count
// (and the parent's replies_count for replies) in one transaction.
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if err := incrementColumn(tx, &models.Post{}, comment.PostID, "comments_count", 1); err != nil {
			return err
		}
		if comment.ParentID != nil {
			return incrementColumn(tx, &models.Comment{}, *comment.ParentID, "replies_count", 1)
		}
		return nil
	})
	return translate(err)
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

// ListComments pages through the top-level comments of a post, oldest first
func (r *PostgresCommentRepository) ListComments(ctx context.Context, postID uint, page Page) ([]models.Comment, int64, error) {
	var (
		comments []models.Comment
		total    int64
	)
	q := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ? AND parent_id IS NULL AND is_approved = ?", postID, true).
		Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at ASC, id ASC").Scopes(page.apply).Find(&comments).Error
	return comments, total, err
}

// ListReplies loads the replies to the given comments, oldest first
func (r *PostgresCommentRepository) ListReplies(ctx context.Context, parentIDs []uint) ([]models.Comment, error) {
	var replies []models.Comment
	if len(parentIDs) == 0 {
		return replies, nil
	}
	err := r.db.WithContext(ctx).
		Where("parent_id IN ? AND is_approved = ?", parentIDs, true).
		Order("created_at ASC, id ASC").
		Find(&replies).Error
	return replies, err
}

// DeleteComment removes a comment with its replies and likes, and takes the
// removed rows off the post's comments_count.
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var replyIDs []uint
		if err := tx.Model(&models.Comment{}).Where("parent_id = ?", comment.ID).Pluck("id", &replyIDs).Error; err != nil {
			return err
		}
		ids := append(replyIDs, comment.ID)

		if err := tx.Where("comment_id IN ?", ids).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN ?", ids).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN ?", ids).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := decrementColumn(tx, &models.Post{}, comment.PostID, "comments_count", res.RowsAffected); err != nil {
			return err
		}
		if comment.ParentID != nil {
			return decrementColumn(tx, &models.Comment{}, *comment.ParentID, "replies_count", 1)
		}
		return nil
	})
}
