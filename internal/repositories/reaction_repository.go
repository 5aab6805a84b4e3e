package repositories

import (
	"context"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for post reaction operations
type ReactionRepository interface {
	ToggleReaction(ctx context.Context, userID, postID uint, kind models.ReactionKind) (*models.ReactionResult, error)
	UserReactions(ctx context.Context, userID uint, postIDs []uint) (map[uint]models.ReactionKind, error)
	ListReactions(ctx context.Context, postID uint, page Page) ([]models.Reaction, int64, error)
	CountByKind(ctx context.Context, postID uint) (map[models.ReactionKind]int64, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// ToggleReaction applies a reaction. No prior reaction creates one and bumps
// likes_count; the same kind again removes it; a different kind replaces it
// in place without touching the counter. The row and the counter change in
// one transaction.
func (r *PostgresReactionRepository) ToggleReaction(ctx context.Context, userID, postID uint, kind models.ReactionKind) (*models.ReactionResult, error) {
	result := &models.ReactionResult{Reaction: kind}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch translate(err) {
		case ErrNotFound:
			created, err := insertIfAbsent(tx, &models.Reaction{UserID: userID, PostID: postID, Kind: kind})
			if err != nil {
				return err
			}
			if created {
				if err := incrementColumn(tx, &models.Post{}, postID, "likes_count", 1); err != nil {
					return err
				}
			}
			result.Status = models.OutcomeLiked
		case nil:
			if existing.Kind == kind {
				if err := tx.Delete(&existing).Error; err != nil {
					return err
				}
				if err := decrementColumn(tx, &models.Post{}, postID, "likes_count", 1); err != nil {
					return err
				}
				result.Status = models.OutcomeUnliked
				result.Reaction = ""
			} else {
				if err := tx.Model(&existing).Update("kind", kind).Error; err != nil {
					return err
				}
				result.Status = models.OutcomeReactionUpdated
			}
		default:
			return err
		}
		result.LikesCount, err = readCounter(tx, &models.Post{}, postID, "likes_count")
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return result, nil
}

// UserReactions maps each of the given posts the user reacted to onto the
// reaction kind.
func (r *PostgresReactionRepository) UserReactions(ctx context.Context, userID uint, postIDs []uint) (map[uint]models.ReactionKind, error) {
	result := make(map[uint]models.ReactionKind)
	if len(postIDs) == 0 {
		return result, nil
	}
	var reactions []models.Reaction
	err := r.db.WithContext(ctx).Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	for _, reaction := range reactions {
		result[reaction.PostID] = reaction.Kind
	}
	return result, nil
}

// ListReactions pages through the reactions on a post, newest first
func (r *PostgresReactionRepository) ListReactions(ctx context.Context, postID uint, page Page) ([]models.Reaction, int64, error) {
	var (
		reactions []models.Reaction
		total     int64
	)
	q := r.db.WithContext(ctx).Model(&models.Reaction{}).Where("post_id = ?", postID).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Scopes(page.apply).Find(&reactions).Error
	return reactions, total, err
}

// CountByKind returns the reaction breakdown of a post
func (r *PostgresReactionRepository) CountByKind(ctx context.Context, postID uint) (map[models.ReactionKind]int64, error) {
	var rows []struct {
		Kind  models.ReactionKind
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&models.Reaction{}).
		Select("kind, COUNT(*) AS total").
		Where("post_id = ?", postID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.ReactionKind]int64, len(rows))
	for _, row := range rows {
		counts[row.Kind] = row.Total
	}
	return counts, nil
}
