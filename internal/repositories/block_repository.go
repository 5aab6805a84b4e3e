package repositories

import (
	"context"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

type BlockRepository interface {
	Block(ctx context.Context, blockerID, blockedID uint) (bool, error)
	Unblock(ctx context.Context, blockerID, blockedID uint) (bool, error)
	IsBlockedEither(ctx context.Context, a, b uint) (bool, error)
	BlockedUserIDs(ctx context.Context, userID uint) ([]uint, error)
}

// PostgresBlockRepository implements BlockRepository for PostgreSQL
type PostgresBlockRepository struct {
	db *gorm.DB
}

func NewPostgresBlockRepository(db *gorm.DB) *PostgresBlockRepository {
	return &PostgresBlockRepository{db: db}
}

// Block hides the two members from each other. Any connection between them
// is removed and pending requests in either direction are withdrawn.
func (r *PostgresBlockRepository) Block(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = insertIfAbsent(tx, &models.Block{BlockerID: blockerID, BlockedID: blockedID})
		if err != nil {
			return err
		}
		u1, u2 := pairOf(blockerID, blockedID)
		if err := tx.Where("user1_id = ? AND user2_id = ?", u1, u2).Delete(&models.Connection{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ConnectionRequest{}).
			Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
				blockerID, blockedID, blockedID, blockerID, models.ConnectionPending).
			Update("status", models.ConnectionWithdrawn).Error; err != nil {
			return err
		}
		return tx.Where("(follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?)",
			blockerID, blockedID, blockedID, blockerID).Delete(&models.Follow{}).Error
	})
	return created, translate(err)
}

func (r *PostgresBlockRepository) Unblock(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Delete(&models.Block{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresBlockRepository) IsBlockedEither(ctx context.Context, a, b uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// BlockedUserIDs returns members blocked by, or blocking, userID
func (r *PostgresBlockRepository) BlockedUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	var out, in []uint
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Block{}).Where("blocker_id = ?", userID).Pluck("blocked_id", &out).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Block{}).Where("blocked_id = ?", userID).Pluck("blocker_id", &in).Error; err != nil {
		return nil, err
	}
	return append(out, in...), nil
}
