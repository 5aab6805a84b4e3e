package repositories

import (
	"context"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

type ShareRepository interface {
	CreateShare(ctx context.Context, share *models.Share) (models.Upsert[*models.Share], error)
	ListShares(ctx context.Context, postID uint, page Page) ([]models.Share, int64, error)
}

// PostgresShareRepository implements ShareRepository for PostgreSQL
type PostgresShareRepository struct {
	db *gorm.DB
}

func NewPostgresShareRepository(db *gorm.DB) *PostgresShareRepository {
	return &PostgresShareRepository{db: db}
}

// CreateShare records a share once per (user, post). A repeated share
// returns the existing row with Created false and leaves shares_count alone.
func (r *PostgresShareRepository) CreateShare(ctx context.Context, share *models.Share) (models.Upsert[*models.Share], error) {
	res := models.Upsert[*models.Share]{Value: share}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := insertIfAbsent(tx, share)
		if err != nil {
			return err
		}
		if !created {
			existing := &models.Share{}
			if err := tx.Where("user_id = ? AND post_id = ?", share.UserID, share.PostID).First(existing).Error; err != nil {
				return err
			}
			res.Value = existing
			return nil
		}
		res.Created = true
		return incrementColumn(tx, &models.Post{}, share.PostID, "shares_count", 1)
	})
	return res, translate(err)
}

func (r *PostgresShareRepository) ListShares(ctx context.Context, postID uint, page Page) ([]models.Share, int64, error) {
	var (
		shares []models.Share
		total  int64
	)
	q := r.db.WithContext(ctx).Model(&models.Share{}).Where("post_id = ?", postID).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Scopes(page.apply).Find(&shares).Error
	return shares, total, err
}
