package repositories

import (
	"context"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	DeleteFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	GetFollowers(ctx context.Context, userID uint, page Page) ([]models.User, int64, error)
	GetFollowing(ctx context.Context, userID uint, page Page) ([]models.User, int64, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow reports false when the follow already existed
func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	created, err := insertIfAbsent(r.db.WithContext(ctx), &models.Follow{FollowerID: followerID, FollowingID: followingID})
	return created, translate(err)
}

// DeleteFollow reports false when there was nothing to remove
func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowers(ctx context.Context, userID uint, page Page) ([]models.User, int64, error) {
	return r.pageUsers(ctx, r.db.Table("follows").Select("follower_id").Where("following_id = ?", userID), page)
}

func (r *PostgresFollowRepository) GetFollowing(ctx context.Context, userID uint, page Page) ([]models.User, int64, error) {
	return r.pageUsers(ctx, r.db.Table("follows").Select("following_id").Where("follower_id = ?", userID), page)
}

func (r *PostgresFollowRepository) pageUsers(ctx context.Context, ids *gorm.DB, page Page) ([]models.User, int64, error) {
	var (
		users []models.User
		total int64
	)
	q := r.db.WithContext(ctx).Model(&models.User{}).Where("id IN (?)", ids).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("id").Scopes(page.apply).Find(&users).Error
	return users, total, err
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
