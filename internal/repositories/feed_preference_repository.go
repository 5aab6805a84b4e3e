package repositories

import (
	"context"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

type FeedPreferenceRepository interface {
	GetOrCreate(ctx context.Context, userID uint) (*models.FeedPreference, error)
	Save(ctx context.Context, pref *models.FeedPreference) error
	MuteUser(ctx context.Context, userID, mutedID uint) (bool, error)
	UnmuteUser(ctx context.Context, userID, mutedID uint) (bool, error)
	MuteHashtag(ctx context.Context, userID, hashtagID uint) (bool, error)
	UnmuteHashtag(ctx context.Context, userID, hashtagID uint) (bool, error)
}

// PostgresFeedPreferenceRepository implements FeedPreferenceRepository for PostgreSQL
type PostgresFeedPreferenceRepository struct {
	db *gorm.DB
}

func NewPostgresFeedPreferenceRepository(db *gorm.DB) *PostgresFeedPreferenceRepository {
	return &PostgresFeedPreferenceRepository{db: db}
}

// GetOrCreate loads a member's preferences, creating the defaults on first
// use, and fills in the muted users and hashtags.
func (r *PostgresFeedPreferenceRepository) GetOrCreate(ctx context.Context, userID uint) (*models.FeedPreference, error) {
	db := r.db.WithContext(ctx)
	pref := models.NewFeedPreference(userID)
	if _, err := insertIfAbsent(db, pref); err != nil {
		return nil, translate(err)
	}
	if err := db.Where("user_id = ?", userID).First(pref).Error; err != nil {
		return nil, translate(err)
	}

	pref.MutedUserIDs = []uint{}
	if err := db.Model(&models.MutedUser{}).Where("user_id = ?", userID).
		Order("muted_user_id").Pluck("muted_user_id", &pref.MutedUserIDs).Error; err != nil {
		return nil, err
	}
	pref.MutedHashtags = []string{}
	if err := db.Table("hashtags").
		Joins("JOIN feed_muted_hashtags ON feed_muted_hashtags.hashtag_id = hashtags.id").
		Where("feed_muted_hashtags.user_id = ?", userID).
		Order("hashtags.name").
		Pluck("hashtags.name", &pref.MutedHashtags).Error; err != nil {
		return nil, err
	}
	return pref, nil
}

// Save writes the weights and toggles. Zero values are written too.
func (r *PostgresFeedPreferenceRepository) Save(ctx context.Context, pref *models.FeedPreference) error {
	return r.db.WithContext(ctx).Select("*").Omit("id", "user_id").
		Where("user_id = ?", pref.UserID).
		Updates(pref).Error
}

func (r *PostgresFeedPreferenceRepository) MuteUser(ctx context.Context, userID, mutedID uint) (bool, error) {
	created, err := insertIfAbsent(r.db.WithContext(ctx), &models.MutedUser{UserID: userID, MutedUserID: mutedID})
	return created, translate(err)
}

func (r *PostgresFeedPreferenceRepository) UnmuteUser(ctx context.Context, userID, mutedID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND muted_user_id = ?", userID, mutedID).Delete(&models.MutedUser{})
	return res.RowsAffected > 0, res.Error
}

func (r *PostgresFeedPreferenceRepository) MuteHashtag(ctx context.Context, userID, hashtagID uint) (bool, error) {
	created, err := insertIfAbsent(r.db.WithContext(ctx), &models.MutedHashtag{UserID: userID, HashtagID: hashtagID})
	return created, translate(err)
}

func (r *PostgresFeedPreferenceRepository) UnmuteHashtag(ctx context.Context, userID, hashtagID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND hashtag_id = ?", userID, hashtagID).Delete(&models.MutedHashtag{})
	return res.RowsAffected > 0, res.Error
}
