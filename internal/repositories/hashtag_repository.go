package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

type HashtagRepository interface {
	ListHashtags(ctx context.Context, search string, page Page) ([]models.Hashtag, int64, error)
	GetHashtagByName(ctx context.Context, name string) (*models.Hashtag, error)
	GetOrCreateHashtag(ctx context.Context, name string) (*models.Hashtag, error)
	TrendingHashtags(ctx context.Context, since time.Time, minPosts, limit int) ([]models.TrendingHashtag, error)
	RefreshTrending(ctx context.Context, since time.Time, minPosts int) (int64, error)
}

// PostgresHashtagRepository implements HashtagRepository for PostgreSQL
type PostgresHashtagRepository struct {
	db *gorm.DB
}

func NewPostgresHashtagRepository(db *gorm.DB) *PostgresHashtagRepository {
	return &PostgresHashtagRepository{db: db}
}

func (r *PostgresHashtagRepository) ListHashtags(ctx context.Context, search string, page Page) ([]models.Hashtag, int64, error) {
	var (
		tags  []models.Hashtag
		total int64
	)
	q := r.db.WithContext(ctx).Model(&models.Hashtag{})
	if s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(search)), "#"); s != "" {
		q = q.Where("name LIKE ?", "%"+s+"%")
	}
	q = q.Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("posts_count DESC, name").Scopes(page.apply).Find(&tags).Error
	return tags, total, err
}

func (r *PostgresHashtagRepository) GetHashtagByName(ctx context.Context, name string) (*models.Hashtag, error) {
	var h models.Hashtag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&h).Error; err != nil {
		return nil, translate(err)
	}
	return &h, nil
}

func (r *PostgresHashtagRepository) GetOrCreateHashtag(ctx context.Context, name string) (*models.Hashtag, error) {
	h := models.Hashtag{Name: name}
	if err := r.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&h).Error; err != nil {
		return nil, translate(err)
	}
	return &h, nil
}

// TrendingHashtags ranks hashtags by how many posts used them since the
// given time, keeping only those with at least minPosts.
func (r *PostgresHashtagRepository) TrendingHashtags(ctx context.Context, since time.Time, minPosts, limit int) ([]models.TrendingHashtag, error) {
	var out []models.TrendingHashtag
	err := r.db.WithContext(ctx).Table("hashtags").
		Select("hashtags.id, hashtags.name, hashtags.posts_count, hashtags.is_trending, hashtags.created_at, COUNT(posts.id) AS recent_posts_count").
		Joins("JOIN post_hashtags ON post_hashtags.hashtag_id = hashtags.id").
		Joins("JOIN posts ON posts.id = post_hashtags.post_id").
		Where("posts.created_at >= ?", since).
		Group("hashtags.id, hashtags.name, hashtags.posts_count, hashtags.is_trending, hashtags.created_at").
		Having("COUNT(posts.id) >= ?", minPosts).
		Order("recent_posts_count DESC, hashtags.name").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// RefreshTrending recomputes the is_trending flag and returns how many
// hashtags are trending now.
func (r *PostgresHashtagRepository) RefreshTrending(ctx context.Context, since time.Time, minPosts int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Hashtag{}).Where("is_trending = ?", true).
			Update("is_trending", false).Error; err != nil {
			return err
		}
		recent := tx.Table("post_hashtags").
			Select("post_hashtags.hashtag_id").
			Joins("JOIN posts ON posts.id = post_hashtags.post_id").
			Where("posts.created_at >= ?", since).
			Group("post_hashtags.hashtag_id").
			Having("COUNT(*) >= ?", minPosts)
		res := tx.Model(&models.Hashtag{}).Where("id IN (?)", recent).Update("is_trending", true)
		n = res.RowsAffected
		return res.Error
	})
	return n, err
}
