package repositories

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post, tags []string, mentions []models.User) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, opts PostListOptions) ([]models.Post, int64, error)
	TrendingPosts(ctx context.Context, viewer *uint, since time.Time, limit int) ([]models.Post, error)
	UpdatePost(ctx context.Context, id uint, fields map[string]interface{}) error
	DeletePost(ctx context.Context, post *models.Post) error
	GetStats(ctx context.Context, authorID uint, now time.Time) (*models.PostStats, error)
	AuthoredHashtags(ctx context.Context, userID uint, limit int) ([]string, error)
	ReactedHashtags(ctx context.Context, userID uint, limit int) ([]string, error)
}

// PostListOptions selects the posts a list endpoint returns.
type PostListOptions struct {
	Viewer *uint
	Query  models.PostQuery
	// Feed applies the viewer's feed preferences when set.
	Feed *models.FeedFilter
	Page Page
}

var postOrderings = map[string]string{
	"created_at":     "posts.created_at",
	"likes_count":    "posts.likes_count",
	"comments_count": "posts.comments_count",
	"shares_count":   "posts.shares_count",
}

// postOrder turns "field" or "-field" into an ORDER BY clause, falling back
// to newest first for unknown fields.
func postOrder(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	col, ok := postOrderings[strings.TrimPrefix(ordering, "-")]
	if !ok {
		return "posts.created_at DESC, posts.id DESC"
	}
	if desc {
		return col + " DESC, posts.id DESC"
	}
	return col + " ASC, posts.id ASC"
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost stores the post together with its hashtags and mentions.
// Hashtags are created on first use and their usage counters bumped.
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post, tags []string, mentions []models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hashtags := make([]models.Hashtag, 0, len(tags))
		for _, name := range tags {
			h := models.Hashtag{Name: name}
			if err := tx.Where("name = ?", name).FirstOrCreate(&h).Error; err != nil {
				return err
			}
			if err := tx.Model(&h).UpdateColumn("posts_count", gorm.Expr("posts_count + ?", 1)).Error; err != nil {
				return err
			}
			h.PostsCount++
			hashtags = append(hashtags, h)
		}
		post.Hashtags = hashtags
		post.MentionedUsers = mentions
		return tx.Omit("Hashtags.*", "MentionedUsers.*").Create(post).Error
	})
	return translate(err)
}

// GetPostByID retrieves a post by ID with its hashtags
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Hashtags").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// ListPosts returns one page of posts visible to opts.Viewer and the total
// number of matching rows.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, opts PostListOptions) ([]models.Post, int64, error) {
	var (
		posts []models.Post
		total int64
	)
	q := r.db.WithContext(ctx).Model(&models.Post{}).Scopes(VisibleTo(opts.Viewer))

	if s := strings.TrimSpace(opts.Query.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(posts.content) LIKE ? OR posts.author_id IN (SELECT id FROM users WHERE LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)",
			like, like, like)
	}
	if opts.Query.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", opts.Query.AuthorID)
	}
	if opts.Query.PostType != "" {
		q = q.Where("posts.post_type = ?", opts.Query.PostType)
	}
	if tag := strings.TrimPrefix(strings.ToLower(opts.Query.Hashtag), "#"); tag != "" {
		q = q.Where("posts.id IN (SELECT post_hashtags.post_id FROM post_hashtags JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id WHERE hashtags.name = ?)", tag)
	}
	if f := opts.Feed; f != nil {
		if len(f.ExcludeTypes) > 0 {
			q = q.Where("posts.post_type NOT IN ?", f.ExcludeTypes)
		}
		if opts.Viewer != nil && f.MutedUsers {
			q = q.Where("posts.author_id NOT IN (SELECT muted_user_id FROM feed_muted_users WHERE user_id = ?)", *opts.Viewer)
		}
		if opts.Viewer != nil && f.MutedTags {
			q = q.Where("posts.id NOT IN (SELECT post_hashtags.post_id FROM post_hashtags JOIN feed_muted_hashtags ON feed_muted_hashtags.hashtag_id = post_hashtags.hashtag_id WHERE feed_muted_hashtags.user_id = ?)", *opts.Viewer)
		}
	}
	q = q.Session(&gorm.Session{})

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Hashtags").
		Order(postOrder(opts.Query.Ordering)).
		Scopes(opts.Page.apply).
		Find(&posts).Error
	return posts, total, err
}

// TrendingPosts orders recent visible posts by likes + 2*comments + 3*shares.
func (r *PostgresPostRepository) TrendingPosts(ctx context.Context, viewer *uint, since time.Time, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Scopes(VisibleTo(viewer)).
		Preload("Hashtags").
		Where("posts.created_at >= ?", since).
		Order("(posts.likes_count + 2 * posts.comments_count + 3 * posts.shares_count) DESC, posts.created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// UpdatePost updates the given columns of a post
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost removes the post and every row hanging off it.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id IN (SELECT id FROM comments WHERE post_id = ?)", post.ID).
			Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		for _, child := range []interface{}{
			&models.Comment{},
			&models.Reaction{},
			&models.Share{},
			&models.SavedPost{},
			&models.Report{},
			&models.PostView{},
			&models.Notification{},
		} {
			if err := tx.Where("post_id = ?", post.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Hashtag{}).
			Where("id IN (SELECT hashtag_id FROM post_hashtags WHERE post_id = ?)", post.ID).
			UpdateColumn("posts_count", gorm.Expr("CASE WHEN posts_count > 0 THEN posts_count - 1 ELSE 0 END")).Error; err != nil {
			return err
		}
		res := tx.Select("Hashtags", "MentionedUsers").Delete(post)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

type postTotals struct {
	Posts    int64
	Likes    int64
	Comments int64
	Shares   int64
}

// GetStats summarizes an author's publishing activity as of now.
func (r *PostgresPostRepository) GetStats(ctx context.Context, authorID uint, now time.Time) (*models.PostStats, error) {
	db := r.db.WithContext(ctx)
	stats := &models.PostStats{}
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if err := db.Model(&models.Post{}).
		Where("author_id = ? AND created_at >= ?", authorID, dayStart).
		Count(&stats.PostsToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Post{}).
		Where("author_id = ? AND created_at >= ?", authorID, now.AddDate(0, 0, -7)).
		Count(&stats.PostsThisWeek).Error; err != nil {
		return nil, err
	}

	var t postTotals
	if err := db.Model(&models.Post{}).
		Select("COUNT(*) AS posts, COALESCE(SUM(likes_count), 0) AS likes, COALESCE(SUM(comments_count), 0) AS comments, COALESCE(SUM(shares_count), 0) AS shares").
		Where("author_id = ?", authorID).
		Scan(&t).Error; err != nil {
		return nil, err
	}
	stats.TotalPosts = t.Posts
	stats.TotalLikesReceived = t.Likes
	stats.TotalCommentsReceived = t.Comments
	stats.TotalSharesReceived = t.Shares
	if t.Posts > 0 {
		rate := float64(t.Likes+t.Comments+t.Shares) / float64(t.Posts) * 100
		stats.EngagementRate = math.Round(rate*100) / 100
	}

	var top models.Post
	err := db.Preload("Hashtags").
		Where("author_id = ?", authorID).
		Order("(likes_count + comments_count + shares_count) DESC, created_at DESC").
		First(&top).Error
	switch {
	case err == nil:
		stats.TopPerformingPost = &top
	case translate(err) != ErrNotFound:
		return nil, err
	}
	return stats, nil
}

// AuthoredHashtags returns the hashtags the user posts with most often.
func (r *PostgresPostRepository) AuthoredHashtags(ctx context.Context, userID uint, limit int) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Table("hashtags").
		Select("hashtags.name").
		Joins("JOIN post_hashtags ON post_hashtags.hashtag_id = hashtags.id").
		Joins("JOIN posts ON posts.id = post_hashtags.post_id").
		Where("posts.author_id = ?", userID).
		Group("hashtags.name").
		Order("COUNT(*) DESC, hashtags.name").
		Limit(limit).
		Pluck("hashtags.name", &names).Error
	return names, err
}

// ReactedHashtags returns the hashtags of posts the user reacted to most often.
func (r *PostgresPostRepository) ReactedHashtags(ctx context.Context, userID uint, limit int) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Table("hashtags").
		Select("hashtags.name").
		Joins("JOIN post_hashtags ON post_hashtags.hashtag_id = hashtags.id").
		Joins("JOIN post_reactions ON post_reactions.post_id = post_hashtags.post_id").
		Where("post_reactions.user_id = ?", userID).
		Group("hashtags.name").
		Order("COUNT(*) DESC, hashtags.name").
		Limit(limit).
		Pluck("hashtags.name", &names).Error
	return names, err
}
