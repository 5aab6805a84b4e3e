package models

import (
	"time"
)

type PostType string

const (
	PostTypeText        PostType = "text"
	PostTypeImage       PostType = "image"
	PostTypeVideo       PostType = "video"
	PostTypeArticle     PostType = "article"
	PostTypePoll        PostType = "poll"
	PostTypeJobShare    PostType = "job_share"
	PostTypeAchievement PostType = "achievement"
)

// Visibility controls which viewers may see a post.
type Visibility string

const (
	VisibilityPublic      Visibility = "public"
	VisibilityConnections Visibility = "connections"
	VisibilityPrivate     Visibility = "private"
)

// Post is a feed item (PostgreSQL). The *Count fields are denormalized
// engagement counters kept in step with their child rows.
type Post struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	AuthorID           uint       `json:"author_id" gorm:"not null;index:idx_posts_author_created,priority:1"`
	Content            string     `json:"content" gorm:"type:text;not null"`
	PostType           PostType   `json:"post_type" gorm:"size:20;index"`
	Visibility         Visibility `json:"visibility" gorm:"size:20;index"`
	ImageURL           string     `json:"image_url,omitempty"`
	VideoURL           string     `json:"video_url,omitempty"`
	ArticleTitle       string     `json:"article_title,omitempty" gorm:"size:300"`
	ArticleURL         string     `json:"article_url,omitempty"`
	ArticleDescription string     `json:"article_description,omitempty" gorm:"size:500"`
	SharedJobID        *uint      `json:"shared_job_id,omitempty" gorm:"index"`

	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	SharesCount   int64 `json:"shares_count"`
	ViewsCount    int64 `json:"views_count"`

	IsPinned   bool `json:"is_pinned"`
	IsFeatured bool `json:"is_featured"`
	IsReported bool `json:"is_reported"`
	IsApproved bool `json:"is_approved" gorm:"index"`

	Hashtags       []Hashtag `json:"hashtags" gorm:"many2many:post_hashtags"`
	MentionedUsers []User    `json:"-" gorm:"many2many:post_mentions"`

	// Set per request for the signed-in viewer, never stored.
	UserReactionType ReactionKind `json:"user_reaction_type,omitempty" gorm:"-"`
	IsSaved          bool         `json:"is_saved" gorm:"-"`

	CreatedAt time.Time `json:"created_at" gorm:"index;index:idx_posts_author_created,priority:2"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EngagementRate is (likes+comments+shares)/views as a percentage.
func (p *Post) EngagementRate() float64 {
	if p.ViewsCount == 0 {
		return 0
	}
	return float64(p.LikesCount+p.CommentsCount+p.SharesCount) / float64(p.ViewsCount) * 100
}

// TrendScore weighs shares over comments over likes.
func (p *Post) TrendScore() int64 {
	return p.LikesCount + 2*p.CommentsCount + 3*p.SharesCount
}

func (p *Post) HashtagNames() []string {
	names := make([]string, len(p.Hashtags))
	for i, h := range p.Hashtags {
		names[i] = h.Name
	}
	return names
}

func (p *Post) HasTrendingHashtag() bool {
	for _, h := range p.Hashtags {
		if h.IsTrending {
			return true
		}
	}
	return false
}

func (p *Post) TargetKind() TargetKind { return TargetPost }
func (p *Post) TargetID() uint         { return p.ID }
func (p *Post) OwnerID() uint          { return p.AuthorID }
func (p *Post) RelatedPostID() uint    { return p.ID }

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content            string `json:"content" validate:"required,min=1,max=3000"`
	PostType           string `json:"post_type" validate:"omitempty,oneof=text image video article poll job_share achievement"`
	Visibility         string `json:"visibility" validate:"omitempty,oneof=public connections private"`
	ImageURL           string `json:"image_url" validate:"omitempty,url"`
	VideoURL           string `json:"video_url" validate:"omitempty,url"`
	ArticleTitle       string `json:"article_title" validate:"max=300"`
	ArticleURL         string `json:"article_url" validate:"omitempty,url"`
	ArticleDescription string `json:"article_description" validate:"max=500"`
	SharedJobID        *uint  `json:"shared_job_id"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Content    *string `json:"content" validate:"omitempty,min=1,max=3000"`
	Visibility *string `json:"visibility" validate:"omitempty,oneof=public connections private"`
	IsPinned   *bool   `json:"is_pinned"`
}

// ModeratePostRequest is the staff decision on a post.
type ModeratePostRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

// SavedPost is a private bookmark; only its owner ever lists it.
type SavedPost struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	PostID    uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"saved_at" gorm:"index"`
}

// PostQuery carries list filters for the posts endpoints.
type PostQuery struct {
	Search   string
	AuthorID uint
	PostType PostType
	Hashtag  string
	Ordering string
}

// PostStats summarizes a member's own publishing activity.
type PostStats struct {
	PostsToday            int64   `json:"posts_today"`
	PostsThisWeek         int64   `json:"posts_this_week"`
	TotalPosts            int64   `json:"total_posts"`
	TotalLikesReceived    int64   `json:"total_likes_received"`
	TotalCommentsReceived int64   `json:"total_comments_received"`
	TotalSharesReceived   int64   `json:"total_shares_received"`
	EngagementRate        float64 `json:"engagement_rate"`
	TopPerformingPost     *Post   `json:"top_performing_post"`
}
