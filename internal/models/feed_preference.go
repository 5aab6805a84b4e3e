package models

import "time"

// FeedWeights are the ranking coefficients. They are expected to add up to
// roughly 1.0.
type FeedWeights struct {
	Connection float64 `json:"connection_weight" gorm:"column:connection_weight"`
	Engagement float64 `json:"engagement_weight" gorm:"column:engagement_weight"`
	Recency    float64 `json:"recency_weight" gorm:"column:recency_weight"`
	Similarity float64 `json:"similarity_weight" gorm:"column:similarity_weight"`
	Trending   float64 `json:"trending_weight" gorm:"column:trending_weight"`
}

func DefaultFeedWeights() FeedWeights {
	return FeedWeights{
		Connection: 0.3,
		Engagement: 0.2,
		Recency:    0.2,
		Similarity: 0.15,
		Trending:   0.15,
	}
}

func (w FeedWeights) Sum() float64 {
	return w.Connection + w.Engagement + w.Recency + w.Similarity + w.Trending
}

// FeedPreference holds one member's ranking weights and content toggles.
type FeedPreference struct {
	ID                   uint        `json:"-" gorm:"primaryKey"`
	UserID               uint        `json:"user_id" gorm:"uniqueIndex;not null"`
	Weights              FeedWeights `json:"weights" gorm:"embedded"`
	ShowPromotedContent  bool        `json:"show_promoted_content"`
	ShowJobPosts         bool        `json:"show_job_posts"`
	ShowCompanyUpdates   bool        `json:"show_company_updates"`
	ShowAchievementPosts bool        `json:"show_achievement_posts"`
	MutedUserIDs         []uint      `json:"muted_user_ids" gorm:"-"`
	MutedHashtags        []string    `json:"muted_hashtags" gorm:"-"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

func NewFeedPreference(userID uint) *FeedPreference {
	return &FeedPreference{
		UserID:               userID,
		Weights:              DefaultFeedWeights(),
		ShowPromotedContent:  true,
		ShowJobPosts:         true,
		ShowCompanyUpdates:   true,
		ShowAchievementPosts: true,
	}
}

// ExcludedPostTypes lists the post types switched off by the toggles.
func (p *FeedPreference) ExcludedPostTypes() []PostType {
	var out []PostType
	if !p.ShowJobPosts {
		out = append(out, PostTypeJobShare)
	}
	if !p.ShowAchievementPosts {
		out = append(out, PostTypeAchievement)
	}
	return out
}

type MutedUser struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_muted_user"`
	MutedUserID uint      `gorm:"not null;uniqueIndex:idx_muted_user"`
	CreatedAt   time.Time
}

func (MutedUser) TableName() string {
	return "feed_muted_users"
}

type MutedHashtag struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_muted_hashtag"`
	HashtagID uint      `gorm:"not null;uniqueIndex:idx_muted_hashtag"`
	CreatedAt time.Time
}

func (MutedHashtag) TableName() string {
	return "feed_muted_hashtags"
}

// UpdateFeedPreferencesRequest only touches the fields that are present.
type UpdateFeedPreferencesRequest struct {
	ConnectionWeight     *float64 `json:"connection_weight" validate:"omitempty,min=0,max=1"`
	EngagementWeight     *float64 `json:"engagement_weight" validate:"omitempty,min=0,max=1"`
	RecencyWeight        *float64 `json:"recency_weight" validate:"omitempty,min=0,max=1"`
	SimilarityWeight     *float64 `json:"similarity_weight" validate:"omitempty,min=0,max=1"`
	TrendingWeight       *float64 `json:"trending_weight" validate:"omitempty,min=0,max=1"`
	ShowPromotedContent  *bool    `json:"show_promoted_content"`
	ShowJobPosts         *bool    `json:"show_job_posts"`
	ShowCompanyUpdates   *bool    `json:"show_company_updates"`
	ShowAchievementPosts *bool    `json:"show_achievement_posts"`
}

// FeedFilter is what the post store needs from a member's preferences.
type FeedFilter struct {
	ExcludeTypes []PostType
	MutedUsers   bool
	MutedTags    bool
}

// ScoredPost is a post with its ranking score.
type ScoredPost struct {
	Post  Post    `json:"post"`
	Score float64 `json:"score"`
}
