package models

import "time"

// Hashtag names are stored lowercase with spaces removed.
type Hashtag struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	PostsCount int64     `json:"posts_count"`
	IsTrending bool      `json:"is_trending" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
}

// TrendingHashtag is a hashtag with its recent usage.
type TrendingHashtag struct {
	Hashtag
	RecentPostsCount int64 `json:"recent_posts_count"`
}
