package models

import "time"

// ViewWindow bounds how often one viewer can add to a view counter.
const ViewWindow = 30 * time.Minute

// PostView is one counted view. UserID is nil for anonymous viewers, who are
// keyed by IP address instead.
type PostView struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index:idx_post_views_post_viewed,priority:1"`
	UserID    *uint     `json:"user_id,omitempty" gorm:"index"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	UserAgent string    `json:"user_agent" gorm:"type:text"`
	ViewedAt  time.Time `json:"viewed_at" gorm:"autoCreateTime;index:idx_post_views_post_viewed,priority:2"`
}

// Viewer identifies who is looking at content.
type Viewer struct {
	UserID    *uint
	IP        string
	UserAgent string
}
