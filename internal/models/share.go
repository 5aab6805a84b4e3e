package models

import "time"

// Share is a re-post of another member's post with optional commentary.
type Share struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_post_share;index"`
	PostID       uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_user_post_share;index"`
	ShareContent string    `json:"share_content" gorm:"size:500"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Share) TableName() string {
	return "post_shares"
}

type ShareRequest struct {
	ShareContent string `json:"share_content" validate:"max=500"`
}
