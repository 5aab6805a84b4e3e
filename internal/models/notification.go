package models

import "time"

type NotificationType string

const (
	NotificationLike               NotificationType = "like"
	NotificationComment            NotificationType = "comment"
	NotificationShare              NotificationType = "share"
	NotificationFollow             NotificationType = "follow"
	NotificationMention            NotificationType = "mention"
	NotificationJobApplication     NotificationType = "job_application"
	NotificationConnectionRequest  NotificationType = "connection_request"
	NotificationConnectionAccepted NotificationType = "connection_accepted"
	NotificationConnectionPost     NotificationType = "connection_post"
	NotificationPostApproved       NotificationType = "post_approved"
	NotificationSystem             NotificationType = "system"
)

// NotificationDedupWindow suppresses identical notifications emitted in quick succession.
const NotificationDedupWindow = 5 * time.Minute

// Notification represents a user notification (PostgreSQL).
// PostID and CommentID are 0 when the notification is not about content.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient_id" gorm:"not null;index:idx_notifications_recipient,priority:1"`
	SenderID    *uint            `json:"sender_id,omitempty" gorm:"index"`
	Type        NotificationType `json:"notification_type" gorm:"column:notification_type;size:30;index"`
	Title       string           `json:"title" gorm:"size:200"`
	Message     string           `json:"message" gorm:"size:500"`
	PostID      uint             `json:"post_id,omitempty" gorm:"index"`
	CommentID   uint             `json:"comment_id,omitempty"`
	ActionURL   string           `json:"action_url,omitempty"`
	IsRead      bool             `json:"is_read" gorm:"default:false;index:idx_notifications_recipient,priority:2"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}

// Notice is the input to the notification emitter.
type Notice struct {
	Recipient uint
	Sender    *uint
	Type      NotificationType
	Title     string
	Message   string
	PostID    uint
	CommentID uint
	ActionURL string
}

// NotificationFilter narrows the notification list.
type NotificationFilter struct {
	Type   NotificationType
	IsRead *bool
}

// NotificationView is a notification with its sender summary.
type NotificationView struct {
	Notification
	Sender *UserCompact `json:"sender,omitempty"`
}
