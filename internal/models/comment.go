package models

import "time"

// Comment belongs to exactly one post; ParentID points at the top-level
// comment for replies (one level of nesting).
type Comment struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	PostID       uint      `json:"post_id" gorm:"not null;index:idx_comments_post_created,priority:1"`
	AuthorID     uint      `json:"author_id" gorm:"not null;index"`
	ParentID     *uint     `json:"parent_id,omitempty" gorm:"index"`
	Content      string    `json:"content" gorm:"type:text;not null"`
	LikesCount   int64     `json:"likes_count"`
	RepliesCount int64     `json:"replies_count"`
	IsReported   bool      `json:"is_reported"`
	IsApproved   bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at" gorm:"index:idx_comments_post_created,priority:2"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CommentLike rows back Comment.LikesCount, one per member and comment.
type CommentLike struct {
	CommentID uint      `json:"comment_id" gorm:"primaryKey;autoIncrement:false"`
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"liked_at"`
}

func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

func (c *Comment) TargetKind() TargetKind { return TargetComment }
func (c *Comment) TargetID() uint         { return c.ID }
func (c *Comment) OwnerID() uint          { return c.AuthorID }
func (c *Comment) RelatedPostID() uint    { return c.PostID }

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=1000"`
	ParentID *uint  `json:"parent_id"`
}

// CommentThread is a top-level comment with its replies.
type CommentThread struct {
	Comment
	Replies []Comment `json:"replies"`
}
