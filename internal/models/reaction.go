package models

import "time"

type ReactionKind string

const (
	ReactionLike      ReactionKind = "like"
	ReactionLove      ReactionKind = "love"
	ReactionLaugh     ReactionKind = "laugh"
	ReactionWow       ReactionKind = "wow"
	ReactionSad       ReactionKind = "sad"
	ReactionAngry     ReactionKind = "angry"
	ReactionCelebrate ReactionKind = "celebrate"
	ReactionSupport   ReactionKind = "support"
)

func (k ReactionKind) Valid() bool {
	switch k {
	case ReactionLike, ReactionLove, ReactionLaugh, ReactionWow,
		ReactionSad, ReactionAngry, ReactionCelebrate, ReactionSupport:
		return true
	}
	return false
}

// Reaction is one member's reaction to a post; at most one per (user, post).
type Reaction struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	UserID    uint         `json:"user_id" gorm:"not null;uniqueIndex:idx_user_post_reaction;index"`
	PostID    uint         `json:"post_id" gorm:"not null;uniqueIndex:idx_user_post_reaction;index"`
	Kind      ReactionKind `json:"reaction_type" gorm:"size:20;not null"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (Reaction) TableName() string {
	return "post_reactions"
}

// ReactRequest defines the request body for reacting to a post
type ReactRequest struct {
	ReactionType string `json:"reaction_type" validate:"omitempty,oneof=like love laugh wow sad angry celebrate support"`
}

// ReactionResult is returned from a react toggle.
type ReactionResult struct {
	Status     Outcome      `json:"status"`
	Reaction   ReactionKind `json:"reaction_type,omitempty"`
	LikesCount int64        `json:"likes_count"`
}

// PostReactions is one page of a post's reactions with the totals by kind.
type PostReactions struct {
	Reactions []Reaction             `json:"reactions"`
	Counts    map[ReactionKind]int64 `json:"counts"`
}
