package models

import "time"

type ConnectionStatus string

const (
	ConnectionPending   ConnectionStatus = "pending"
	ConnectionAccepted  ConnectionStatus = "accepted"
	ConnectionDeclined  ConnectionStatus = "declined"
	ConnectionWithdrawn ConnectionStatus = "withdrawn"
)

// ConnectionRequest is an invitation from Sender to Receiver; one row per
// ordered pair, reused when a declined or withdrawn invitation is re-sent.
type ConnectionRequest struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	SenderID    uint             `json:"sender_id" gorm:"not null;uniqueIndex:idx_request_pair;index"`
	ReceiverID  uint             `json:"receiver_id" gorm:"not null;uniqueIndex:idx_request_pair;index"`
	Message     string           `json:"message" gorm:"size:500"`
	Status      ConnectionStatus `json:"status" gorm:"size:20;not null;index"`
	RespondedAt *time.Time       `json:"responded_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Connection is an accepted, undirected relationship. User1ID is always the
// smaller id so each pair has exactly one row.
type Connection struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	User1ID          uint      `json:"user1_id" gorm:"not null;uniqueIndex:idx_connection_pair;index"`
	User2ID          uint      `json:"user2_id" gorm:"not null;uniqueIndex:idx_connection_pair;index"`
	RequestID        *uint     `json:"request_id,omitempty"`
	InteractionCount int64     `json:"interaction_count"`
	CreatedAt        time.Time `json:"connected_at"`
}

// NewConnection orders the pair so (a, b) and (b, a) map to the same row.
func NewConnection(a, b uint, requestID *uint) *Connection {
	if a > b {
		a, b = b, a
	}
	return &Connection{User1ID: a, User2ID: b, RequestID: requestID}
}

// Other returns the participant that is not userID.
func (c *Connection) Other(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

func (c *Connection) Involves(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// Block hides two members from each other.
type Block struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BlockerID uint      `json:"blocker_id" gorm:"not null;uniqueIndex:idx_block_pair"`
	BlockedID uint      `json:"blocked_id" gorm:"not null;uniqueIndex:idx_block_pair;index"`
	CreatedAt time.Time `json:"created_at"`
}

// Follow subscribes FollowerID to FollowingID's public activity. It needs
// no acceptance and exists alongside connections.
type Follow struct {
	FollowerID  uint      `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`
	FollowingID uint      `json:"following_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt   time.Time `json:"followed_at"`
}

type SendConnectionRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Message    string `json:"message" validate:"max=500"`
}

// RelationshipStatus describes how the viewer relates to another member.
type RelationshipStatus struct {
	UserID       uint               `json:"user_id"`
	Connected    bool               `json:"connected"`
	ConnectionID uint               `json:"connection_id,omitempty"`
	Request      *ConnectionRequest `json:"request,omitempty"`
	Following    bool               `json:"following"`
	FollowedBy   bool               `json:"followed_by"`
	Blocked      bool               `json:"blocked"`
	MutualCount  int                `json:"mutual_connections"`
}

// Recommendation is a suggested member with their mutual-connection count.
type Recommendation struct {
	User              UserCompact `json:"user"`
	MutualConnections int         `json:"mutual_connections"`
}

// ConnectedUser is one entry of a member's connection list.
type ConnectedUser struct {
	ConnectionID uint        `json:"connection_id"`
	User         UserCompact `json:"user"`
	ConnectedAt  time.Time   `json:"connected_at"`
}
