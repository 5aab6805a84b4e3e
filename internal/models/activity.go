package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityType string

const (
	ActivityLogin         ActivityType = "login"
	ActivityLogout        ActivityType = "logout"
	ActivityProfileView   ActivityType = "profile_view"
	ActivityProfileEdit   ActivityType = "profile_edit"
	ActivityPostCreate    ActivityType = "post_create"
	ActivityPostView      ActivityType = "post_view"
	ActivityPostLike      ActivityType = "post_like"
	ActivityPostShare     ActivityType = "post_share"
	ActivityPostComment   ActivityType = "post_comment"
	ActivityJobView       ActivityType = "job_view"
	ActivityJobApply      ActivityType = "job_apply"
	ActivityJobSave       ActivityType = "job_save"
	ActivityCompanyFollow ActivityType = "company_follow"
	ActivityUserFollow    ActivityType = "user_follow"
	ActivitySearch        ActivityType = "search"
)

// Activity is one entry of the analytics log stored in MongoDB
type Activity struct {
	ID         primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     uint                   `json:"user_id" bson:"user_id"`
	Type       ActivityType           `json:"activity_type" bson:"activity_type"`
	ObjectType string                 `json:"object_type,omitempty" bson:"object_type,omitempty"`
	ObjectID   uint                   `json:"object_id,omitempty" bson:"object_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	IPAddress  string                 `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	UserAgent  string                 `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	Timestamp  time.Time              `json:"timestamp" bson:"timestamp"`
}

// ActivityCount is one row of an activity summary.
type ActivityCount struct {
	Type  ActivityType `json:"activity_type" bson:"_id"`
	Count int64        `json:"count" bson:"count"`
}
