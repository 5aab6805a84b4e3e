package models

import "time"

type ReportReason string

const (
	ReportSpam           ReportReason = "spam"
	ReportHarassment     ReportReason = "harassment"
	ReportInappropriate  ReportReason = "inappropriate"
	ReportMisinformation ReportReason = "misinformation"
	ReportCopyright      ReportReason = "copyright"
	ReportViolence       ReportReason = "violence"
	ReportHateSpeech     ReportReason = "hate_speech"
	ReportFakeNews       ReportReason = "fake_news"
	ReportOther          ReportReason = "other"
)

// ReportThreshold is the number of reports after which content is flagged.
const ReportThreshold = 3

// Report is a moderation complaint about a post or one of its comments.
// CommentID is 0 for post-level reports.
type Report struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	ReporterID  uint         `json:"reporter_id" gorm:"not null;uniqueIndex:idx_reporter_target"`
	PostID      uint         `json:"post_id" gorm:"not null;uniqueIndex:idx_reporter_target;index"`
	CommentID   uint         `json:"comment_id,omitempty" gorm:"not null;uniqueIndex:idx_reporter_target"`
	Reason      ReportReason `json:"reason" gorm:"size:20;not null"`
	Description string       `json:"description" gorm:"size:500"`
	IsReviewed  bool         `json:"is_reviewed"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (Report) TableName() string {
	return "content_reports"
}

type ReportRequest struct {
	Reason      string `json:"reason" validate:"required,oneof=spam harassment inappropriate misinformation copyright violence hate_speech fake_news other"`
	Description string `json:"description" validate:"max=500"`
}
