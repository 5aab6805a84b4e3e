package models

type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Target is content that can be reported or referenced by a notification.
// *Post and *Comment implement it.
type Target interface {
	TargetKind() TargetKind
	TargetID() uint
	OwnerID() uint
	RelatedPostID() uint
}

// TargetCommentID returns the comment id for comment targets and 0 otherwise.
func TargetCommentID(t Target) uint {
	if t.TargetKind() == TargetComment {
		return t.TargetID()
	}
	return 0
}

// Upsert is the result of an idempotent insert: either the row was created
// or an equal row already existed.
type Upsert[T any] struct {
	Value   T
	Created bool
}

// Outcome is the status word reported to clients for engagement actions.
type Outcome string

const (
	OutcomeLiked           Outcome = "liked"
	OutcomeUnliked         Outcome = "unliked"
	OutcomeReactionUpdated Outcome = "reaction_updated"
	OutcomeAlreadyLiked    Outcome = "already_liked"
	OutcomeShared          Outcome = "shared"
	OutcomeAlreadyShared   Outcome = "already_shared"
	OutcomeSaved           Outcome = "saved"
	OutcomeAlreadySaved    Outcome = "already_saved"
	OutcomeUnsaved         Outcome = "unsaved"
	OutcomeReported        Outcome = "reported"
	OutcomeAlreadyReported Outcome = "already_reported"
	OutcomeFollowed        Outcome = "followed"
	OutcomeAlreadyFollowed Outcome = "already_following"
	OutcomeUnfollowed      Outcome = "unfollowed"
	OutcomeApplied         Outcome = "applied"
	OutcomeAlreadyApplied  Outcome = "already_applied"
	OutcomeViewed          Outcome = "viewed"
	OutcomeAlreadyViewed   Outcome = "already_viewed"
	OutcomeEndorsed        Outcome = "endorsed"
	OutcomeAlreadyEndorsed Outcome = "already_endorsed"
	OutcomeWithdrawn       Outcome = "withdrawn"
)
