package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/pkg/metrics"
)

// EngagementService applies reactions, shares, saves, reports, comment likes
// and views. Every action requires the post to be visible to the actor.
type EngagementService struct {
	stores     Stores
	visibility *Visibility
	notifier   *Notifier
	activity   *ActivityLog
	now        Clock
}

func NewEngagementService(stores Stores, visibility *Visibility, notifier *Notifier, activity *ActivityLog) *EngagementService {
	return &EngagementService{
		stores:     stores,
		visibility: visibility,
		notifier:   notifier,
		activity:   activity,
		now:        time.Now,
	}
}

// React toggles the actor's reaction. A new reaction notifies the author.
func (s *EngagementService) React(ctx context.Context, actor, postID uint, kind models.ReactionKind) (*models.ReactionResult, error) {
	if kind == "" {
		kind = models.ReactionLike
	}
	if !kind.Valid() {
		return nil, fieldError("reaction_type", "Invalid reaction type")
	}
	post, err := s.visibility.VisiblePost(ctx, postID, &actor)
	if err != nil {
		return nil, err
	}
	result, err := s.stores.Reactions.ToggleReaction(ctx, actor, post.ID, kind)
	if err != nil {
		return nil, storeError(err, "Reaction")
	}
	metrics.RecordEngagement("react", string(result.Status))

	if result.Status == models.OutcomeLiked {
		s.notifier.notify(ctx, models.Notice{
			Recipient: post.AuthorID,
			Sender:    &actor,
			Type:      models.NotificationLike,
			Title:     "New reaction",
			Message:   fmt.Sprintf("%s reacted to your post", s.notifier.nameOf(ctx, actor)),
			PostID:    post.ID,
			ActionURL: postURL(post.ID),
		})
		s.activity.trackObject(ctx, actor, models.ActivityPostLike, "post", post.ID)
	}
	return result, nil
}

// Reactions pages through the reactions on a visible post, newest first,
// together with the totals per kind.
func (s *EngagementService) Reactions(ctx context.Context, viewer *uint, postID uint, page repositories.Page) (*models.PostReactions, int64, error) {
	post, err := s.visibility.VisiblePost(ctx, postID, viewer)
	if err != nil {
		return nil, 0, err
	}
	reactions, total, err := s.stores.Reactions.ListReactions(ctx, post.ID, page)
	if err != nil {
		return nil, 0, err
	}
	counts, err := s.stores.Reactions.CountByKind(ctx, post.ID)
	if err != nil {
		return nil, 0, err
	}
	return &models.PostReactions{Reactions: nonNil(reactions), Counts: counts}, total, nil
}

// Share is idempotent per member and post.
func (s *EngagementService) Share(ctx context.Context, actor, postID uint, content string) (models.Outcome, *models.Share, error) {
	post, err := s.visibility.VisiblePost(ctx, postID, &actor)
	if err != nil {
		return "", nil, err
	}
	res, err := s.stores.Shares.CreateShare(ctx, &models.Share{UserID: actor, PostID: post.ID, ShareContent: content})
	if err != nil {
		return "", nil, storeError(err, "Share")
	}
	if !res.Created {
		metrics.RecordEngagement("share", string(models.OutcomeAlreadyShared))
		return models.OutcomeAlreadyShared, res.Value, nil
	}
	metrics.RecordEngagement("share", string(models.OutcomeShared))
	s.notifier.notify(ctx, models.Notice{
		Recipient: post.AuthorID,
		Sender:    &actor,
		Type:      models.NotificationShare,
		Title:     "Post shared",
		Message:   fmt.Sprintf("%s shared your post", s.notifier.nameOf(ctx, actor)),
		PostID:    post.ID,
		ActionURL: postURL(post.ID),
	})
	s.activity.trackObject(ctx, actor, models.ActivityPostShare, "post", post.ID)
	return models.OutcomeShared, res.Value, nil
}

func (s *EngagementService) Save(ctx context.Context, actor, postID uint) (models.Outcome, error) {
	post, err := s.visibility.VisiblePost(ctx, postID, &actor)
	if err != nil {
		return "", err
	}
	res, err := s.stores.SavedPosts.SavePost(ctx, actor, post.ID)
	if err != nil {
		return "", storeError(err, "Saved post")
	}
	if !res.Created {
		return models.OutcomeAlreadySaved, nil
	}
	return models.OutcomeSaved, nil
}

func (s *EngagementService) Unsave(ctx context.Context, actor, postID uint) (models.Outcome, error) {
	removed, err := s.stores.SavedPosts.UnsavePost(ctx, actor, postID)
	if err != nil {
		return "", err
	}
	if !removed {
		return "", notFound("Post is not saved")
	}
	return models.OutcomeUnsaved, nil
}

func (s *EngagementService) ReportPost(ctx context.Context, actor, postID uint, req models.ReportRequest) (models.Outcome, error) {
	post, err := s.visibility.VisiblePost(ctx, postID, &actor)
	if err != nil {
		return "", err
	}
	return s.report(ctx, actor, post, req)
}

func (s *EngagementService) ReportComment(ctx context.Context, actor, commentID uint, req models.ReportRequest) (models.Outcome, error) {
	comment, err := s.visibleComment(ctx, actor, commentID)
	if err != nil {
		return "", err
	}
	return s.report(ctx, actor, comment, req)
}

// report files one report per member and target.
func (s *EngagementService) report(ctx context.Context, actor uint, target models.Target, req models.ReportRequest) (models.Outcome, error) {
	if target.OwnerID() == actor {
		return "", validation("You cannot report your own content")
	}
	res, err := s.stores.Reports.CreateReport(ctx, &models.Report{
		ReporterID:  actor,
		PostID:      target.RelatedPostID(),
		CommentID:   models.TargetCommentID(target),
		Reason:      models.ReportReason(req.Reason),
		Description: req.Description,
	})
	if err != nil {
		return "", storeError(err, "Report")
	}
	if !res.Created {
		return models.OutcomeAlreadyReported, nil
	}
	metrics.RecordEngagement("report", string(target.TargetKind()))
	return models.OutcomeReported, nil
}

// LikeComment returns the outcome and the comment's like count.
func (s *EngagementService) LikeComment(ctx context.Context, actor, commentID uint) (models.Outcome, int64, error) {
	comment, err := s.visibleComment(ctx, actor, commentID)
	if err != nil {
		return "", 0, err
	}
	created, count, err := s.stores.CommentLikes.LikeComment(ctx, comment.ID, actor)
	if err != nil {
		return "", 0, storeError(err, "Comment")
	}
	if !created {
		return models.OutcomeAlreadyLiked, count, nil
	}
	metrics.RecordEngagement("comment_like", string(models.OutcomeLiked))
	s.notifier.notify(ctx, models.Notice{
		Recipient: comment.AuthorID,
		Sender:    &actor,
		Type:      models.NotificationLike,
		Title:     "Comment liked",
		Message:   fmt.Sprintf("%s liked your comment", s.notifier.nameOf(ctx, actor)),
		PostID:    comment.PostID,
		CommentID: comment.ID,
		ActionURL: postURL(comment.PostID),
	})
	return models.OutcomeLiked, count, nil
}

func (s *EngagementService) UnlikeComment(ctx context.Context, actor, commentID uint) (models.Outcome, int64, error) {
	removed, count, err := s.stores.CommentLikes.UnlikeComment(ctx, commentID, actor)
	if err != nil {
		return "", 0, storeError(err, "Comment")
	}
	if !removed {
		return "", 0, notFound("You have not liked this comment")
	}
	return models.OutcomeUnliked, count, nil
}

// RecordView counts a view at most once per member, or per IP address for
// anonymous viewers, within models.ViewWindow.
func (s *EngagementService) RecordView(ctx context.Context, viewer models.Viewer, postID uint) (models.Outcome, error) {
	post, err := s.visibility.VisiblePost(ctx, postID, viewer.UserID)
	if err != nil {
		return "", err
	}
	now := s.now()
	counted, err := s.stores.Views.RecordPostView(ctx, &models.PostView{
		PostID:    post.ID,
		UserID:    viewer.UserID,
		IPAddress: viewer.IP,
		UserAgent: viewer.UserAgent,
		ViewedAt:  now,
	}, now.Add(-models.ViewWindow))
	if err != nil {
		return "", err
	}
	if !counted {
		return models.OutcomeAlreadyViewed, nil
	}
	if viewer.UserID != nil {
		s.activity.Track(ctx, models.Activity{
			UserID:     *viewer.UserID,
			Type:       models.ActivityPostView,
			ObjectType: "post",
			ObjectID:   post.ID,
			IPAddress:  viewer.IP,
			UserAgent:  viewer.UserAgent,
		})
	}
	return models.OutcomeViewed, nil
}

// visibleComment loads a comment whose post the actor can see.
func (s *EngagementService) visibleComment(ctx context.Context, actor, commentID uint) (*models.Comment, error) {
	comment, err := s.stores.Comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, storeError(err, "Comment")
	}
	if _, err := s.visibility.VisiblePost(ctx, comment.PostID, &actor); err != nil {
		if IsKind(err, KindNotFound) {
			return nil, notFound("Comment not found")
		}
		return nil, err
	}
	return comment, nil
}

func postURL(id uint) string {
	return fmt.Sprintf("/posts/%d", id)
}
