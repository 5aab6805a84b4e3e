package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/pkg/logging"
	"github.com/anonto42/linkedin-clone/backend/pkg/metrics"
)

const (
	TrendingHashtagWindow   = 7 * 24 * time.Hour
	TrendingHashtagMinPosts = 3
	TrendingHashtagLimit    = 20
)

// ContentService publishes and manages posts, comments and hashtags.
type ContentService struct {
	stores     Stores
	visibility *Visibility
	notifier   *Notifier
	activity   *ActivityLog
	now        Clock
}

func NewContentService(stores Stores, visibility *Visibility, notifier *Notifier, activity *ActivityLog) *ContentService {
	return &ContentService{
		stores:     stores,
		visibility: visibility,
		notifier:   notifier,
		activity:   activity,
		now:        time.Now,
	}
}

// CreatePost stores the post with its hashtags and mentions, then notifies
// mentioned members and, for public posts, the author's connections.
func (s *ContentService) CreatePost(ctx context.Context, actor uint, req models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID:           actor,
		Content:            req.Content,
		PostType:           models.PostType(req.PostType),
		Visibility:         models.Visibility(req.Visibility),
		ImageURL:           req.ImageURL,
		VideoURL:           req.VideoURL,
		ArticleTitle:       req.ArticleTitle,
		ArticleURL:         req.ArticleURL,
		ArticleDescription: req.ArticleDescription,
		SharedJobID:        req.SharedJobID,
		IsApproved:         true,
	}
	if post.PostType == "" {
		post.PostType = models.PostTypeText
	}
	if post.Visibility == "" {
		post.Visibility = models.VisibilityPublic
	}
	if post.PostType == models.PostTypeJobShare {
		if post.SharedJobID == nil {
			return nil, fieldError("shared_job_id", "A job share needs shared_job_id")
		}
		if _, err := s.stores.Jobs.GetJobByID(ctx, *post.SharedJobID); err != nil {
			return nil, storeError(err, "Job")
		}
	}

	mentioned, err := s.resolveMentions(ctx, actor, req.Content)
	if err != nil {
		return nil, err
	}
	if err := s.stores.Posts.CreatePost(ctx, post, ExtractHashtags(req.Content), mentioned); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	metrics.PostsCreated.WithLabelValues(string(post.PostType), string(post.Visibility)).Inc()
	s.activity.trackObject(ctx, actor, models.ActivityPostCreate, "post", post.ID)

	name := s.notifier.nameOf(ctx, actor)
	for _, u := range mentioned {
		s.notifier.notify(ctx, models.Notice{
			Recipient: u.ID,
			Sender:    &actor,
			Type:      models.NotificationMention,
			Title:     "You were mentioned",
			Message:   fmt.Sprintf("%s mentioned you in a post", name),
			PostID:    post.ID,
			ActionURL: postURL(post.ID),
		})
	}
	if post.Visibility == models.VisibilityPublic {
		s.notifyConnections(ctx, actor, name, post)
	}
	return post, nil
}

func (s *ContentService) notifyConnections(ctx context.Context, actor uint, name string, post *models.Post) {
	ids, err := s.stores.Connections.ConnectedUserIDs(ctx, actor)
	if err != nil {
		logging.Warn().Err(err).Uint("post_id", post.ID).Msg("connections not notified")
		return
	}
	for _, id := range ids {
		s.notifier.notify(ctx, models.Notice{
			Recipient: id,
			Sender:    &actor,
			Type:      models.NotificationConnectionPost,
			Title:     "New post from your network",
			Message:   fmt.Sprintf("%s shared a new post", name),
			PostID:    post.ID,
			ActionURL: postURL(post.ID),
		})
	}
}

// resolveMentions maps @handles to active members other than the author.
func (s *ContentService) resolveMentions(ctx context.Context, actor uint, content string) ([]models.User, error) {
	handles := ExtractMentions(content)
	if len(handles) == 0 {
		return nil, nil
	}
	users, err := s.stores.Users.FindByHandles(ctx, handles)
	if err != nil {
		return nil, fmt.Errorf("resolve mentions: %w", err)
	}
	out := users[:0]
	for _, u := range users {
		if u.ID != actor {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *ContentService) GetPost(ctx context.Context, viewer *uint, id uint) (*models.Post, error) {
	post, err := s.visibility.VisiblePost(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	if err := annotate(ctx, s.stores, viewer, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *ContentService) ListPosts(ctx context.Context, viewer *uint, query models.PostQuery, page repositories.Page) ([]models.Post, int64, error) {
	if query.Search != "" && viewer != nil {
		s.activity.Track(ctx, models.Activity{
			UserID:   *viewer,
			Type:     models.ActivitySearch,
			Metadata: map[string]interface{}{"query": query.Search, "scope": "posts"},
		})
	}
	posts, total, err := s.stores.Posts.ListPosts(ctx, repositories.PostListOptions{Viewer: viewer, Query: query, Page: page})
	return annotatePage(ctx, s.stores, viewer, posts, total, err)
}

// UpdatePost lets the author edit content, visibility and pinning.
func (s *ContentService) UpdatePost(ctx context.Context, actor, id uint, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.stores.Posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Post")
	}
	if post.AuthorID != actor {
		return nil, forbidden("You are not authorized to update this post")
	}
	fields := map[string]interface{}{}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Visibility != nil {
		fields["visibility"] = *req.Visibility
	}
	if req.IsPinned != nil {
		fields["is_pinned"] = *req.IsPinned
	}
	if len(fields) > 0 {
		if err := s.stores.Posts.UpdatePost(ctx, id, fields); err != nil {
			return nil, storeError(err, "Post")
		}
	}
	updated, err := s.stores.Posts.GetPostByID(ctx, id)
	return updated, storeError(err, "Post")
}

// ModeratePost lets staff approve or withhold a post. Approving a withheld
// post clears its report flag and tells the author.
func (s *ContentService) ModeratePost(ctx context.Context, actor, id uint, approved bool) (*models.Post, error) {
	if !s.isStaff(ctx, actor) {
		return nil, forbidden("Only staff can moderate posts")
	}
	post, err := s.stores.Posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Post")
	}
	fields := map[string]interface{}{"is_approved": approved}
	if approved {
		fields["is_reported"] = false
	}
	if err := s.stores.Posts.UpdatePost(ctx, id, fields); err != nil {
		return nil, storeError(err, "Post")
	}
	if approved && !post.IsApproved {
		s.notifier.notify(ctx, models.Notice{
			Recipient: post.AuthorID,
			Sender:    &actor,
			Type:      models.NotificationPostApproved,
			Title:     "Post approved",
			Message:   "Your post is visible again",
			PostID:    post.ID,
			ActionURL: postURL(post.ID),
		})
	}
	updated, err := s.stores.Posts.GetPostByID(ctx, id)
	return updated, storeError(err, "Post")
}

// DeletePost removes a post; authors and staff may delete.
func (s *ContentService) DeletePost(ctx context.Context, actor, id uint) error {
	post, err := s.stores.Posts.GetPostByID(ctx, id)
	if err != nil {
		return storeError(err, "Post")
	}
	if post.AuthorID != actor && !s.isStaff(ctx, actor) {
		return forbidden("You are not authorized to delete this post")
	}
	return storeError(s.stores.Posts.DeletePost(ctx, post), "Post")
}

func (s *ContentService) isStaff(ctx context.Context, userID uint) bool {
	u, err := s.stores.Users.GetUserByID(ctx, userID)
	return err == nil && u.IsStaff
}

// CreateComment adds a comment or a reply. Replies to replies attach to the
// top-level comment so threads stay one level deep.
func (s *ContentService) CreateComment(ctx context.Context, actor, postID uint, req models.CreateCommentRequest) (*models.Comment, error) {
	post, err := s.visibility.VisiblePost(ctx, postID, &actor)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{
		PostID:     post.ID,
		AuthorID:   actor,
		Content:    req.Content,
		IsApproved: true,
	}
	var parent *models.Comment
	if req.ParentID != nil {
		parent, err = s.stores.Comments.GetCommentByID(ctx, *req.ParentID)
		if err != nil || parent.PostID != post.ID {
			return nil, fieldError("parent_id", "Parent comment not found on this post")
		}
		if parent.ParentID != nil {
			if parent, err = s.stores.Comments.GetCommentByID(ctx, *parent.ParentID); err != nil {
				return nil, storeError(err, "Comment")
			}
		}
		comment.ParentID = &parent.ID
	}
	if err := s.stores.Comments.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	metrics.RecordEngagement("comment", "created")
	s.activity.trackObject(ctx, actor, models.ActivityPostComment, "post", post.ID)

	name := s.notifier.nameOf(ctx, actor)
	s.notifier.notify(ctx, models.Notice{
		Recipient: post.AuthorID,
		Sender:    &actor,
		Type:      models.NotificationComment,
		Title:     "New comment",
		Message:   fmt.Sprintf("%s commented on your post", name),
		PostID:    post.ID,
		CommentID: comment.ID,
		ActionURL: postURL(post.ID),
	})
	if parent != nil && parent.AuthorID != post.AuthorID {
		s.notifier.notify(ctx, models.Notice{
			Recipient: parent.AuthorID,
			Sender:    &actor,
			Type:      models.NotificationComment,
			Title:     "New reply",
			Message:   fmt.Sprintf("%s replied to your comment", name),
			PostID:    post.ID,
			CommentID: comment.ID,
			ActionURL: postURL(post.ID),
		})
	}
	mentioned, err := s.resolveMentions(ctx, actor, req.Content)
	if err != nil {
		logging.Warn().Err(err).Uint("comment_id", comment.ID).Msg("mentions not resolved")
	}
	for _, u := range mentioned {
		s.notifier.notify(ctx, models.Notice{
			Recipient: u.ID,
			Sender:    &actor,
			Type:      models.NotificationMention,
			Title:     "You were mentioned",
			Message:   fmt.Sprintf("%s mentioned you in a comment", name),
			PostID:    post.ID,
			CommentID: comment.ID,
			ActionURL: postURL(post.ID),
		})
	}
	return comment, nil
}

// ListComments pages through top-level comments with their replies.
func (s *ContentService) ListComments(ctx context.Context, viewer *uint, postID uint, page repositories.Page) ([]models.CommentThread, int64, error) {
	post, err := s.visibility.VisiblePost(ctx, postID, viewer)
	if err != nil {
		return nil, 0, err
	}
	comments, total, err := s.stores.Comments.ListComments(ctx, post.ID, page)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	replies, err := s.stores.Comments.ListReplies(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byParent := make(map[uint][]models.Comment, len(comments))
	for _, r := range replies {
		byParent[*r.ParentID] = append(byParent[*r.ParentID], r)
	}
	threads := make([]models.CommentThread, len(comments))
	for i, c := range comments {
		threads[i] = models.CommentThread{Comment: c, Replies: nonNil(byParent[c.ID])}
	}
	return threads, total, nil
}

// DeleteComment is allowed for the comment author, the post author and staff.
func (s *ContentService) DeleteComment(ctx context.Context, actor, id uint) error {
	comment, err := s.stores.Comments.GetCommentByID(ctx, id)
	if err != nil {
		return storeError(err, "Comment")
	}
	if comment.AuthorID != actor {
		post, err := s.stores.Posts.GetPostByID(ctx, comment.PostID)
		if err != nil {
			return storeError(err, "Post")
		}
		if post.AuthorID != actor && !s.isStaff(ctx, actor) {
			return forbidden("You are not authorized to delete this comment")
		}
	}
	return storeError(s.stores.Comments.DeleteComment(ctx, comment), "Comment")
}

func (s *ContentService) ListHashtags(ctx context.Context, search string, page repositories.Page) ([]models.Hashtag, int64, error) {
	return s.stores.Hashtags.ListHashtags(ctx, search, page)
}

// TrendingHashtags ranks hashtags used on at least three posts this week.
func (s *ContentService) TrendingHashtags(ctx context.Context) ([]models.TrendingHashtag, error) {
	tags, err := s.stores.Hashtags.TrendingHashtags(ctx, s.now().Add(-TrendingHashtagWindow), TrendingHashtagMinPosts, TrendingHashtagLimit)
	return nonNil(tags), err
}

func (s *ContentService) HashtagPosts(ctx context.Context, viewer *uint, name string, page repositories.Page) ([]models.Post, int64, error) {
	tag := NormalizeHashtag(name)
	if _, err := s.stores.Hashtags.GetHashtagByName(ctx, tag); err != nil {
		return nil, 0, storeError(err, "Hashtag")
	}
	posts, total, err := s.stores.Posts.ListPosts(ctx, repositories.PostListOptions{
		Viewer: viewer,
		Query:  models.PostQuery{Hashtag: tag},
		Page:   page,
	})
	return annotatePage(ctx, s.stores, viewer, posts, total, err)
}

// RefreshTrending recomputes the trending flag on every hashtag.
func (s *ContentService) RefreshTrending(ctx context.Context) (int64, error) {
	n, err := s.stores.Hashtags.RefreshTrending(ctx, s.now().Add(-TrendingHashtagWindow), TrendingHashtagMinPosts)
	if err != nil {
		return 0, err
	}
	metrics.TrendingHashtags.Set(float64(n))
	return n, nil
}
