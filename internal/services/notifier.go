package services

import (
	"context"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/pkg/logging"
	"github.com/anonto42/linkedin-clone/backend/pkg/metrics"
)

// Notifier stores notifications and serves the recipient's inbox.
type Notifier struct {
	repo  repositories.NotificationRepository
	users repositories.UserRepository
	now   Clock
}

func NewNotifier(repo repositories.NotificationRepository, users repositories.UserRepository) *Notifier {
	return &Notifier{repo: repo, users: users, now: time.Now}
}

// Emit stores a notification unless the recipient is the sender or an
// identical one went out within models.NotificationDedupWindow. created is
// false when nothing was written.
func (n *Notifier) Emit(ctx context.Context, notice models.Notice) (*models.Notification, bool, error) {
	if notice.Recipient == 0 {
		return nil, false, nil
	}
	if notice.Sender != nil && *notice.Sender == notice.Recipient {
		return nil, false, nil
	}
	now := n.now()
	notification := &models.Notification{
		RecipientID: notice.Recipient,
		SenderID:    notice.Sender,
		Type:        notice.Type,
		Title:       notice.Title,
		Message:     notice.Message,
		PostID:      notice.PostID,
		CommentID:   notice.CommentID,
		ActionURL:   notice.ActionURL,
		CreatedAt:   now,
	}
	created, err := n.repo.CreateUnlessRecent(ctx, notification, now.Add(-models.NotificationDedupWindow))
	if err != nil {
		return nil, false, err
	}
	if !created {
		metrics.NotificationsSuppressed.WithLabelValues(string(notice.Type)).Inc()
		return nil, false, nil
	}
	metrics.NotificationsEmitted.WithLabelValues(string(notice.Type)).Inc()
	return notification, true, nil
}

// notify emits after the triggering write has committed; a failure is
// logged and never fails the request.
func (n *Notifier) notify(ctx context.Context, notice models.Notice) {
	if _, _, err := n.Emit(ctx, notice); err != nil {
		logging.Warn().Err(err).
			Str("type", string(notice.Type)).
			Uint("recipient", notice.Recipient).
			Msg("notification not stored")
	}
}

// nameOf returns the display name used in notification messages.
func (n *Notifier) nameOf(ctx context.Context, userID uint) string {
	u, err := n.users.GetUserByID(ctx, userID)
	if err != nil || u.FullName() == "" {
		return "Someone"
	}
	return u.FullName()
}

func (n *Notifier) List(ctx context.Context, recipient uint, filter models.NotificationFilter, page repositories.Page) ([]models.Notification, int64, error) {
	return n.repo.GetByRecipientID(ctx, recipient, filter, page)
}

// Grouped buckets the inbox into today, yesterday, earlier this week and older.
func (n *Notifier) Grouped(ctx context.Context, recipient uint) (map[string][]models.Notification, error) {
	today, yesterday, week, older, err := n.repo.GetGrouped(ctx, recipient, n.now())
	if err != nil {
		return nil, err
	}
	return map[string][]models.Notification{
		"today":     nonNil(today),
		"yesterday": nonNil(yesterday),
		"this_week": nonNil(week),
		"older":     nonNil(older),
	}, nil
}

func (n *Notifier) UnreadCount(ctx context.Context, recipient uint) (int64, error) {
	return n.repo.GetUnreadCount(ctx, recipient)
}

// MarkRead is idempotent; other members' notifications are not found.
func (n *Notifier) MarkRead(ctx context.Context, recipient, id uint) (*models.Notification, error) {
	notification, err := n.repo.MarkAsRead(ctx, recipient, id, n.now())
	if err != nil {
		return nil, storeError(err, "Notification")
	}
	return notification, nil
}

func (n *Notifier) MarkAllRead(ctx context.Context, recipient uint) (int64, error) {
	return n.repo.MarkAllAsRead(ctx, recipient, n.now())
}

func (n *Notifier) Delete(ctx context.Context, recipient, id uint) error {
	return storeError(n.repo.DeleteNotification(ctx, recipient, id), "Notification")
}

// Enrich attaches the sender summary to each notification. Senders that no
// longer exist are left empty.
func (n *Notifier) Enrich(ctx context.Context, notifications []models.Notification) ([]models.NotificationView, error) {
	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(notifications))
	for _, item := range notifications {
		if item.SenderID != nil && !seen[*item.SenderID] {
			seen[*item.SenderID] = true
			ids = append(ids, *item.SenderID)
		}
	}
	users, err := n.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	compact := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		compact[users[i].ID] = users[i].ToCompact()
	}
	views := make([]models.NotificationView, len(notifications))
	for i, item := range notifications {
		views[i] = models.NotificationView{Notification: item}
		if item.SenderID != nil {
			if sender, ok := compact[*item.SenderID]; ok {
				views[i].Sender = &sender
			}
		}
	}
	return views, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
