package repositories

import (
	"context"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateUnlessRecent(ctx context.Context, notification *models.Notification, since time.Time) (bool, error)
	GetByRecipientID(ctx context.Context, recipientID uint, filter models.NotificationFilter, page Page) ([]models.Notification, int64, error)
	GetGrouped(ctx context.Context, recipientID uint, now time.Time) ([]models.Notification, []models.Notification, []models.Notification, []models.Notification, error)
	GetUnreadCount(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, recipientID, notificationID uint, at time.Time) (*models.Notification, error)
	MarkAllAsRead(ctx context.Context, recipientID uint, at time.Time) (int64, error)
	DeleteNotification(ctx context.Context, recipientID, notificationID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// CreateUnlessRecent inserts the notification unless an identical one
// (recipient, sender, type, post, comment) was created since the given time.
func (r *postgresNotificationRepository) CreateUnlessRecent(ctx context.Context, n *models.Notification, since time.Time) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Notification{}).
			Where("recipient_id = ? AND notification_type = ? AND post_id = ? AND comment_id = ? AND created_at >= ?",
				n.RecipientID, n.Type, n.PostID, n.CommentID, since)
		if n.SenderID == nil {
			q = q.Where("sender_id IS NULL")
		} else {
			q = q.Where("sender_id = ?", *n.SenderID)
		}
		var dup int64
		if err := q.Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return nil
		}
		if err := tx.Create(n).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, translate(err)
}

func (r *postgresNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uint, filter models.NotificationFilter, page Page) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Notification{}).Where("recipient_id = ?", recipientID)
	if filter.Type != "" {
		q = q.Where("notification_type = ?", filter.Type)
	}
	if filter.IsRead != nil {
		q = q.Where("is_read = ?", *filter.IsRead)
	}
	q = q.Session(&gorm.Session{})

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").
		Scopes(page.apply).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetGrouped(ctx context.Context, recipientID uint, now time.Time) (today, yesterday, thisWeek, older []models.Notification, retErr error) {
	db := r.db.WithContext(ctx)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	weekStart := todayStart.AddDate(0, 0, -7)

	// Today
	if err := db.Where("recipient_id = ? AND created_at >= ?", recipientID, todayStart).
		Order("created_at DESC").Find(&today).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	// Yesterday
	if err := db.Where("recipient_id = ? AND created_at >= ? AND created_at < ?", recipientID, yesterdayStart, todayStart).
		Order("created_at DESC").Find(&yesterday).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	// This week (excluding today and yesterday)
	if err := db.Where("recipient_id = ? AND created_at >= ? AND created_at < ?", recipientID, weekStart, yesterdayStart).
		Order("created_at DESC").Find(&thisWeek).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	// Older
	if err := db.Where("recipient_id = ? AND created_at < ?", recipientID, weekStart).
		Order("created_at DESC").Limit(50).Find(&older).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	return today, yesterday, thisWeek, older, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("recipient_id = ? AND is_read = ?", recipientID, false).Count(&count).Error
	return count, err
}

// MarkAsRead flips a notification to read. Reading an already read
// notification keeps its original read_at.
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, recipientID, notificationID uint, at time.Time) (*models.Notification, error) {
	var n models.Notification
	db := r.db.WithContext(ctx)
	if err := db.Where("id = ? AND recipient_id = ?", notificationID, recipientID).First(&n).Error; err != nil {
		return nil, translate(err)
	}
	if n.IsRead {
		return &n, nil
	}
	if err := db.Model(&n).Where("is_read = ?", false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at}).Error; err != nil {
		return nil, err
	}
	n.IsRead = true
	n.ReadAt = &at
	return &n, nil
}

// MarkAllAsRead returns the number of notifications it changed
func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return res.RowsAffected, res.Error
}

func (r *postgresNotificationRepository) DeleteNotification(ctx context.Context, recipientID, notificationID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND recipient_id = ?", notificationID, recipientID).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
