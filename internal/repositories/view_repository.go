package repositories

import (
	"context"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

// ViewRepository counts post and job views, at most once per viewer per window.
type ViewRepository interface {
	RecordPostView(ctx context.Context, view *models.PostView, since time.Time) (bool, error)
	RecordJobView(ctx context.Context, view *models.JobView, since time.Time) (bool, error)
}

// PostgresViewRepository implements ViewRepository for PostgreSQL
type PostgresViewRepository struct {
	db *gorm.DB
}

func NewPostgresViewRepository(db *gorm.DB) *PostgresViewRepository {
	return &PostgresViewRepository{db: db}
}

// viewerKey matches earlier views by the same member, or by the same IP
// address for anonymous viewers.
func viewerKey(db *gorm.DB, userID *uint, ip string) *gorm.DB {
	if userID != nil {
		return db.Where("user_id = ?", *userID)
	}
	return db.Where("user_id IS NULL AND ip_address = ?", ip)
}

// RecordPostView inserts the view and bumps views_count unless the viewer
// already has a view on the post since the given time.
func (r *PostgresViewRepository) RecordPostView(ctx context.Context, view *models.PostView, since time.Time) (bool, error) {
	var counted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recent int64
		q := viewerKey(tx.Model(&models.PostView{}), view.UserID, view.IPAddress).
			Where("post_id = ? AND viewed_at >= ?", view.PostID, since)
		if err := q.Count(&recent).Error; err != nil {
			return err
		}
		if recent > 0 {
			return nil
		}
		if err := tx.Create(view).Error; err != nil {
			return err
		}
		counted = true
		return incrementColumn(tx, &models.Post{}, view.PostID, "views_count", 1)
	})
	return counted, translate(err)
}

// RecordJobView is RecordPostView for job postings.
func (r *PostgresViewRepository) RecordJobView(ctx context.Context, view *models.JobView, since time.Time) (bool, error) {
	var counted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recent int64
		q := viewerKey(tx.Model(&models.JobView{}), view.UserID, view.IPAddress).
			Where("job_id = ? AND viewed_at >= ?", view.JobID, since)
		if err := q.Count(&recent).Error; err != nil {
			return err
		}
		if recent > 0 {
			return nil
		}
		if err := tx.Create(view).Error; err != nil {
			return err
		}
		counted = true
		return incrementColumn(tx, &models.Job{}, view.JobID, "view_count", 1)
	})
	return counted, translate(err)
}
