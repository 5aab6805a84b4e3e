package repositories

import (
	"context"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

type ReportRepository interface {
	CreateReport(ctx context.Context, report *models.Report) (models.Upsert[*models.Report], error)
}

// PostgresReportRepository implements ReportRepository for PostgreSQL
type PostgresReportRepository struct {
	db *gorm.DB
}

func NewPostgresReportRepository(db *gorm.DB) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

// CreateReport files one report per reporter and target. Once a target has
// models.ReportThreshold reports it is flagged as reported.
func (r *PostgresReportRepository) CreateReport(ctx context.Context, report *models.Report) (models.Upsert[*models.Report], error) {
	res := models.Upsert[*models.Report]{Value: report}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := insertIfAbsent(tx, report)
		if err != nil {
			return err
		}
		if !created {
			existing := &models.Report{}
			if err := tx.Where("reporter_id = ? AND post_id = ? AND comment_id = ?",
				report.ReporterID, report.PostID, report.CommentID).First(existing).Error; err != nil {
				return err
			}
			res.Value = existing
			return nil
		}
		res.Created = true

		var count int64
		if err := tx.Model(&models.Report{}).
			Where("post_id = ? AND comment_id = ?", report.PostID, report.CommentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count < models.ReportThreshold {
			return nil
		}
		if report.CommentID != 0 {
			return tx.Model(&models.Comment{}).Where("id = ?", report.CommentID).UpdateColumn("is_reported", true).Error
		}
		return tx.Model(&models.Post{}).Where("id = ?", report.PostID).UpdateColumn("is_reported", true).Error
	})
	return res, translate(err)
}
