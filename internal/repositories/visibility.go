package repositories

import (
	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

const connectedAuthors = "posts.author_id IN (SELECT user2_id FROM connections WHERE user1_id = ?) " +
	"OR posts.author_id IN (SELECT user1_id FROM connections WHERE user2_id = ?)"

// VisibleTo restricts a posts query to the approved rows viewer may see:
// public posts, the viewer's own posts, and connections-only posts of
// connected authors. A nil viewer only sees public posts.
func VisibleTo(viewer *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewer == nil {
			return db.Where("posts.is_approved = ? AND posts.visibility = ?", true, models.VisibilityPublic)
		}
		id := *viewer
		return db.Where(
			"posts.is_approved = ? AND (posts.author_id = ? OR posts.visibility = ? OR (posts.visibility = ? AND ("+connectedAuthors+")))",
			true, id, models.VisibilityPublic, models.VisibilityConnections, id, id,
		)
	}
}
