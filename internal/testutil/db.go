// Package testutil opens throw-away databases for repository, service and
// handler tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
// A single connection keeps the shared-cache database alive and serializes
// transactions.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.Relational()...))
	return db
}

// CreateUser inserts an active member with public privacy settings.
func CreateUser(t testing.TB, db *gorm.DB, first, last string) *models.User {
	t.Helper()
	u := models.NewUser(fmt.Sprintf("%s.%s.%s@example.com", first, last, uuid.NewString()[:8]), first, last)
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreatePost inserts an approved text post.
func CreatePost(t testing.TB, db *gorm.DB, authorID uint, visibility models.Visibility) *models.Post {
	t.Helper()
	p := &models.Post{
		AuthorID:   authorID,
		Content:    "post by " + fmt.Sprint(authorID),
		PostType:   models.PostTypeText,
		Visibility: visibility,
		IsApproved: true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// Connect stores an accepted connection between a and b.
func Connect(t testing.TB, db *gorm.DB, a, b uint) *models.Connection {
	t.Helper()
	c := models.NewConnection(a, b, nil)
	require.NoError(t, db.Create(c).Error)
	return c
}
