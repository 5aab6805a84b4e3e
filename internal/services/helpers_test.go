package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// env wires the services on a private SQLite database with a shared clock.
type env struct {
	db          *gorm.DB
	stores      Stores
	clock       *fakeClock
	notifier    *Notifier
	visibility  *Visibility
	content     *ContentService
	engagement  *EngagementService
	connections *ConnectionService
	feed        *FeedService
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	stores := NewPostgresStores(db)
	clock := &fakeClock{t: time.Now()}
	e := &env{db: db, stores: stores, clock: clock}

	e.notifier = NewNotifier(stores.Notifications, stores.Users)
	e.notifier.now = clock.Now
	e.visibility = NewVisibility(stores.Posts, stores.Connections)
	activity := NewActivityLog(nil)

	e.content = NewContentService(stores, e.visibility, e.notifier, activity)
	e.content.now = clock.Now
	e.engagement = NewEngagementService(stores, e.visibility, e.notifier, activity)
	e.engagement.now = clock.Now
	e.connections = NewConnectionService(stores, e.notifier, activity)
	e.connections.now = clock.Now
	e.feed = NewFeedService(stores)
	e.feed.now = clock.Now
	return e
}

func (e *env) user(t *testing.T, first string) *models.User {
	return testutil.CreateUser(t, e.db, first, "Tester")
}

func (e *env) notifications(t *testing.T, recipient uint, kind models.NotificationType) []models.Notification {
	t.Helper()
	var out []models.Notification
	require.NoError(t, e.db.Where("recipient_id = ? AND notification_type = ?", recipient, kind).Find(&out).Error)
	return out
}

func (e *env) post(t *testing.T, author uint, visibility models.Visibility, content string) *models.Post {
	t.Helper()
	p, err := e.content.CreatePost(context.Background(), author, models.CreatePostRequest{
		Content:    content,
		Visibility: string(visibility),
	})
	require.NoError(t, err)
	return p
}

var pageOne = repositories.Page{Number: 1, Limit: 20}

func (e *env) connectUsers(t *testing.T, a, b uint) {
	t.Helper()
	testutil.Connect(t, e.db, a, b)
}
