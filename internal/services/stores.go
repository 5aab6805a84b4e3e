package services

import (
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"gorm.io/gorm"
)

// Stores bundles the repositories the services are built on.
type Stores struct {
	Users         repositories.UserRepository
	Profiles      repositories.ProfileRepository
	Posts         repositories.PostRepository
	Comments      repositories.CommentRepository
	Hashtags      repositories.HashtagRepository
	Reactions     repositories.ReactionRepository
	Shares        repositories.ShareRepository
	SavedPosts    repositories.SavedPostRepository
	CommentLikes  repositories.CommentLikeRepository
	Reports       repositories.ReportRepository
	Views         repositories.ViewRepository
	Notifications repositories.NotificationRepository
	Connections   repositories.ConnectionRepository
	Follows       repositories.FollowRepository
	Blocks        repositories.BlockRepository
	FeedPrefs     repositories.FeedPreferenceRepository
	Companies     repositories.CompanyRepository
	Jobs          repositories.JobRepository
}

// NewPostgresStores builds every relational repository on one gorm handle.
func NewPostgresStores(db *gorm.DB) Stores {
	return Stores{
		Users:         repositories.NewPostgresUserRepository(db),
		Profiles:      repositories.NewPostgresProfileRepository(db),
		Posts:         repositories.NewPostgresPostRepository(db),
		Comments:      repositories.NewPostgresCommentRepository(db),
		Hashtags:      repositories.NewPostgresHashtagRepository(db),
		Reactions:     repositories.NewPostgresReactionRepository(db),
		Shares:        repositories.NewPostgresShareRepository(db),
		SavedPosts:    repositories.NewPostgresSavedPostRepository(db),
		CommentLikes:  repositories.NewPostgresCommentLikeRepository(db),
		Reports:       repositories.NewPostgresReportRepository(db),
		Views:         repositories.NewPostgresViewRepository(db),
		Notifications: repositories.NewPostgresNotificationRepository(db),
		Connections:   repositories.NewPostgresConnectionRepository(db),
		Follows:       repositories.NewPostgresFollowRepository(db),
		Blocks:        repositories.NewPostgresBlockRepository(db),
		FeedPrefs:     repositories.NewPostgresFeedPreferenceRepository(db),
		Companies:     repositories.NewPostgresCompanyRepository(db),
		Jobs:          repositories.NewPostgresJobRepository(db),
	}
}

// Clock is swapped out in tests.
type Clock func() time.Time
