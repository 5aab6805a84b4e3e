package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	ListPublicUsers(ctx context.Context, excludeID uint, page Page) ([]models.User, int64, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	SearchUsers(ctx context.Context, query string, excludeID uint, limit int) ([]models.User, error)
	FindByHandles(ctx context.Context, handles []string) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetUserByEmail looks the email up case-insensitively.
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// ListPublicUsers pages through active members with a public profile.
func (r *PostgresUserRepository) ListPublicUsers(ctx context.Context, excludeID uint, page Page) ([]models.User, int64, error) {
	var (
		users []models.User
		total int64
	)
	q := r.db.WithContext(ctx).Model(&models.User{}).
		Where("is_active = ? AND privacy_public_profile = ? AND id <> ?", true, true, excludeID).
		Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Scopes(page.apply).Order("created_at DESC").Find(&users).Error
	return users, total, err
}

// UpdateUser updates an existing user in PostgreSQL
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Save(user).Error)
}

func (r *PostgresUserRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).UpdateColumn("last_login", at).Error
}

// SearchUsers matches name, headline, position and industry (case-insensitive)
func (r *PostgresUserRepository) SearchUsers(ctx context.Context, query string, excludeID uint, limit int) ([]models.User, error) {
	var users []models.User
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND id <> ?", true, excludeID).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(headline) LIKE ? OR LOWER(current_position) LIKE ? OR LOWER(industry) LIKE ?",
			like, like, like, like, like).
		Order("id").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// FindByHandles resolves @mentions. A handle matches the local part of a
// member's email or their first name.
func (r *PostgresUserRepository) FindByHandles(ctx context.Context, handles []string) ([]models.User, error) {
	var users []models.User
	if len(handles) == 0 {
		return users, nil
	}
	cond := r.db
	for i, h := range handles {
		h = strings.ToLower(h)
		if i == 0 {
			cond = cond.Where("LOWER(email) LIKE ? OR LOWER(first_name) = ?", h+"@%", h)
		} else {
			cond = cond.Or("LOWER(email) LIKE ? OR LOWER(first_name) = ?", h+"@%", h)
		}
	}
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Where(cond).Find(&users).Error
	return users, err
}
