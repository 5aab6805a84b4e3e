package repositories

import (
	"context"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// TokenBlacklist remembers revoked token ids until they expire.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const blacklistKeyPrefix = "blacklist:"

type redisTokenBlacklist struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisTokenBlacklist stores revoked ids as keys that expire with the token.
func NewRedisTokenBlacklist(client *redis.Client) TokenBlacklist {
	return &redisTokenBlacklist{client: client, now: time.Now}
}

func (b *redisTokenBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(b.now())
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, blacklistKeyPrefix+jti, "1", ttl).Err()
}

func (b *redisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type postgresTokenBlacklist struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPostgresTokenBlacklist is used when no Redis is configured.
func NewPostgresTokenBlacklist(db *gorm.DB) TokenBlacklist {
	return &postgresTokenBlacklist{db: db, now: time.Now}
}

func (b *postgresTokenBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if !expiresAt.After(b.now()) {
		return nil
	}
	_, err := insertIfAbsent(b.db.WithContext(ctx), &models.BlacklistedToken{JTI: jti, ExpiresAt: expiresAt})
	return err
}

func (b *postgresTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := b.db.WithContext(ctx).Model(&models.BlacklistedToken{}).
		Where("jti = ? AND expires_at > ?", jti, b.now()).
		Count(&count).Error
	return count > 0, err
}

// PurgeExpiredTokens drops blacklist rows whose tokens have expired.
func PurgeExpiredTokens(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.BlacklistedToken{})
	return res.RowsAffected, res.Error
}
