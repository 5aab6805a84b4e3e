package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresTokenBlacklist(t *testing.T) {
	db := testutil.NewDB(t)
	bl := repositories.NewPostgresTokenBlacklist(db)
	ctx := context.Background()

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "already-expired", time.Now().Add(-time.Minute)))
	revoked, err = bl.IsRevoked(ctx, "already-expired")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, db.Create(&models.BlacklistedToken{JTI: "stale", ExpiresAt: time.Now().Add(-time.Hour)}).Error)
	purged, err := repositories.PurgeExpiredTokens(ctx, db, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)
}
