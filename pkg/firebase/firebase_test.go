package firebase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityFromClaims(t *testing.T) {
	id := identityFromClaims("uid-1", map[string]interface{}{
		"email":          "ada@example.com",
		"email_verified": true,
		"name":           "Ada Lovelace",
	})
	assert.Equal(t, &Identity{UID: "uid-1", Email: "ada@example.com", EmailVerified: true, DisplayName: "Ada Lovelace"}, id)

	bare := identityFromClaims("uid-2", map[string]interface{}{"email": 42})
	assert.Equal(t, &Identity{UID: "uid-2"}, bare)
}

func TestInitFirebaseMissingCredentials(t *testing.T) {
	_, err := InitFirebase(context.Background(), "")
	require.Error(t, err)

	_, err = InitFirebase(context.Background(), "/nonexistent/credentials.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
