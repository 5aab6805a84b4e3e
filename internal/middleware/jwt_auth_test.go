package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/anonto42/linkedin-clone/backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, mw echo.MiddlewareFunc, header string) (*models.JwtCustomClaims, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := echo.New().NewContext(req, httptest.NewRecorder())
	var seen *models.JwtCustomClaims
	err := mw(func(c echo.Context) error {
		seen, _ = c.Get(ClaimsKey).(*models.JwtCustomClaims)
		return nil
	})(c)
	return seen, err
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code
}

func TestJWTAuthMiddleware(t *testing.T) {
	db := testutil.NewDB(t)
	blacklist := repositories.NewPostgresTokenBlacklist(db)
	tokens := services.NewTokenIssuer("mw-secret", time.Hour, 24*time.Hour)
	pair, err := tokens.Issue(&models.User{ID: 5, Email: "mw@example.com"})
	require.NoError(t, err)
	required := JWTAuthMiddleware(tokens, blacklist)

	claims, err := run(t, required, "Bearer "+pair.Access)
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, uint(5), claims.UserID)

	_, err = run(t, required, "")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	_, err = run(t, required, "Token "+pair.Access)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	_, err = run(t, required, "Bearer "+pair.Refresh)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err), "refresh tokens are not access tokens")

	require.NoError(t, blacklist.Revoke(t.Context(), claims.ID, claims.ExpiresAt.Time))
	_, err = run(t, required, "Bearer "+pair.Access)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestOptionalJWTAuth(t *testing.T) {
	db := testutil.NewDB(t)
	tokens := services.NewTokenIssuer("mw-secret", time.Hour, 24*time.Hour)
	optional := OptionalJWTAuth(tokens, repositories.NewPostgresTokenBlacklist(db))

	claims, err := run(t, optional, "")
	require.NoError(t, err)
	assert.Nil(t, claims)

	_, err = run(t, optional, "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}
