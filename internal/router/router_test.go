package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/anonto42/linkedin-clone/backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t *testing.T
	e *echo.Echo
}

func newServer(t *testing.T, authPerMinute int) *client {
	db := testutil.NewDB(t)
	e := echo.New()
	SetupRoutes(e, Deps{
		Postgres:      db,
		Blacklist:     repositories.NewPostgresTokenBlacklist(db),
		Tokens:        services.NewTokenIssuer("router-test", time.Hour, 24*time.Hour),
		AuthPerMinute: authPerMinute,
	})
	return &client{t: t, e: e}
}

// do sends a JSON request and decodes the JSON response into out when given.
func (c *client) do(method, path, token string, body interface{}, out interface{}) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

type session struct {
	Data struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
		Tokens struct {
			Access  string `json:"access"`
			Refresh string `json:"refresh"`
		} `json:"tokens"`
	} `json:"data"`
}

func (c *client) register(first string) session {
	c.t.Helper()
	var s session
	status := c.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":      first + "@example.com",
		"password":   "s3cret-pass",
		"first_name": first,
		"last_name":  "Router",
	}, &s)
	require.Equal(c.t, http.StatusCreated, status)
	return s
}

func TestHealthWithoutDependencies(t *testing.T) {
	c := newServer(t, 0)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", "", nil, nil))
}

func TestRegisterValidation(t *testing.T) {
	c := newServer(t, 0)
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	status := c.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "nope"}, &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", body.Error)
	assert.Contains(t, body.Fields, "email")
	assert.Contains(t, body.Fields, "password")
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	c := newServer(t, 0)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/feed", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/feed", "garbage", nil, nil))
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/posts", "", nil, nil), "optional auth")
}

func TestPostReactNotifyFlow(t *testing.T) {
	c := newServer(t, 0)
	ada := c.register("ada")
	bob := c.register("bob")

	var created struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	status := c.do(http.MethodPost, "/api/v1/posts", ada.Data.Tokens.Access, map[string]string{
		"content": "Hello #golang",
	}, &created)
	require.Equal(t, http.StatusCreated, status)

	var reacted struct {
		Data struct {
			Status     string `json:"status"`
			LikesCount int64  `json:"likes_count"`
		} `json:"data"`
	}
	status = c.do(http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/react", created.Data.ID), bob.Data.Tokens.Access,
		map[string]string{"reaction_type": "celebrate"}, &reacted)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "liked", reacted.Data.Status)
	assert.EqualValues(t, 1, reacted.Data.LikesCount)

	var unread struct {
		Data struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/notifications/unread-count", ada.Data.Tokens.Access, nil, &unread))
	assert.EqualValues(t, 1, unread.Data.Count)

	var feed struct {
		Data struct {
			Posts []struct {
				ID               uint   `json:"id"`
				UserReactionType string `json:"user_reaction_type"`
			} `json:"posts"`
		} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/feed", bob.Data.Tokens.Access, nil, &feed))
	require.Len(t, feed.Data.Posts, 1)
	assert.Equal(t, created.Data.ID, feed.Data.Posts[0].ID)
	assert.Equal(t, "celebrate", feed.Data.Posts[0].UserReactionType)
	assert.EqualValues(t, 1, feed.Meta["totalItems"])

	var reactions struct {
		Data struct {
			Reactions []struct {
				Kind string `json:"reaction_type"`
			} `json:"reactions"`
			Counts map[string]int64 `json:"counts"`
		} `json:"data"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, fmt.Sprintf("/api/v1/posts/%d/reactions", created.Data.ID), "", nil, &reactions))
	require.Len(t, reactions.Data.Reactions, 1)
	assert.EqualValues(t, 1, reactions.Data.Counts["celebrate"])
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	c := newServer(t, 0)
	ada := c.register("ada")
	token := ada.Data.Tokens.Access

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/notifications", token, nil, nil))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/auth/logout", token,
		map[string]string{"refresh": ada.Data.Tokens.Refresh}, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/notifications", token, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/v1/auth/refresh", "",
		map[string]string{"refresh": ada.Data.Tokens.Refresh}, nil))
}

func TestAuthRateLimit(t *testing.T) {
	c := newServer(t, 2)
	login := map[string]string{"email": "nobody@example.com", "password": "whatever"}
	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/v1/auth/login", "", login, nil))
	}
	assert.Equal(t, http.StatusTooManyRequests, c.do(http.MethodPost, "/api/v1/auth/login", "", login, nil))
}
