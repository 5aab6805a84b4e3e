package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/anonto42/linkedin-clone/backend/internal/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec), rec
}

func TestPagination(t *testing.T) {
	tests := []struct {
		query string
		want  repositories.Page
	}{
		{"", repositories.Page{Number: 1, Limit: 10}},
		{"?page=3&limit=25", repositories.Page{Number: 3, Limit: 25}},
		{"?page=-2&limit=500", repositories.Page{Number: 1, Limit: 10}},
		{"?page=x&limit=0", repositories.Page{Number: 1, Limit: 10}},
	}
	for _, tt := range tests {
		c, _ := newContext("/posts" + tt.query)
		assert.Equal(t, tt.want, pagination(c, defaultPageSize, maxPageSize), tt.query)
	}
}

func TestPageMeta(t *testing.T) {
	meta := pageMeta(repositories.Page{Number: 2, Limit: 10}, 25)
	assert.Equal(t, 3, meta["totalPages"])
	assert.Equal(t, true, meta["hasNextPage"])
	assert.Equal(t, true, meta["hasPreviousPage"])

	meta = pageMeta(repositories.Page{Number: 1, Limit: 10}, 0)
	assert.Equal(t, 0, meta["totalPages"])
	assert.Equal(t, false, meta["hasNextPage"])
}

func TestParseID(t *testing.T) {
	c, _ := newContext("/posts/7")
	c.SetParamNames("id")
	c.SetParamValues("7")
	id, err := parseID(c, "id", "post")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		c.SetParamValues(bad)
		_, err := parseID(c, "id", "post")
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr, bad)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		assert.Equal(t, "Invalid post ID", httpErr.Message)
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	c, _ := newContext("/")
	c.Request().Header.Set(echo.HeaderXForwardedFor, "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(c))
}

func TestStatusAndBody(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", &services.Error{Kind: services.KindValidation, Message: "bad"}, http.StatusBadRequest, "bad"},
		{"unauthorized", &services.Error{Kind: services.KindUnauthorized, Message: "who"}, http.StatusUnauthorized, "who"},
		{"forbidden", &services.Error{Kind: services.KindForbidden, Message: "no"}, http.StatusForbidden, "no"},
		{"not found", &services.Error{Kind: services.KindNotFound, Message: "gone"}, http.StatusNotFound, "gone"},
		{"conflict", &services.Error{Kind: services.KindConflict, Message: "twice"}, http.StatusBadRequest, "twice"},
		{"unavailable", &services.Error{Kind: services.KindUnavailable, Message: "off"}, http.StatusServiceUnavailable, "off"},
		{"http", echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot, "short and stout"},
		{"unknown", errors.New("db exploded"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := statusAndBody(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, body["error"])
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestHTTPErrorHandlerRendersFields(t *testing.T) {
	c, rec := newContext("/")
	HTTPErrorHandler(validators.FieldErrors{"email": "Enter a valid email address"}, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Success bool              `json:"success"`
		Error   string            `json:"error"`
		Fields  map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Validation failed", body.Error)
	assert.Equal(t, "Enter a valid email address", body.Fields["email"])
}

func TestHealthCheck(t *testing.T) {
	c, rec := newContext("/health")
	h := NewHealthHandler(map[string]Pinger{
		"postgres": func(context.Context) error { return nil },
	})
	require.NoError(t, h.HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"postgres":"up"`)

	c, rec = newContext("/health")
	h = NewHealthHandler(map[string]Pinger{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})
	require.NoError(t, h.HealthCheck(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
	assert.Contains(t, rec.Body.String(), `"redis":"down: connection refused"`)
}
