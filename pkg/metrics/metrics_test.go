package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/test", "200"))
	RecordAPIRequest("GET", "/api/v1/test", "200", 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/test", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordEngagement(t *testing.T) {
	before := testutil.ToFloat64(EngagementEvents.WithLabelValues("react", "liked"))
	RecordEngagement("react", "liked")
	assert.Equal(t, before+1, testutil.ToFloat64(EngagementEvents.WithLabelValues("react", "liked")))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/posts/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	})

	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/posts/:id", "404"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/42", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/posts/:id", "404")))
	assert.Zero(t, testutil.ToFloat64(APIActiveRequests))
}
