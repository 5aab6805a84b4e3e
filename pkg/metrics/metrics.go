// Package metrics holds the Prometheus instrumentation for the API and the
// domain events behind it.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Domain Metrics
	PostsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total number of posts published",
		},
		[]string{"post_type", "visibility"},
	)

	EngagementEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_events_total",
			Help: "Engagement actions by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	NotificationsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_emitted_total",
			Help: "Notifications stored, by type",
		},
		[]string{"type"},
	)

	NotificationsSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_suppressed_total",
			Help: "Notifications dropped by the dedup window, by type",
		},
		[]string{"type"},
	)

	ConnectionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "connection_events_total",
			Help: "Connection request transitions",
		},
		[]string{"event"},
	)

	FeedRankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_rank_duration_seconds",
			Help:    "Time spent scoring ranked feed candidates",
			Buckets: prometheus.DefBuckets,
		},
	)

	TrendingHashtags = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trending_hashtags",
			Help: "Hashtags flagged trending by the last refresh",
		},
	)

	AuthEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Authentication events by kind and result",
		},
		[]string{"event", "result"},
	)

	ActivityTrackFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_track_failures_total",
			Help: "Activity log writes that failed",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordEngagement counts one engagement action.
func RecordEngagement(action, outcome string) {
	EngagementEvents.WithLabelValues(action, outcome).Inc()
}

// Middleware records request count, latency and in-flight requests. The
// endpoint label is the route pattern so path ids do not explode cardinality.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			APIActiveRequests.Inc()
			defer APIActiveRequests.Dec()

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			endpoint := c.Path()
			if endpoint == "" {
				endpoint = "unmatched"
			}
			RecordAPIRequest(c.Request().Method, endpoint, strconv.Itoa(status), time.Since(start))
			return err
		}
	}
}
