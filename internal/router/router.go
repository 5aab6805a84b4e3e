package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/handlers"
	"github.com/anonto42/linkedin-clone/backend/internal/middleware"
	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/anonto42/linkedin-clone/backend/internal/validators"
	"github.com/anonto42/linkedin-clone/backend/pkg/logging"
	"github.com/anonto42/linkedin-clone/backend/pkg/metrics"
	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Deps are the connections and collaborators the routes are built on.
type Deps struct {
	Postgres *gorm.DB
	// Activity is nil when no MongoDB is configured.
	Activity  repositories.ActivityRepository
	Blacklist repositories.TokenBlacklist
	Tokens    *services.TokenIssuer
	// Verifier is nil when Firebase is not configured.
	Verifier      services.IDTokenVerifier
	HealthChecks  map[string]handlers.Pinger
	AuthPerMinute int
}

// Services exposes what the background jobs in main need.
type Services struct {
	Content *services.ContentService
}

// Migrate creates or updates every relational table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.Relational()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logging.Info().Msg("PostgreSQL auto-migrations completed for all models")
	return nil
}

// authRateLimit limits the unauthenticated auth endpoints per client IP.
func authRateLimit(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echo.WrapMiddleware(httprate.Limit(
		perMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"success":false,"error":"Too many requests"}`))
		}),
	))
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) *Services {
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	e.Validator = validators.NewValidator()

	e.GET("/health", handlers.NewHealthHandler(deps.HealthChecks).HealthCheck)

	// --- Services ---
	stores := services.NewPostgresStores(deps.Postgres)
	activity := services.NewActivityLog(deps.Activity)
	notifier := services.NewNotifier(stores.Notifications, stores.Users)
	visibility := services.NewVisibility(stores.Posts, stores.Connections)

	accounts := services.NewAccountService(stores, deps.Tokens, deps.Blacklist, deps.Verifier, activity)
	profiles := services.NewProfileService(stores, notifier, activity)
	content := services.NewContentService(stores, visibility, notifier, activity)
	engagement := services.NewEngagementService(stores, visibility, notifier, activity)
	connections := services.NewConnectionService(stores, notifier, activity)
	feed := services.NewFeedService(stores)
	companies := services.NewCompanyService(stores, activity)
	jobs := services.NewJobService(stores, notifier, activity)

	mw := handlers.Guards{
		Required: middleware.JWTAuthMiddleware(deps.Tokens, deps.Blacklist),
		Optional: middleware.OptionalJWTAuth(deps.Tokens, deps.Blacklist),
	}

	// --- Authentication (rate limited per IP) ---
	authGroup := e.Group("/api/v1/auth", authRateLimit(deps.AuthPerMinute))
	handlers.NewAuthHandler(accounts).RegisterAuthRoutes(authGroup, mw)

	// --- API; each route picks its own guard ---
	api := e.Group("/api/v1")
	handlers.NewUserHandler(accounts, profiles).RegisterProfileRoutes(api, mw)
	handlers.NewFollowHandler(connections).RegisterFollowRoutes(api, mw)
	handlers.NewConnectionHandler(connections).RegisterConnectionRoutes(api, mw)
	handlers.NewPostHandler(content, engagement).RegisterPostRoutes(api, mw)
	handlers.NewCommentHandler(content).RegisterCommentRoutes(api, mw)
	handlers.NewEngagementHandler(engagement).RegisterEngagementRoutes(api, mw)
	handlers.NewSavedPostHandler(engagement, feed).RegisterSavedPostRoutes(api, mw)
	handlers.NewFeedHandler(feed).RegisterFeedRoutes(api, mw)
	handlers.NewHashtagHandler(content).RegisterHashtagRoutes(api, mw)
	handlers.NewNotificationHandler(notifier).RegisterNotificationRoutes(api, mw)
	handlers.NewCompanyHandler(companies).RegisterCompanyRoutes(api, mw)
	handlers.NewJobHandler(jobs).RegisterJobRoutes(api, mw)
	handlers.NewAnalyticsHandler(activity).RegisterAnalyticsRoutes(api, mw)

	logging.Info().Int("routes", len(e.Routes())).Msg("All routes configured")
	return &Services{Content: content}
}
