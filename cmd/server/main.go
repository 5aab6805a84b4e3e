package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/handlers"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/anonto42/linkedin-clone/backend/internal/router"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/anonto42/linkedin-clone/backend/pkg/config"
	"github.com/anonto42/linkedin-clone/backend/pkg/firebase"
	"github.com/anonto42/linkedin-clone/backend/pkg/logging"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	shutdownTimeout         = 10 * time.Second
	trendingRefreshInterval = 15 * time.Minute
	tokenPurgeInterval      = time.Hour
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Timestamp: true})

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize databases")
	}
	defer db.CloseDB()

	if err := router.Migrate(db.Postgres); err != nil {
		logging.Fatal().Err(err).Msg("Failed to migrate database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := router.Deps{
		Postgres:      db.Postgres,
		Tokens:        services.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL),
		AuthPerMinute: cfg.RateLimit.AuthPerMinute,
		HealthChecks:  map[string]handlers.Pinger{"postgres": db.PingPostgres},
	}

	// Initialize Firebase (optional)
	if cfg.Firebase.CredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.Firebase.CredentialsPath)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize Firebase")
		}
		deps.Verifier = firebaseApp
	} else {
		logging.Warn().Msg("Firebase not configured; Firebase login disabled")
	}

	if db.Redis != nil {
		deps.Blacklist = repositories.NewRedisTokenBlacklist(db.Redis)
		deps.HealthChecks["redis"] = db.PingRedis
	} else {
		deps.Blacklist = repositories.NewPostgresTokenBlacklist(db.Postgres)
		go runEvery(ctx, tokenPurgeInterval, "purge expired tokens", func(ctx context.Context) (int64, error) {
			return repositories.PurgeExpiredTokens(ctx, db.Postgres, time.Now())
		})
	}

	if db.Mongo != nil {
		mongoDB := db.Mongo.Database(cfg.Mongo.Database)
		if err := repositories.EnsureActivityIndexes(ctx, mongoDB); err != nil {
			logging.Warn().Err(err).Msg("Could not create activity indexes")
		}
		deps.Activity = repositories.NewMongoActivityRepository(mongoDB)
		deps.HealthChecks["mongo"] = db.PingMongo
	} else {
		logging.Warn().Msg("MongoDB not configured; activity analytics disabled")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	cfg.Server.Apply(e.Server)

	config.SetupMiddleware(e, cfg)
	svc := router.SetupRoutes(e, deps)

	go runEvery(ctx, trendingRefreshInterval, "refresh trending hashtags", svc.Content.RefreshTrending)

	metricsServer := &http.Server{Addr: ":" + cfg.Metrics.Port, Handler: promhttp.Handler()}
	cfg.Server.Apply(metricsServer)
	go func() {
		logging.Info().Str("port", cfg.Metrics.Port).Msg("Metrics server starting")
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Err(err).Msg("Metrics server failed")
		}
	}()

	go func() {
		logging.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Err(err).Msg("Server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logging.Err(err).Msg("Server shutdown failed")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logging.Err(err).Msg("Metrics server shutdown failed")
	}
}

// runEvery runs job once at start and then on every tick until ctx ends.
func runEvery(ctx context.Context, interval time.Duration, name string, job func(context.Context) (int64, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		n, err := job(ctx)
		if err != nil && ctx.Err() == nil {
			logging.Warn().Err(err).Str("job", name).Msg("Background job failed")
		} else {
			logging.Debug().Int64("affected", n).Str("job", name).Msg("Background job done")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
