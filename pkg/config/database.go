package config

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/linkedin-clone/backend/pkg/logging"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectTimeout = 10 * time.Second

// DB holds the database connections. Mongo and Redis are nil when not
// configured.
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
	Redis    *redis.Client
}

// InitDB connects to PostgreSQL and to whichever of Mongo and Redis the
// config names.
func InitDB(cfg *Config) (*DB, error) {
	postgresDB, err := initPostgres(cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	db := &DB{Postgres: postgresDB}

	if cfg.Mongo.URI != "" {
		if db.Mongo, err = initMongo(cfg.Mongo.URI); err != nil {
			db.CloseDB()
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
	}
	if cfg.Redis.Addr != "" {
		if db.Redis, err = initRedis(cfg.Redis); err != nil {
			db.CloseDB()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
	}
	return db, nil
}

// initPostgres initializes the PostgreSQL database connection using GORM
func initPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	logging.Info().Msg("Successfully connected to PostgreSQL")
	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logging.Info().Msg("Successfully connected to MongoDB")
	return client, nil
}

func initRedis(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	logging.Info().Str("addr", cfg.Addr).Msg("Successfully connected to Redis")
	return client, nil
}

// PingPostgres, PingMongo and PingRedis back the health endpoint.
func (db *DB) PingPostgres(ctx context.Context) error {
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (db *DB) PingMongo(ctx context.Context) error {
	return db.Mongo.Ping(ctx, nil)
}

func (db *DB) PingRedis(ctx context.Context) error {
	return db.Redis.Ping(ctx).Err()
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			logging.Err(err).Msg("Error getting SQL DB from GORM")
		} else if err := sqlDB.Close(); err != nil {
			logging.Err(err).Msg("Error closing PostgreSQL connection")
		} else {
			logging.Info().Msg("PostgreSQL connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			logging.Err(err).Msg("Error closing MongoDB connection")
		} else {
			logging.Info().Msg("MongoDB connection closed")
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			logging.Err(err).Msg("Error closing Redis connection")
		} else {
			logging.Info().Msg("Redis connection closed")
		}
	}
}
