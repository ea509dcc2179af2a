// Package bootstrap wires the process-wide runtime shared by the commands.
package bootstrap

import (
	"context"
	"fmt"

	"hackswipe/internal/cache"
	"hackswipe/internal/config"
	"hackswipe/internal/database"
	"hackswipe/internal/middleware"
	"hackswipe/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// LoadDemo inserts the demo accounts on startup. Ignored in production.
	LoadDemo bool
}

// InitRuntime connects to DB and Redis and optionally loads demo data.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// nil when Redis is unreachable
	rdb := cache.InitRedis(cfg.RedisURL)

	if opts.LoadDemo {
		if cfg.IsProduction() {
			middleware.Logger.Warn("skipping demo data in production")
		} else if _, err := seed.LoadDemo(ctx, db); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("failed to load demo data: %w", err)
		}
	}

	return db, rdb, nil
}

// Close releases what InitRuntime opened.
func Close(db *gorm.DB, rdb *redis.Client) {
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			middleware.Logger.Warn("redis close failed", "error", err)
		}
	}
	if err := database.Close(db); err != nil {
		middleware.Logger.Warn("database close failed", "error", err)
	}
}
