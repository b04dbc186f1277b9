// Package bootstrap wires the process-wide runtime: database, schema and Redis.
package bootstrap

import (
	"context"
	"fmt"

	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/database"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// ApplySchema runs database.ApplySchema after connecting.
	ApplySchema bool
}

// InitRuntime connects to the database and Redis. The Redis client is nil
// when REDIS_URL is empty or the server cannot be reached.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if opts.ApplySchema {
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)

	return db, cache.GetClient(), nil
}
