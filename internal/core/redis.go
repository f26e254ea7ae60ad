// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/templates/storefront/internal/config"
)

// Redis backs the request rate limiter only. Nothing else depends on it,
// so an unreachable server degrades limiting to per-process buckets.
type Redis struct {
	Client *redis.Client
}

// OpenRedis builds the client without dialing. Connections are made on
// first use.
func OpenRedis(cfg config.RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.PoolTimeout = 5 * time.Second
	opts.ConnMaxIdleTime = 5 * time.Minute
	opts.DialTimeout = 2 * time.Second

	return &Redis{Client: redis.NewClient(opts)}, nil
}

func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := r.Client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}

func (r *Redis) PoolStats() *redis.PoolStats {
	return r.Client.PoolStats()
}
