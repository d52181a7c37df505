package config

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"apartium-backend/cache"
	"apartium-backend/utils"
)

// NewCacheStore returns a Redis-backed store when REDIS_URL is set and
// reachable, and an in-process store otherwise.
func NewCacheStore(cfg *Config) cache.Store {
	if cfg.RedisURL == "" {
		utils.Logger.Info("REDIS_URL not set, using in-memory query cache")
		return cache.NewMemoryStore(cfg.CacheTTL)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		utils.Logger.Warnf("Invalid REDIS_URL, using in-memory query cache: %v", err)
		return cache.NewMemoryStore(cfg.CacheTTL)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		utils.Logger.Warnf("Redis unreachable, using in-memory query cache: %v", err)
		_ = client.Close()
		return cache.NewMemoryStore(cfg.CacheTTL)
	}

	utils.Logger.Infof("Query cache backed by redis at %s", opts.Addr)
	return cache.NewRedisStore(client, cfg.AppName)
}
