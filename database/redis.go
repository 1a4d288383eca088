package database

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient initializes and returns a Redis client, or nil when no URL
// is configured. The product cache degrades to a no-op without Redis.
func NewRedisClient(redisURL string) *redis.Client {
	if redisURL == "" {
		zap.L().Info("REDIS_URL not set, product caching disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		zap.L().Warn("Invalid Redis URL, product caching disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		zap.L().Warn("Failed to connect to Redis, product caching disabled", zap.Error(err))
		return nil
	}

	zap.L().Info("Connected to Redis")
	return client
}
