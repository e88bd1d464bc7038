package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedis creates the Redis client used as the wishlist's backing store.
// An unreachable server is logged but not fatal: wishlist operations degrade
// to memory-only until the store comes back, so the connection is only
// probed, never required.
func NewRedis(addr string, db int, logger *logrus.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnf("Redis not reachable at %s, starting in memory-only mode: %v", addr, err)
	} else {
		logger.Infof("Connected to Redis at %s (db %d)", addr, db)
	}

	return client
}
