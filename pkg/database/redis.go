package database

import (
	"context"
	"fmt"
	"time"

	"masomo_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects and verifies the connection with a bounded ping. The
// caller decides whether a failure is fatal; the app runs degraded without
// Redis (leaderboard and friend-cache fall back to the database).
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
