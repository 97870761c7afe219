package db

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"brandhub/internal/config/configs"
)

// NewRedisClient connects to the Redis server described by cfg and waits
// until it answers a PING. The caller must close the returned client.
func NewRedisClient(ctx context.Context, cfg configs.Redis, logger *slog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err := waitReady(ctx, "redis", cfg.ConnectTimeout, logger, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
