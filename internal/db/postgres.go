package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"brandhub/internal/config/configs"
)

// NewPostgresPool creates a new pgxpool.Pool with the provided configuration.
// The database is pinged with exponential backoff until it answers or
// cfg.ConnectTimeout elapses, so the service can start alongside its
// database. If it never answers, the pool is closed and the last error is
// returned. The caller must close the returned pool.
func NewPostgresPool(ctx context.Context, cfg configs.Postgres, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConf, err := pgxpool.ParseConfig(cfg.Addr.String())
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		poolConf.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConf)
	if err != nil {
		return nil, err
	}

	err = waitReady(ctx, "postgres", cfg.ConnectTimeout, logger, pool.Ping)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// waitReady calls ping with a 5 second timeout per attempt, retrying with
// exponential backoff for at most maxElapsed.
func waitReady(ctx context.Context, name string, maxElapsed time.Duration, logger *slog.Logger, ping func(context.Context) error) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return struct{}{}, ping(ctxPing)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(maxElapsed),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warn("dependency not ready",
				slog.String("dependency", name),
				slog.Duration("retry_in", next),
				slog.Any("error", err))
		}),
	)
	return err
}
