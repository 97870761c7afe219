// Package rediscache implements port.ViewCache on Redis. Every path has a
// version counter; cached bodies are stored under the current version and
// invalidation bumps the counter so older entries are never read again and
// expire on their own.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"brandhub/internal/core/port"
)

const (
	keyVersion = "views:ver:%s"
	keyView    = "views:%s:v%d:%s"
)

// ViewCache is a Redis backed port.ViewCache.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ port.ViewCache = (*ViewCache)(nil)

// New returns a cache storing views for ttl.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ViewCache {
	return &ViewCache{client: client, ttl: ttl, logger: logger}
}

// Invalidate bumps the version of each path. Failures are logged and
// otherwise ignored.
func (c *ViewCache) Invalidate(ctx context.Context, paths ...string) {
	if len(paths) == 0 {
		return
	}
	pipe := c.client.Pipeline()
	for _, p := range paths {
		pipe.Incr(ctx, fmt.Sprintf(keyVersion, p))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("view invalidation failed", slog.Any("paths", paths), slog.Any("error", err))
	}
}

// Load returns the body cached for the current version of path together
// with that version. Callers pass the version back to Store. The version is
// -1 when it could not be read.
func (c *ViewCache) Load(ctx context.Context, path, variant string) ([]byte, int64, bool) {
	ver, err := c.version(ctx, path)
	if err != nil {
		c.logger.Warn("view version lookup failed", slog.String("path", path), slog.Any("error", err))
		return nil, -1, false
	}
	body, err := c.client.Get(ctx, fmt.Sprintf(keyView, path, ver, variant)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ver, false
	}
	if err != nil {
		c.logger.Warn("view load failed", slog.String("path", path), slog.Any("error", err))
		return nil, ver, false
	}
	return body, ver, true
}

// Store caches body under version, the path version observed by Load
// before the body was rendered. If the path was invalidated in between the
// entry lands under a stale key and is never read.
func (c *ViewCache) Store(ctx context.Context, path, variant string, version int64, body []byte) {
	if version < 0 {
		return
	}
	err := c.client.Set(ctx, fmt.Sprintf(keyView, path, version, variant), body, c.ttl).Err()
	if err != nil {
		c.logger.Warn("view store failed", slog.String("path", path), slog.Any("error", err))
	}
}

func (c *ViewCache) version(ctx context.Context, path string) (int64, error) {
	ver, err := c.client.Get(ctx, fmt.Sprintf(keyVersion, path)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return ver, err
}

// Noop is a port.ViewCache that never caches. It is used when no Redis
// server is configured.
type Noop struct{}

var _ port.ViewCache = Noop{}

func (Noop) Invalidate(context.Context, ...string) {}
func (Noop) Load(context.Context, string, string) ([]byte, int64, bool) { return nil, 0, false }
func (Noop) Store(context.Context, string, string, int64, []byte) {}
