package rediscache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*ViewCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(client, time.Minute, logger), mr
}

// store fills the cache the way a GET handler does: look up, then store
// under the version seen by the lookup.
func store(ctx context.Context, c *ViewCache, path, variant string, body []byte) {
	_, ver, _ := c.Load(ctx, path, variant)
	c.Store(ctx, path, variant, ver, body)
}

func TestViewCache_StoreAndLoad(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCache(t)

	_, ver, ok := c.Load(ctx, "/campaigns", "user-1")
	assert.False(t, ok)
	assert.Zero(t, ver)

	c.Store(ctx, "/campaigns", "user-1", ver, []byte(`{"success":true}`))
	body, _, ok := c.Load(ctx, "/campaigns", "user-1")
	require.True(t, ok)
	assert.JSONEq(t, `{"success":true}`, string(body))

	_, _, ok = c.Load(ctx, "/campaigns", "user-2")
	assert.False(t, ok, "variants are cached separately")
}

func TestViewCache_InvalidateBumpsVersion(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	store(ctx, c, "/campaigns", "u", []byte("list"))
	store(ctx, c, "/campaigns/c1", "u", []byte("detail"))
	store(ctx, c, "/campaigns/c2", "u", []byte("other"))

	c.Invalidate(ctx, "/campaigns", "/campaigns/c1")

	_, ver, ok := c.Load(ctx, "/campaigns", "u")
	assert.False(t, ok)
	assert.Equal(t, int64(1), ver)
	_, _, ok = c.Load(ctx, "/campaigns/c1", "u")
	assert.False(t, ok)
	body, _, ok := c.Load(ctx, "/campaigns/c2", "u")
	require.True(t, ok)
	assert.Equal(t, "other", string(body))

	v, err := mr.Get("views:ver:/campaigns")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

// TestViewCache_WriteDuringRenderIsNotServed covers a write landing between
// a miss and the store of the body rendered for that miss.
func TestViewCache_WriteDuringRenderIsNotServed(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCache(t)

	_, ver, ok := c.Load(ctx, "/campaigns/c1", "u")
	require.False(t, ok)

	c.Invalidate(ctx, "/campaigns/c1")
	c.Store(ctx, "/campaigns/c1", "u", ver, []byte(`{"status":"DRAFT"}`))

	_, _, ok = c.Load(ctx, "/campaigns/c1", "u")
	assert.False(t, ok, "a body rendered before the write must not be served after it")

	store(ctx, c, "/campaigns/c1", "u", []byte(`{"status":"PUBLISHED"}`))
	body, _, ok := c.Load(ctx, "/campaigns/c1", "u")
	require.True(t, ok)
	assert.JSONEq(t, `{"status":"PUBLISHED"}`, string(body))
}

func TestViewCache_EntriesExpire(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	store(ctx, c, "/campaigns", "u", []byte("list"))
	mr.FastForward(2 * time.Minute)

	_, _, ok := c.Load(ctx, "/campaigns", "u")
	assert.False(t, ok)
}

func TestViewCache_ServerDownDegrades(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	c := New(client, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mr.Close()

	_, ver, ok := c.Load(ctx, "/campaigns", "u")
	assert.False(t, ok)
	assert.Equal(t, int64(-1), ver)
	assert.NotPanics(t, func() {
		c.Invalidate(ctx, "/campaigns")
		c.Store(ctx, "/campaigns", "u", ver, []byte("x"))
		c.Store(ctx, "/campaigns", "u", 0, []byte("x"))
	})
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Noop
	c.Store(ctx, "/campaigns", "u", 0, []byte("x"))
	c.Invalidate(ctx, "/campaigns")
	_, _, ok := c.Load(ctx, "/campaigns", "u")
	assert.False(t, ok)
}
