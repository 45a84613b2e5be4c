package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, ttl time.Duration) (*FeedCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewFeedCache(client, ttl), mr
}

func TestFeedCacheRoundTrip(t *testing.T) {
	c, _ := newCache(t, 20*time.Second)
	ctx := context.Background()

	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)

	c.Set(ctx, 1, []byte(`{"page":1}`))
	data, ok := c.Get(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"page":1}`), data)

	// pages are cached independently
	_, ok = c.Get(ctx, 2)
	assert.False(t, ok)
}

func TestFeedCacheExpiresAfterTTL(t *testing.T) {
	c, mr := newCache(t, 20*time.Second)
	ctx := context.Background()

	c.Set(ctx, 1, []byte("payload"))
	_, ok := c.Get(ctx, 1)
	require.True(t, ok)

	mr.FastForward(19 * time.Second)
	_, ok = c.Get(ctx, 1)
	assert.True(t, ok, "entry should survive inside the TTL")

	mr.FastForward(2 * time.Second)
	_, ok = c.Get(ctx, 1)
	assert.False(t, ok, "entry should expire after the TTL")
}

func TestFeedCacheUnreachableRedisIsAMiss(t *testing.T) {
	c, mr := newCache(t, 20*time.Second)
	ctx := context.Background()

	c.Set(ctx, 1, []byte("payload"))
	mr.Close()

	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	// Set must not panic either
	c.Set(ctx, 1, []byte("payload"))
}
