package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FeedCache memoizes rendered global-feed pages in redis for a fixed TTL.
// Population is lazy; writes never invalidate, so a page can stay stale for
// up to one TTL. That window is part of the feed contract.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{client: client, ttl: ttl}
}

func key(page int) string { return fmt.Sprintf("feed:global:%d", page) }

// Get returns the cached payload for a page, or ok=false on miss. Redis
// failures count as misses: the cache is never a correctness dependency.
func (c *FeedCache) Get(ctx context.Context, page int) ([]byte, bool) {
	data, err := c.client.Get(ctx, key(page)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a rendered page. Errors are swallowed; the next reader just
// recomputes.
func (c *FeedCache) Set(ctx context.Context, page int, payload []byte) {
	_ = c.client.Set(ctx, key(page), payload, c.ttl).Err()
}
