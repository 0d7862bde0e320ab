package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const listingKey = "dashboard:invoices"

// ListingCacheInterface is the cached-view boundary for the invoice listing.
// Mutations call Invalidate so the next read regenerates the view.
type ListingCacheInterface interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, payload string)
	Invalidate(ctx context.Context) error
}

// ListingCache stores the rendered listing payload in Redis under a single key.
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewListingCache(rdb *redis.Client, ttl time.Duration) ListingCacheInterface {
	return &ListingCache{rdb: rdb, ttl: ttl}
}

func (c *ListingCache) Get(ctx context.Context) (string, bool) {
	payload, err := c.rdb.Get(ctx, listingKey).Result()
	if err != nil {
		// Misses and transport errors both fall back to the store.
		return "", false
	}
	return payload, true
}

func (c *ListingCache) Set(ctx context.Context, payload string) {
	c.rdb.Set(ctx, listingKey, payload, c.ttl)
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, listingKey).Err()
}
