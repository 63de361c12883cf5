package ratesource

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/mtlprog/fxcompare/internal/domain"
)

// CachedFetcher remembers successful snapshots per profile key for a TTL.
// Failed fetches are not cached.
type CachedFetcher struct {
	next  Fetcher
	cache *cache.Cache
}

// Cached wraps next so repeated fetches within ttl reuse the last snapshot.
func Cached(next Fetcher, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{next: next, cache: cache.New(ttl, 2*ttl)}
}

// Supports delegates to the wrapped fetcher.
func (c *CachedFetcher) Supports(p domain.Profile) bool {
	return c.next.Supports(p)
}

// Fetch returns a cached snapshot when one is fresh, otherwise fetches.
func (c *CachedFetcher) Fetch(ctx context.Context, p domain.Profile) (Snapshot, error) {
	if v, ok := c.cache.Get(p.Key); ok {
		return v.(Snapshot), nil
	}
	snap, err := c.next.Fetch(ctx, p)
	if err != nil {
		return snap, err
	}
	c.cache.SetDefault(p.Key, snap)
	return snap, nil
}

// Invalidate drops the cached snapshot for key.
func (c *CachedFetcher) Invalidate(key string) {
	c.cache.Delete(key)
}
