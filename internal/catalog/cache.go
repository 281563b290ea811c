package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/BrandishShop/internal/domain"
)

// cachedItemEntry wraps an item with version metadata for cache invalidation
type cachedItemEntry struct {
	Version  string
	Item     domain.Item
	CachedAt time.Time
}

// itemCache is an expirable LRU of resolved catalog items keyed by index.
// Lookups that failed are never stored.
type itemCache struct {
	lru *expirable.LRU[string, *cachedItemEntry]
}

func newItemCache(size int, ttl time.Duration) *itemCache {
	return &itemCache{
		lru: expirable.NewLRU[string, *cachedItemEntry](size, nil, ttl),
	}
}

func (c *itemCache) Get(index string) (domain.Item, bool) {
	entry, found := c.lru.Get(index)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(index)
		return nil, false
	}
	return entry.Item, true
}

func (c *itemCache) Set(index string, item domain.Item) {
	c.lru.Add(index, &cachedItemEntry{
		Version:  CacheSchemaVersion,
		Item:     item,
		CachedAt: time.Now(),
	})
}

func (c *itemCache) Len() int {
	return c.lru.Len()
}
