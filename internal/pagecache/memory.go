package pagecache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memoryCache struct {
	lru *expirable.LRU[string, Page]
	ttl time.Duration
}

// NewMemory keeps at most size pages in process, each for ttl.
func NewMemory(size int, ttl time.Duration) PageCache {
	return &memoryCache{
		lru: expirable.NewLRU[string, Page](size, nil, ttl),
		ttl: ttl,
	}
}

func (c *memoryCache) Get(ctx context.Context, key string) (*Page, bool, error) {
	page, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return &page, true, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, page Page) error {
	c.lru.Add(key, page)
	return nil
}

func (c *memoryCache) Clear(ctx context.Context) error {
	c.lru.Purge()
	return nil
}

func (c *memoryCache) TTL() time.Duration {
	return c.ttl
}
