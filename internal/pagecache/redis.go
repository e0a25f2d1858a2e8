package pagecache

import (
	"context"
	"errors"
	"time"

	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	repo redisrepo.Default
	ttl  time.Duration
}

func NewRedis(repo redisrepo.Default, ttl time.Duration) PageCache {
	return &redisCache{
		repo: repo,
		ttl:  ttl,
	}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Page, bool, error) {
	page, err := redisrepo.Get[Page](c.repo, ctx, redisrepo.PageCacheKey(key))
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if page == nil {
		return nil, false, nil
	}

	return page, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, page Page) error {
	return c.repo.SetJSON(ctx, redisrepo.PageCacheKey(key), page, c.ttl)
}

func (c *redisCache) Clear(ctx context.Context) error {
	keys, err := c.repo.Keys(ctx, redisrepo.PAGE_CACHE_PATTERN).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	return c.repo.Del(ctx, keys...).Err()
}

func (c *redisCache) TTL() time.Duration {
	return c.ttl
}
