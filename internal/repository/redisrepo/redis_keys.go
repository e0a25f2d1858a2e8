package redisrepo

import "fmt"

const (
	PAGE_CACHE_KEY     = "page-cache:%s" // <view>:<page>
	PAGE_CACHE_PATTERN = "page-cache:*"
)

func PageCacheKey(key string) string {
	return fmt.Sprintf(PAGE_CACHE_KEY, key)
}
