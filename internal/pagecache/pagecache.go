// Package pagecache memoizes rendered responses for a fixed time window.
//
// Entries expire only by TTL or by an explicit Clear. Writes to the
// underlying data never invalidate an entry, so a cached page may lag behind
// the store for up to one TTL window. Concurrent misses on one key may each
// recompute and store the page; the last write wins.
package pagecache

import (
	"context"
	"time"
)

type Page struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type PageCache interface {
	// Get reports found=false on a miss or an expired entry.
	Get(ctx context.Context, key string) (page *Page, found bool, err error)
	Set(ctx context.Context, key string, page Page) error
	Clear(ctx context.Context) error
	TTL() time.Duration
}

// Key identifies a cached view by name and its raw page query value.
func Key(view string, page string) string {
	return view + ":" + page
}
