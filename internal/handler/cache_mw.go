package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/BloggingApp/blog-service/internal/monitoring"
	"github.com/BloggingApp/blog-service/internal/pagecache"
	"github.com/gin-gonic/gin"
)

type recordingWriter struct {
	gin.ResponseWriter
	body   bytes.Buffer
	maxAge string
}

func (w *recordingWriter) WriteHeader(code int) {
	if code == http.StatusOK {
		w.Header().Set("Cache-Control", w.maxAge)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// cachePage serves view from the page cache keyed by the raw page query.
// Only 200 responses are stored. A cache failure degrades to an uncached render.
func (h *Handler) cachePage(view string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := pagecache.Key(view, c.Query("page"))

		page, found, err := h.cache.Get(ctx, key)
		if err != nil {
			h.logger.Sugar().Warnf("failed to read page cache(%s): %s", key, err.Error())
		}
		maxAge := cacheControl(h.cache.TTL())
		if found {
			monitoring.PageCacheLookups.WithLabelValues(view, "hit").Inc()
			c.Header("Cache-Control", maxAge)
			c.Data(page.Status, page.ContentType, page.Body)
			c.Abort()
			return
		}
		monitoring.PageCacheLookups.WithLabelValues(view, "miss").Inc()

		w := &recordingWriter{ResponseWriter: c.Writer, maxAge: maxAge}
		c.Writer = w

		c.Next()

		if w.Status() != http.StatusOK {
			return
		}

		if err := h.cache.Set(ctx, key, pagecache.Page{
			Status:      w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		}); err != nil {
			h.logger.Sugar().Warnf("failed to store page cache(%s): %s", key, err.Error())
		}
	}
}

func cacheControl(ttl time.Duration) string {
	return "max-age=" + strconv.Itoa(int(ttl.Seconds()))
}
