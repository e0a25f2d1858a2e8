package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	PostsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "posts_created_total",
		Help: "Total posts successfully created",
	})

	CommentsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "comments_created_total",
		Help: "Total comments successfully created",
	})

	FollowsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "follows_created_total",
		Help: "Total follow edges created",
	})

	PageCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "page_cache_lookups_total",
		Help: "Page cache lookups by view and result",
	}, []string{"view", "result"})
)

func init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(PostsCreated)
	prometheus.MustRegister(CommentsCreated)
	prometheus.MustRegister(FollowsCreated)
	prometheus.MustRegister(PageCacheLookups)
}

// InstrumentHandler records request timing under the matched route pattern.
func InstrumentHandler(c *gin.Context) {
	start := time.Now()

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := strconv.Itoa(c.Writer.Status())

	RequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
}
