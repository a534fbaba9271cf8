package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf/internal/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics records request counts and latency keyed by route pattern, so
// /books/1 and /books/2 share a series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
