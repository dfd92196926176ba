// internal/middleware/metrics.go
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mittirang/mittirang-backend/internal/metrics"
)

// Metrics records request count and latency labelled by route template, so
// /v1/products/1 and /v1/products/2 share a series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.RequestInFlight.Inc()
		defer metrics.RequestInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.RequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		metrics.RequestTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}
