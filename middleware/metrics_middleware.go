package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/burnboard/lib/metrics"
)

// MetricsMiddleware records request latency per method, route and status.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
