package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/metrics"
)

// Metrics records request count and latency per matched route.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			// Unmatched routes share one label to keep cardinality bounded.
			route = "unmatched"
		}
		collector.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
