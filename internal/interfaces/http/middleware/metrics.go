package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/prometheus"
)

// Metrics records per-request counters and latencies. Paths are labelled by
// route template, not raw URL, so pose names do not explode cardinality.
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		if path == "/metrics" {
			c.Next()
			return
		}

		m.HTTPActiveRequests.WithLabelValues(c.Request.Method).Inc()
		start := time.Now()
		c.Next()
		m.HTTPActiveRequests.WithLabelValues(c.Request.Method).Dec()

		prometheus.RecordHTTPRequest(m, c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
