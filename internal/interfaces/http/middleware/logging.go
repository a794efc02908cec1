package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
)

// Logging writes one structured access log line per request. Health and
// metrics endpoints are skipped to keep the log signal clean.
func Logging(logger logging.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	skip := map[string]struct{}{
		"/healthz": {},
		"/readyz":  {},
		"/metrics": {},
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if _, ok := skip[c.Request.URL.Path]; ok {
			return
		}

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("latency", time.Since(start)),
			logging.String("client_ip", c.ClientIP()),
			logging.String("request_id", RequestIDFromContext(c)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("request failed", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("request rejected", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
