// Package middleware holds the gin middleware chain of the API server:
// request IDs, access logging, metrics and panic recovery.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the inbound/outbound request id header.
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// RequestID attaches a request id to every request, reusing the caller's
// header when present so ids propagate across services.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the request id set by RequestID, or "".
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
