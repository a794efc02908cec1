package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

// Recovery converts panics into 500 responses with the standard error body.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	log := logger.Named("recovery")

	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered",
			logging.Any("panic", recovered),
			logging.String("path", c.Request.URL.Path),
			logging.String("request_id", RequestIDFromContext(c)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"code":    apperrors.ErrCodeInternal.String(),
			"message": "internal server error",
		})
	})
}
