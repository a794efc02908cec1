// Common helpers for HTTP handlers.

package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// respondError maps application-level errors to HTTP status codes. Internal
// errors are masked; their detail stays in the logs.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	status := appErr.HTTPStatus()

	resp := ErrorResponse{
		Code:    appErr.Code.String(),
		Message: appErr.Message,
		Detail:  appErr.Detail,
	}
	if status >= 500 {
		resp = ErrorResponse{
			Code:    apperrors.ErrCodeInternal.String(),
			Message: "internal server error",
		}
	}
	c.AbortWithStatusJSON(status, resp)
}
