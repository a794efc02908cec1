package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thaisign/thsl-translate/internal/application/translation"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	"github.com/thaisign/thsl-translate/internal/interfaces/http/middleware"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

// TranslateHandler serves the translation and word-resolution endpoints.
type TranslateHandler struct {
	svc    translation.Service
	logger logging.Logger
}

func NewTranslateHandler(svc translation.Service, logger logging.Logger) *TranslateHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &TranslateHandler{svc: svc, logger: logger.Named("translate_handler")}
}

// TranslateRequest is the POST /api/v1/translate body.
type TranslateRequest struct {
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
}

// Translate handles POST /api/v1/translate.
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request body").WithCause(err))
		return
	}

	out, err := h.svc.Translate(c.Request.Context(), &translation.TranslateInput{
		Text:      req.Text,
		Keywords:  req.Keywords,
		RequestID: middleware.RequestIDFromContext(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Resolve handles GET /api/v1/resolve?word=.
func (h *TranslateHandler) Resolve(c *gin.Context) {
	word := strings.TrimSpace(c.Query("word"))
	if word == "" {
		respondError(c, apperrors.BadRequest("query parameter 'word' is required"))
		return
	}

	out, err := h.svc.Resolve(c.Request.Context(), word)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
