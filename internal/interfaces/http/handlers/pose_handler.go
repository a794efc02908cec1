package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thaisign/thsl-translate/internal/application/poses"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
)

// PoseHandler streams pose files and serves their frame metadata.
type PoseHandler struct {
	svc    poses.Service
	logger logging.Logger
}

func NewPoseHandler(svc poses.Service, logger logging.Logger) *PoseHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &PoseHandler{svc: svc, logger: logger.Named("pose_handler")}
}

// Get handles GET /api/v1/poses/:name, streaming the raw pose file.
func (h *PoseHandler) Get(c *gin.Context) {
	name := c.Param("name")

	rc, stat, err := h.svc.Open(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, stat.Size, "application/octet-stream", rc, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
}

// Meta handles GET /api/v1/poses/:name/meta.
func (h *PoseHandler) Meta(c *gin.Context) {
	name := c.Param("name")

	meta, err := h.svc.GetMeta(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}
