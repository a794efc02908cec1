package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/prometheus"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// HealthHandler serves liveness and readiness endpoints. Liveness never
// touches dependencies; readiness runs every registered check.
type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
	metrics *prometheus.AppMetrics
	logger  logging.Logger
}

func NewHealthHandler(checks map[string]HealthCheck, metrics *prometheus.AppMetrics, logger logging.Logger) *HealthHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &HealthHandler{
		checks:  checks,
		timeout: 3 * time.Second,
		metrics: metrics,
		logger:  logger.Named("health"),
	}
}

// Liveness handles GET /healthz.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	components := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		err := check(ctx)
		if err != nil {
			healthy = false
			components[name] = err.Error()
			h.logger.Warn("readiness check failed", logging.String("component", name), logging.Err(err))
		} else {
			components[name] = "ok"
		}
		if h.metrics != nil {
			prometheus.RecordHealth(h.metrics, name, err == nil)
		}
	}

	status := http.StatusOK
	state := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "components": components})
}
