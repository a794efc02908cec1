// Package http wires the gin route tree and the HTTP server of the API
// service.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/prometheus"
	"github.com/thaisign/thsl-translate/internal/interfaces/http/handlers"
	"github.com/thaisign/thsl-translate/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies of the
// complete route tree. Nil handlers leave their routes unregistered, which
// keeps partial wiring (tests, tools) cheap.
type RouterConfig struct {
	TranslateHandler *handlers.TranslateHandler
	PoseHandler      *handlers.PoseHandler
	HealthHandler    *handlers.HealthHandler

	MetricsCollector prometheus.MetricsCollector
	Metrics          *prometheus.AppMetrics
	Logger           logging.Logger

	// Mode is the gin mode: "debug", "release" or "test".
	Mode string
}

// NewRouter constructs the route tree.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(middleware.Recovery(logger))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	api := r.Group("/api/v1")
	{
		if cfg.TranslateHandler != nil {
			api.POST("/translate", cfg.TranslateHandler.Translate)
			api.GET("/resolve", cfg.TranslateHandler.Resolve)
		}
		if cfg.PoseHandler != nil {
			api.GET("/poses/:name", cfg.PoseHandler.Get)
			api.GET("/poses/:name/meta", cfg.PoseHandler.Meta)
		}
	}

	return r
}
