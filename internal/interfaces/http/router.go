// Package http assembles the gin router and the HTTP server of the engine.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/VisaPath-Intelligence/internal/config"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/VisaPath-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/VisaPath-Intelligence/internal/interfaces/http/middleware"
)

// RouterDeps bundles everything the router needs.  Metrics and collector may
// be nil when the metrics endpoint is disabled.
type RouterDeps struct {
	Requirements *handlers.RequirementHandler
	Feasibility  *handlers.FeasibilityHandler
	Applications *handlers.ApplicationHandler
	Health       *handlers.HealthHandler

	Metrics   *prometheus.AppMetrics
	Collector prometheus.MetricsCollector
}

// NewRouter builds the engine's gin router: middleware chain, health probes,
// the optional metrics endpoint, and the versioned API group.
func NewRouter(cfg *config.Config, logger logging.Logger, deps RouterDeps) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.CORS())
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	deps.Health.RegisterRoutes(r)

	if cfg.Metrics.Enabled && deps.Collector != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(deps.Collector.Handler()))
	}

	v1 := r.Group("/api/v1")
	deps.Requirements.RegisterRoutes(v1)
	deps.Feasibility.RegisterRoutes(v1)
	deps.Applications.RegisterRoutes(v1)

	return r
}

//Personal.AI order the ending
