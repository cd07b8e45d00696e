package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db     *postgres.Connection
	cache  redis.Cache
	logger logging.Logger
}

// NewHealthHandler creates a new HealthHandler.  cache may be nil when the
// cache layer is disabled.
func NewHealthHandler(db *postgres.Connection, cache redis.Cache, logger logging.Logger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, logger: logger}
}

// RegisterRoutes registers the probes on the root router, outside the
// versioned API group.
func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
}

// Liveness handles GET /healthz.  The process answering at all is the signal.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz.  Readiness requires the database; the cache
// is reported but a cache outage alone does not fail the probe because every
// cached lookup falls through to the database.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := gin.H{}
	ready := true

	dbCtx, dbCancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer dbCancel()
	if err := h.db.HealthCheck(dbCtx); err != nil {
		h.logger.Warn("database readiness check failed", logging.Err(err))
		checks["database"] = "unavailable"
		ready = false
	} else {
		checks["database"] = "ok"
	}

	if h.cache != nil {
		cacheCtx, cacheCancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cacheCancel()
		if err := h.cache.Ping(cacheCtx); err != nil {
			h.logger.Warn("cache readiness check failed", logging.Err(err))
			checks["cache"] = "unavailable"
		} else {
			checks["cache"] = "ok"
		}
	}

	status := http.StatusOK
	state := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "not_ready"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}

//Personal.AI order the ending
