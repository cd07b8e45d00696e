package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/VisaPath-Intelligence/internal/application/feasibility"
	"github.com/turtacn/VisaPath-Intelligence/internal/domain/timeline"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// FeasibilityHandler serves timeline and feasibility queries.
type FeasibilityHandler struct {
	feasibilitySvc *feasibility.Service
	logger         logging.Logger
}

// NewFeasibilityHandler creates a new FeasibilityHandler.
func NewFeasibilityHandler(svc *feasibility.Service, logger logging.Logger) *FeasibilityHandler {
	return &FeasibilityHandler{feasibilitySvc: svc, logger: logger}
}

// RegisterRoutes registers feasibility routes.
func (h *FeasibilityHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/trips/:tripId/feasibility", h.CheckTrip)
	r.GET("/destinations/:destinationId/feasibility", h.CheckDestination)
	r.GET("/destinations/:destinationId/timeline", h.GetTimeline)
}

// CheckTrip handles GET /api/v1/trips/{tripId}/feasibility
func (h *FeasibilityHandler) CheckTrip(c *gin.Context) {
	tripID := common.ID(c.Param("tripId"))
	if tripID == "" {
		writeError(c, errors.NewValidationError("trip id is required"))
		return
	}

	result, err := h.feasibilitySvc.CheckTrip(c.Request.Context(), tripID)
	if err != nil {
		h.logger.Error("trip feasibility check failed",
			logging.String("trip_id", string(tripID)), logging.Err(err))
		writeError(c, err)
		return
	}
	writeOK(c, result)
}

// CheckDestination handles GET /api/v1/destinations/{destinationId}/feasibility
func (h *FeasibilityHandler) CheckDestination(c *gin.Context) {
	destinationID := common.ID(c.Param("destinationId"))
	if destinationID == "" {
		writeError(c, errors.NewValidationError("destination id is required"))
		return
	}

	result, err := h.feasibilitySvc.CheckDestination(c.Request.Context(), destinationID)
	if err != nil {
		h.logger.Error("destination feasibility check failed",
			logging.String("destination_id", string(destinationID)), logging.Err(err))
		writeError(c, err)
		return
	}
	writeOK(c, result)
}

// GetTimeline handles GET /api/v1/destinations/{destinationId}/timeline
func (h *FeasibilityHandler) GetTimeline(c *gin.Context) {
	destinationID := common.ID(c.Param("destinationId"))
	if destinationID == "" {
		writeError(c, errors.NewValidationError("destination id is required"))
		return
	}

	var prefs timeline.Preferences
	if v, err := strconv.Atoi(c.Query("reminder_days_before")); err == nil && v > 0 {
		prefs.ReminderDaysBefore = v
	}

	tl, err := h.feasibilitySvc.Timeline(c.Request.Context(), destinationID, prefs)
	if err != nil {
		h.logger.Error("timeline computation failed",
			logging.String("destination_id", string(destinationID)), logging.Err(err))
		writeError(c, err)
		return
	}
	writeOK(c, tl)
}

//Personal.AI order the ending
