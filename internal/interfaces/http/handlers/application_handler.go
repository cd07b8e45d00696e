package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/VisaPath-Intelligence/internal/application/visaapp"
	app "github.com/turtacn/VisaPath-Intelligence/internal/domain/application"
	"github.com/turtacn/VisaPath-Intelligence/internal/domain/timeline"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// ApplicationHandler serves the application-tracking write and read API.
type ApplicationHandler struct {
	appSvc *visaapp.Service
	logger logging.Logger
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(svc *visaapp.Service, logger logging.Logger) *ApplicationHandler {
	return &ApplicationHandler{appSvc: svc, logger: logger}
}

// RegisterRoutes registers application routes.
func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/applications", h.Create)
	r.GET("/applications", h.List)
	r.GET("/applications/:id", h.Get)
	r.POST("/applications/:id/transition", h.Transition)
	r.POST("/applications/:id/cancel", h.Cancel)
	r.GET("/destinations/:destinationId/milestones", h.Milestones)
	r.POST("/destinations/:destinationId/milestones/recompute", h.RecomputeMilestones)
	r.GET("/milestones/upcoming", h.UpcomingMilestones)
}

// CreateApplicationRequest is the body of POST /applications.
type CreateApplicationRequest struct {
	UserID        string `json:"user_id" binding:"required"`
	DestinationID string `json:"destination_id" binding:"required"`
}

// TransitionRequest is the body of POST /applications/{id}/transition.  Dates
// use the YYYY-MM-DD wire format and are required only by the transitions that
// record them.
type TransitionRequest struct {
	Target          string `json:"target" binding:"required"`
	AppointmentDate string `json:"appointment_date,omitempty"`
	SubmissionDate  string `json:"submission_date,omitempty"`
	DecisionDate    string `json:"decision_date,omitempty"`
}

// Create handles POST /api/v1/applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	application, err := h.appSvc.Create(c.Request.Context(),
		common.UserID(req.UserID), common.ID(req.DestinationID))
	if err != nil {
		h.logger.Error("application create failed",
			logging.String("user_id", req.UserID),
			logging.String("destination_id", req.DestinationID),
			logging.Err(err))
		writeError(c, err)
		return
	}
	writeCreated(c, application)
}

// Get handles GET /api/v1/applications/{id}
func (h *ApplicationHandler) Get(c *gin.Context) {
	id := common.ID(c.Param("id"))
	application, err := h.appSvc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, application)
}

// List handles GET /api/v1/applications?user_id=&page=&page_size=
func (h *ApplicationHandler) List(c *gin.Context) {
	userID := common.UserID(c.Query("user_id"))
	if userID == "" {
		writeError(c, errors.NewValidationError("user_id is required"))
		return
	}

	apps, err := h.appSvc.ListByUser(c.Request.Context(), userID, parsePagination(c))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, apps)
}

// Transition handles POST /api/v1/applications/{id}/transition
func (h *ApplicationHandler) Transition(c *gin.Context) {
	id := common.ID(c.Param("id"))

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	in := app.TransitionInput{Target: app.Status(req.Target)}
	var err error
	if in.AppointmentDate, err = parseDate(req.AppointmentDate); err != nil {
		writeError(c, err)
		return
	}
	if in.SubmissionDate, err = parseDate(req.SubmissionDate); err != nil {
		writeError(c, err)
		return
	}
	if in.DecisionDate, err = parseDate(req.DecisionDate); err != nil {
		writeError(c, err)
		return
	}

	application, err := h.appSvc.Transition(c.Request.Context(), id, in)
	if err != nil {
		h.logger.Error("application transition failed",
			logging.String("application_id", string(id)),
			logging.String("target", req.Target),
			logging.Err(err))
		writeError(c, err)
		return
	}
	writeOK(c, application)
}

// Cancel handles POST /api/v1/applications/{id}/cancel
func (h *ApplicationHandler) Cancel(c *gin.Context) {
	id := common.ID(c.Param("id"))
	application, err := h.appSvc.Cancel(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("application cancel failed",
			logging.String("application_id", string(id)), logging.Err(err))
		writeError(c, err)
		return
	}
	writeOK(c, application)
}

// Milestones handles GET /api/v1/destinations/{destinationId}/milestones
func (h *ApplicationHandler) Milestones(c *gin.Context) {
	destinationID := common.ID(c.Param("destinationId"))
	rows, err := h.appSvc.Milestones(c.Request.Context(), destinationID)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, rows)
}

// RecomputeMilestones handles POST /api/v1/destinations/{destinationId}/milestones/recompute
func (h *ApplicationHandler) RecomputeMilestones(c *gin.Context) {
	destinationID := common.ID(c.Param("destinationId"))

	var prefs timeline.Preferences
	if v, err := strconv.Atoi(c.Query("reminder_days_before")); err == nil && v > 0 {
		prefs.ReminderDaysBefore = v
	}

	rows, err := h.appSvc.RecomputeMilestones(c.Request.Context(), destinationID, prefs)
	if err != nil {
		h.logger.Error("milestone recompute failed",
			logging.String("destination_id", string(destinationID)), logging.Err(err))
		writeError(c, err)
		return
	}
	writeOK(c, rows)
}

// UpcomingMilestones handles GET /api/v1/milestones/upcoming?user_id=&within_days=
func (h *ApplicationHandler) UpcomingMilestones(c *gin.Context) {
	userID := common.UserID(c.Query("user_id"))
	if userID == "" {
		writeError(c, errors.NewValidationError("user_id is required"))
		return
	}

	withinDays := 30
	if v, err := strconv.Atoi(c.Query("within_days")); err == nil {
		withinDays = v
	}

	rows, err := h.appSvc.UpcomingMilestones(c.Request.Context(), userID, withinDays)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, rows)
}

//Personal.AI order the ending
