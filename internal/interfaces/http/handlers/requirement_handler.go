package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// RequirementHandler serves visa requirement lookups.
type RequirementHandler struct {
	resolver *visa.Resolver
	logger   logging.Logger
}

// NewRequirementHandler creates a new RequirementHandler.
func NewRequirementHandler(resolver *visa.Resolver, logger logging.Logger) *RequirementHandler {
	return &RequirementHandler{resolver: resolver, logger: logger}
}

// RegisterRoutes registers requirement routes.
func (h *RequirementHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/requirements", h.Resolve)
}

// ResolutionResponse is the lookup result.  Found=false is a normal answer
// meaning the corridor is visa-free or not yet curated.
type ResolutionResponse struct {
	Found       bool              `json:"found"`
	Requirement *visa.Requirement `json:"requirement,omitempty"`
}

// Resolve handles GET /api/v1/requirements?passport=&destination=&purpose=
func (h *RequirementHandler) Resolve(c *gin.Context) {
	passport := common.CountryCode(c.Query("passport"))
	destination := common.CountryCode(c.Query("destination"))
	purpose := visa.Purpose(c.Query("purpose"))
	if purpose == "" {
		purpose = visa.PurposeTourism
	}

	req, err := h.resolver.Resolve(c.Request.Context(), passport, destination, purpose)
	if err != nil {
		h.logger.Error("requirement resolution failed",
			logging.String("passport", string(passport)),
			logging.String("destination", string(destination)),
			logging.Err(err))
		writeError(c, err)
		return
	}

	writeOK(c, ResolutionResponse{Found: req != nil, Requirement: req})
}

//Personal.AI order the ending
