package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mustang75/ukrposhta-international-shipping/internal/application"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/errors"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
)

// TrackingHandler handles tracking HTTP requests
type TrackingHandler struct {
	service *application.TrackingService
	logger  *logging.Logger
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(service *application.TrackingService, logger *logging.Logger) *TrackingHandler {
	return &TrackingHandler{service: service, logger: logger.WithComponent("tracking_handler")}
}

// RegisterRoutes registers the tracking routes
func (h *TrackingHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/track", h.Track)
}

// Track handles POST /track
func (h *TrackingHandler) Track(c *gin.Context) {
	var body struct {
		Barcodes []string `json:"barcodes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, h.logger, errors.ErrBadRequest("invalid request body: "+err.Error()))
		return
	}

	timelines, appErr := h.service.Track(c.Request.Context(), body.Barcodes)
	if appErr != nil {
		respondError(c, h.logger, appErr)
		return
	}

	respondOK(c, gin.H{"timelines": timelines})
}
