package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mustang75/ukrposhta-international-shipping/internal/application"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/errors"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
)

// QuoteHandler handles price estimate HTTP requests
type QuoteHandler struct {
	service *application.QuoteService
	logger  *logging.Logger
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(service *application.QuoteService, logger *logging.Logger) *QuoteHandler {
	return &QuoteHandler{service: service, logger: logger.WithComponent("quote_handler")}
}

// RegisterRoutes registers the quote routes
func (h *QuoteHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/calculate", h.Calculate)
}

// Calculate handles GET /calculate
func (h *QuoteHandler) Calculate(c *gin.Context) {
	country := c.Query("country")
	weightStr := c.Query("weight")
	if country == "" || weightStr == "" {
		respondError(c, h.logger, errors.ErrValidation("Missing country or weight"))
		return
	}

	weight, err := strconv.Atoi(weightStr)
	if err != nil {
		respondError(c, h.logger, errors.ErrValidation("Weight must be a whole number of grams"))
		return
	}

	result, appErr := h.service.Estimate(c.Request.Context(), country, weight, c.DefaultQuery("type", "SMALL_BAG"))
	if appErr != nil {
		respondError(c, h.logger, appErr)
		return
	}

	respondOK(c, result)
}
