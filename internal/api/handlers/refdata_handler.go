package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/metrics"
	"github.com/mustang75/ukrposhta-international-shipping/internal/refdata"
	"github.com/mustang75/ukrposhta-international-shipping/internal/search"
)

// defaultCodeCount is how many classification codes are served when the
// query is below the search activation threshold.
const defaultCodeCount = 20

// RefDataHandler serves the reference tables and classification code search
type RefDataHandler struct {
	tables  *refdata.Tables
	engine  *search.Engine
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// NewRefDataHandler creates a new reference data handler
func NewRefDataHandler(tables *refdata.Tables, engine *search.Engine, logger *logging.Logger, m *metrics.Metrics) *RefDataHandler {
	return &RefDataHandler{
		tables:  tables,
		engine:  engine,
		logger:  logger.WithComponent("refdata_handler"),
		metrics: m,
	}
}

// RegisterRoutes registers the reference data routes
func (h *RefDataHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/countries", h.GetCountries)
	r.GET("/shipment-types", h.GetShipmentTypes)
	r.GET("/categories", h.GetCategories)
	r.GET("/hs-codes", h.SearchCodes)
}

// GetCountries handles GET /countries
func (h *RefDataHandler) GetCountries(c *gin.Context) {
	respondOK(c, h.tables.Countries)
}

// GetShipmentTypes handles GET /shipment-types
func (h *RefDataHandler) GetShipmentTypes(c *gin.Context) {
	respondOK(c, h.tables.ShipmentTypes)
}

// GetCategories handles GET /categories
func (h *RefDataHandler) GetCategories(c *gin.Context) {
	respondOK(c, h.tables.Categories)
}

// SearchCodes handles GET /hs-codes. Queries below the activation threshold
// get the leading slice of the table instead of an empty result.
func (h *RefDataHandler) SearchCodes(c *gin.Context) {
	result := h.engine.Search(c.Query("q"))
	if !result.Active {
		respondOK(c, h.engine.Head(defaultCodeCount))
		return
	}

	if h.metrics != nil {
		outcome := "matched"
		if len(result.Matches) == 0 {
			outcome = "empty"
		}
		h.metrics.RecordCodeSearch(outcome)
	}

	respondOK(c, result.Matches)
}
