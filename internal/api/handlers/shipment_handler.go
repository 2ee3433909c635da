package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mustang75/ukrposhta-international-shipping/internal/application"
	"github.com/mustang75/ukrposhta-international-shipping/internal/payload"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/errors"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/metrics"
	"github.com/mustang75/ukrposhta-international-shipping/internal/projection"
)

// ShipmentHandler handles shipment HTTP requests
type ShipmentHandler struct {
	service *application.ShipmentService
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// NewShipmentHandler creates a new shipment handler
func NewShipmentHandler(service *application.ShipmentService, logger *logging.Logger, m *metrics.Metrics) *ShipmentHandler {
	return &ShipmentHandler{
		service: service,
		logger:  logger.WithComponent("shipment_handler"),
		metrics: m,
	}
}

// RegisterRoutes registers the shipment routes
func (h *ShipmentHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/shipments", h.ListShipments)
	r.POST("/shipment", h.CreateShipment)
	r.GET("/shipment/:uuid", h.GetShipment)
	r.DELETE("/shipment/:uuid", h.DeleteShipment)
	r.GET("/label/:uuid", h.GetLabel)
	r.POST("/import-shipment", h.ImportShipment)
}

// ListShipments handles GET /shipments
func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	refresh := c.DefaultQuery("refresh", "true") != "false"
	typeFilter := c.Query("type")

	records, appErr := h.service.List(c.Request.Context(), limit, offset, refresh)
	if appErr != nil {
		respondError(c, h.logger, appErr)
		return
	}

	rows := projection.Project(records, typeFilter)
	respondOK(c, gin.H{
		"shipments": rows,
		"total":     len(rows),
	})
}

// CreateShipment handles POST /shipment
func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var form payload.RawShipmentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, h.logger, errors.ErrBadRequest("invalid request body: "+err.Error()))
		return
	}

	record, appErr := h.service.Create(c.Request.Context(), &form)
	if appErr != nil {
		respondError(c, h.logger, appErr)
		return
	}

	respondOK(c, record)
}

// GetShipment handles GET /shipment/:uuid
func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	details, appErr := h.service.Get(c.Request.Context(), c.Param("uuid"))
	if appErr != nil {
		respondError(c, h.logger, appErr)
		return
	}
	respondOK(c, details)
}

// DeleteShipment handles DELETE /shipment/:uuid
func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	if appErr := h.service.Delete(c.Request.Context(), c.Param("uuid")); appErr != nil {
		respondError(c, h.logger, appErr)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

// GetLabel handles GET /label/:uuid, streaming the label PDF as an
// attachment. Errors keep the JSON envelope so the frontend can render them.
func (h *ShipmentHandler) GetLabel(c *gin.Context) {
	shipmentUUID := c.Param("uuid")
	labelType := c.DefaultQuery("type", "forms")

	pdf, appErr := h.service.Label(c.Request.Context(), shipmentUUID, labelType)
	if appErr != nil {
		respondError(c, h.logger, appErr)
		return
	}

	filename := fmt.Sprintf("label_%s_%s.pdf", labelType, shipmentUUID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ImportShipment handles POST /import-shipment
func (h *ShipmentHandler) ImportShipment(c *gin.Context) {
	var body struct {
		Barcode string `json:"barcode"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, h.logger, errors.ErrBadRequest("invalid request body: "+err.Error()))
		return
	}

	result, appErr := h.service.Import(c.Request.Context(), body.Barcode)
	if appErr != nil {
		respondError(c, h.logger, appErr)
		return
	}
	respondOK(c, result)
}
