package handler

import (
	"strconv"
	"time"

	"shipment-tracker/internal/adapter/http/dto"
	"shipment-tracker/internal/core/domain"
	"shipment-tracker/internal/core/ports"
	"shipment-tracker/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultQueryLimit = 50
	maxQueryLimit     = 100
)

// ShipmentHandler serves the typed JSON query API.
type ShipmentHandler struct {
	shipmentSvc ports.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(shipmentSvc ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentSvc: shipmentSvc}
}

// CustomerShipments handles GET /api/v1/shipments/customer/:customer_id.
func (h *ShipmentHandler) CustomerShipments(c *gin.Context) {
	customerID := c.Param("customer_id")
	statusFilter := c.Query("status")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultQueryLimit)))
	if limit < 1 {
		limit = defaultQueryLimit
	}
	if limit > maxQueryLimit {
		limit = maxQueryLimit
	}

	shipments, err := h.shipmentSvc.CustomerShipments(c.Request.Context(), customerID, statusFilter, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.CustomerShipmentItem, 0, len(shipments))
	for i := range shipments {
		items = append(items, toCustomerItem(&shipments[i]))
	}

	response.OK(c, dto.CustomerShipmentsResponse{
		CustomerID:     customerID,
		TotalShipments: len(items),
		Shipments:      items,
	})
}

// TrackShipment handles GET /api/v1/shipments/track/:track_no.
func (h *ShipmentHandler) TrackShipment(c *gin.Context) {
	shipment, err := h.shipmentSvc.TrackShipment(c.Request.Context(), c.Param("track_no"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTrackResponse(shipment))
}

// Health handles GET /api/v1/health: a stateless route directory.
func (h *ShipmentHandler) Health(c *gin.Context) {
	response.OK(c, dto.HealthResponse{
		Status:  "healthy",
		Message: "Shipment Tracker API is running",
		Endpoints: map[string]string{
			"customer_shipments": "/api/v1/shipments/customer/{customer_id}",
			"track_shipment":     "/api/v1/shipments/track/{track_no}",
			"webhook":            "/webhook",
		},
	})
}

// Status handles GET /status.
func (h *ShipmentHandler) Status(c *gin.Context) {
	response.OK(c, dto.StatusResponse{Status: "Shipment Tracker API is live!"})
}

func toCustomerItem(s *domain.Shipment) dto.CustomerShipmentItem {
	return dto.CustomerShipmentItem{
		TrackNo:              s.TrackNo,
		InvoiceNumber:        s.InvoiceNumber,
		StatusCode:           s.StatusCode,
		StatusDesc:           s.StatusDesc,
		ExceptionCode:        s.ExceptionCode,
		ExceptionDesc:        s.ExceptionDesc,
		EstimatedDelivery:    s.EstimatedDelivery,
		DeliveredTime:        s.DeliveredTime,
		ReceivedBy:           s.ReceivedBy,
		CurrentLocation:      s.CurrentLocation,
		LastScanLocation:     s.LastScanLocation,
		DeliveryAttemptCount: s.DeliveryAttemptCount,
		CreatedAt:            isoTime(s.CreatedAt),
		UpdatedAt:            isoTime(s.UpdatedAt),
	}
}

func toTrackResponse(s *domain.Shipment) dto.TrackShipmentResponse {
	return dto.TrackShipmentResponse{
		TrackNo:              s.TrackNo,
		CustomerID:           s.CustomerID,
		InvoiceNumber:        s.InvoiceNumber,
		StatusCode:           s.StatusCode,
		StatusDesc:           s.StatusDesc,
		ExceptionCode:        s.ExceptionCode,
		ExceptionDesc:        s.ExceptionDesc,
		EstimatedDelivery:    s.EstimatedDelivery,
		DeliveredTime:        s.DeliveredTime,
		ReceivedBy:           s.ReceivedBy,
		ServiceCode:          s.ServiceCode,
		CurrentLocation:      s.CurrentLocation,
		LastScanLocation:     s.LastScanLocation,
		DeliveryAttemptCount: s.DeliveryAttemptCount,
		CreatedAt:            isoTime(s.CreatedAt),
		UpdatedAt:            isoTime(s.UpdatedAt),
	}
}

func isoTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
