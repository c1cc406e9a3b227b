package handler

import (
	"shipment-tracker/internal/adapter/http/dto"
	"shipment-tracker/internal/core/ports"
	"shipment-tracker/pkg/apperror"
	"shipment-tracker/pkg/response"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives carrier status notifications.
type WebhookHandler struct {
	shipmentSvc ports.ShipmentService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(shipmentSvc ports.ShipmentService) *WebhookHandler {
	return &WebhookHandler{shipmentSvc: shipmentSvc}
}

// Receive handles POST /webhook.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if req.TrackNo == "" {
			response.Error(c, apperror.ErrMissingTrackingNumber())
			return
		}
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	shipment, err := h.shipmentSvc.Ingest(c.Request.Context(), req.TrackNo, req.ToUpdate())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WebhookResponse{
		Message: "Shipment saved or updated successfully",
		TrackNo: shipment.TrackNo,
	})
}
