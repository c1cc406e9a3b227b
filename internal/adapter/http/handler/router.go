package handler

import (
	"shipment-tracker/config"
	"shipment-tracker/internal/adapter/http/middleware"
	"shipment-tracker/internal/core/ports"
	"shipment-tracker/web"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxWebhookBodyBytes = 1 << 20

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	ShipmentSvc ports.ShipmentService
	DBHealth    ports.HealthChecker
	Dashboard   config.DashboardConfig
	Logger      zerolog.Logger
}

// SetupRouter wires middleware, templates and all routes.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(deps.Logger),
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.MaxBodySize(maxWebhookBodyBytes),
	)
	r.SetHTMLTemplate(web.Templates())

	webhookHandler := NewWebhookHandler(deps.ShipmentSvc)
	shipmentHandler := NewShipmentHandler(deps.ShipmentSvc)
	dashboardHandler := NewDashboardHandler(deps.ShipmentSvc, deps.DBHealth, deps.Dashboard, deps.Logger)

	r.GET("/", dashboardHandler.Render)
	r.GET("/status", shipmentHandler.Status)
	r.POST("/webhook", webhookHandler.Receive)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", shipmentHandler.Health)

		shipments := v1.Group("/shipments")
		{
			shipments.GET("/customer/:customer_id", shipmentHandler.CustomerShipments)
			shipments.GET("/track/:track_no", shipmentHandler.TrackShipment)
		}
	}

	return r
}
