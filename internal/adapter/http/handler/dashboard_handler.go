package handler

import (
	"net/http"
	"time"

	"shipment-tracker/config"
	"shipment-tracker/internal/core/domain"
	"shipment-tracker/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DashboardHandler renders the server-side HTML overview page.
//
// The dashboard is advisory: it must return 200 with a rendered page
// even when the database is unreachable, showing a warning instead of
// failing the request.
type DashboardHandler struct {
	shipmentSvc ports.ShipmentService
	health      ports.HealthChecker
	cfg         config.DashboardConfig
	log         zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(shipmentSvc ports.ShipmentService, health ports.HealthChecker, cfg config.DashboardConfig, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{shipmentSvc: shipmentSvc, health: health, cfg: cfg, log: log}
}

type dashboardView struct {
	Shipments []domain.Shipment
	Error     string
}

// Render handles GET /.
func (h *DashboardHandler) Render(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.pingWithRetry(c); err != nil {
		h.log.Warn().Err(err).Msg("dashboard: database unreachable, rendering degraded page")
		c.HTML(http.StatusOK, "dashboard.html", dashboardView{
			Error: "Database is unavailable. Shipment data cannot be displayed right now.",
		})
		return
	}

	shipments, err := h.shipmentSvc.RecentShipments(ctx, h.cfg.PageLimit)
	if err != nil {
		h.log.Warn().Err(err).Msg("dashboard: failed to load recent shipments")
		c.HTML(http.StatusOK, "dashboard.html", dashboardView{
			Error: "Shipment data could not be loaded. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", dashboardView{Shipments: shipments})
}

func (h *DashboardHandler) pingWithRetry(c *gin.Context) error {
	ctx := c.Request.Context()

	var err error
	for attempt := 0; attempt < h.cfg.PingRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(h.cfg.PingRetryDelay):
			}
		}
		if err = h.health.Ping(ctx); err == nil {
			return nil
		}
	}
	return err
}
