package ports

import (
	"context"

	"shipment-tracker/internal/core/domain"
)

// ShipmentService is the application core behind the HTTP surface.
type ShipmentService interface {
	// Ingest upserts the shipment identified by trackNo. Exactly one row is
	// created or updated; an empty trackNo is a validation error.
	Ingest(ctx context.Context, trackNo string, update *domain.ShipmentUpdate) (*domain.Shipment, error)

	// RecentShipments backs the dashboard: up to limit rows, newest first,
	// possibly in degraded order (see ShipmentRepository.ListRecent).
	RecentShipments(ctx context.Context, limit int) ([]domain.Shipment, error)

	// TrackShipment returns the shipment or a not-found error.
	TrackShipment(ctx context.Context, trackNo string) (*domain.Shipment, error)

	CustomerShipments(ctx context.Context, customerID, statusFilter string, limit int) ([]domain.Shipment, error)
}
