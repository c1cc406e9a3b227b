package ports

import (
	"context"

	"shipment-tracker/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ShipmentRepository defines persistence operations for shipments.
// Lookups return (nil, nil) when no row matches. Methods accepting pgx.Tx run
// inside the ingest transaction so a failed write leaves no partial row.
type ShipmentRepository interface {
	GetByTrackNo(ctx context.Context, trackNo string) (*domain.Shipment, error)
	GetByTrackNoTx(ctx context.Context, tx pgx.Tx, trackNo string) (*domain.Shipment, error)
	Insert(ctx context.Context, tx pgx.Tx, s *domain.Shipment) error
	Update(ctx context.Context, tx pgx.Tx, s *domain.Shipment) error

	// ListRecent returns up to limit rows, most recently updated first.
	// It degrades through progressively simpler orderings rather than failing:
	// full ordering -> id descending -> unordered.
	ListRecent(ctx context.Context, limit int) ([]domain.Shipment, error)
	ListByCustomer(ctx context.Context, params CustomerListParams) ([]domain.Shipment, error)
}

// CustomerListParams holds the filter for per-customer shipment listings.
type CustomerListParams struct {
	CustomerID   string
	StatusFilter string // case-insensitive substring match on status_desc; empty = no filter
	Limit        int
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
