package service

import (
	"context"
	"fmt"
	"time"

	"shipment-tracker/internal/core/domain"
	"shipment-tracker/internal/core/ports"
	"shipment-tracker/pkg/apperror"

	"github.com/rs/zerolog"
)

// ShipmentServiceImpl implements ports.ShipmentService.
type ShipmentServiceImpl struct {
	repo       ports.ShipmentRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewShipmentService creates a new ShipmentServiceImpl.
func NewShipmentService(repo ports.ShipmentRepository, transactor ports.DBTransactor, log zerolog.Logger) *ShipmentServiceImpl {
	return &ShipmentServiceImpl{
		repo:       repo,
		transactor: transactor,
		log:        log,
	}
}

// Ingest upserts one shipment row keyed by tracking number. The select and
// write share a transaction so a failed write leaves no partial row.
func (s *ShipmentServiceImpl) Ingest(ctx context.Context, trackNo string, update *domain.ShipmentUpdate) (*domain.Shipment, error) {
	if trackNo == "" {
		return nil, apperror.ErrMissingTrackingNumber()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()

	existing, err := s.repo.GetByTrackNoTx(ctx, dbTx, trackNo)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lookup shipment: %w", err))
	}

	var shipment *domain.Shipment
	if existing != nil {
		update.ApplyTo(existing, now)
		if err := s.repo.Update(ctx, dbTx, existing); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		shipment = existing
	} else {
		shipment = domain.NewShipment(trackNo, update, now)
		if err := s.repo.Insert(ctx, dbTx, shipment); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("track_no", trackNo).
		Int("status_code", shipment.StatusCode).
		Bool("created", existing == nil).
		Msg("shipment ingested")

	return shipment, nil
}

// RecentShipments returns the dashboard listing. Ordering may be degraded;
// see ShipmentRepository.ListRecent.
func (s *ShipmentServiceImpl) RecentShipments(ctx context.Context, limit int) ([]domain.Shipment, error) {
	shipments, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return shipments, nil
}

// TrackShipment fetches one shipment by tracking number.
func (s *ShipmentServiceImpl) TrackShipment(ctx context.Context, trackNo string) (*domain.Shipment, error) {
	shipment, err := s.repo.GetByTrackNo(ctx, trackNo)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if shipment == nil {
		return nil, apperror.ErrShipmentNotFound()
	}
	return shipment, nil
}

// CustomerShipments fetches a customer's shipments with an optional
// case-insensitive status substring filter.
func (s *ShipmentServiceImpl) CustomerShipments(ctx context.Context, customerID, statusFilter string, limit int) ([]domain.Shipment, error) {
	shipments, err := s.repo.ListByCustomer(ctx, ports.CustomerListParams{
		CustomerID:   customerID,
		StatusFilter: statusFilter,
		Limit:        limit,
	})
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return shipments, nil
}
