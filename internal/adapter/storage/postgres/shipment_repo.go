package postgres

import (
	"context"
	"errors"
	"fmt"

	"shipment-tracker/internal/core/domain"
	"shipment-tracker/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

const defaultListLimit = 50

// shipmentColumns is the canonical SELECT column list; scanShipment must stay
// in sync with it.
const shipmentColumns = `id, track_no, customer_id, invoice_number, status_code, status_desc,
	exception_code, exception_desc, estimated_delivery, delivered_time, received_by,
	service_code, package_weight, package_dimensions, shipper_name, shipper_address,
	recipient_name, recipient_address, current_location, last_scan_location, last_scan_time,
	delivery_attempt_count, delivery_instructions, signature_required, ref1, ref2, ref3,
	shipping_cost, insurance_value, created_at, updated_at`

// ShipmentRepo implements ports.ShipmentRepository.
type ShipmentRepo struct {
	pool Pool
}

// NewShipmentRepo creates a new ShipmentRepo.
func NewShipmentRepo(pool Pool) *ShipmentRepo {
	return &ShipmentRepo{pool: pool}
}

// GetByTrackNo fetches a shipment by exact tracking number.
func (r *ShipmentRepo) GetByTrackNo(ctx context.Context, trackNo string) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE track_no = $1`
	return scanShipment(r.pool.QueryRow(ctx, query, trackNo))
}

// GetByTrackNoTx fetches a shipment by tracking number inside the ingest
// transaction. No row lock: concurrent webhooks for the same tracking number
// race last-write-wins.
func (r *ShipmentRepo) GetByTrackNoTx(ctx context.Context, tx pgx.Tx, trackNo string) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE track_no = $1`
	return scanShipment(tx.QueryRow(ctx, query, trackNo))
}

// Insert creates the row for a first-seen tracking number.
func (r *ShipmentRepo) Insert(ctx context.Context, tx pgx.Tx, s *domain.Shipment) error {
	query := `INSERT INTO shipments (track_no, customer_id, invoice_number, status_code, status_desc,
		exception_code, exception_desc, estimated_delivery, delivered_time, received_by,
		service_code, package_weight, package_dimensions, shipper_name, shipper_address,
		recipient_name, recipient_address, current_location, last_scan_location, last_scan_time,
		delivery_attempt_count, delivery_instructions, signature_required, ref1, ref2, ref3,
		shipping_cost, insurance_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30)`

	_, err := tx.Exec(ctx, query,
		s.TrackNo, s.CustomerID, s.InvoiceNumber, s.StatusCode, s.StatusDesc,
		s.ExceptionCode, s.ExceptionDesc, s.EstimatedDelivery, s.DeliveredTime, s.ReceivedBy,
		s.ServiceCode, s.PackageWeight, s.PackageDimensions, s.ShipperName, s.ShipperAddress,
		s.RecipientName, s.RecipientAddress, s.CurrentLocation, s.LastScanLocation, s.LastScanTime,
		s.DeliveryAttemptCount, s.DeliveryInstructions, s.SignatureRequired, s.Ref1, s.Ref2, s.Ref3,
		s.ShippingCost, s.InsuranceValue, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// Update overwrites the mutable columns of an existing row. customer_id,
// invoice_number and created_at are fixed at first insert and never rewritten.
func (r *ShipmentRepo) Update(ctx context.Context, tx pgx.Tx, s *domain.Shipment) error {
	query := `UPDATE shipments SET
		status_code=$1, status_desc=$2, exception_code=$3, exception_desc=$4,
		estimated_delivery=$5, delivered_time=$6, received_by=$7,
		service_code=$8, package_weight=$9, package_dimensions=$10,
		shipper_name=$11, shipper_address=$12, recipient_name=$13, recipient_address=$14,
		current_location=$15, last_scan_location=$16, last_scan_time=$17,
		delivery_attempt_count=$18, delivery_instructions=$19, signature_required=$20,
		ref1=$21, ref2=$22, ref3=$23, shipping_cost=$24, insurance_value=$25, updated_at=$26
		WHERE track_no=$27`

	tag, err := tx.Exec(ctx, query,
		s.StatusCode, s.StatusDesc, s.ExceptionCode, s.ExceptionDesc,
		s.EstimatedDelivery, s.DeliveredTime, s.ReceivedBy,
		s.ServiceCode, s.PackageWeight, s.PackageDimensions,
		s.ShipperName, s.ShipperAddress, s.RecipientName, s.RecipientAddress,
		s.CurrentLocation, s.LastScanLocation, s.LastScanTime,
		s.DeliveryAttemptCount, s.DeliveryInstructions, s.SignatureRequired,
		s.Ref1, s.Ref2, s.Ref3, s.ShippingCost, s.InsuranceValue, s.UpdatedAt,
		s.TrackNo,
	)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shipment not found: %s", s.TrackNo)
	}
	return nil
}

// ListRecent fetches up to limit rows, most recently updated first.
// Tiered degradation: the full ordering, then id descending, then unordered.
// Each tier only runs after the previous one failed; the error propagates only
// when the last tier fails too.
func (r *ShipmentRepo) ListRecent(ctx context.Context, limit int) ([]domain.Shipment, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	orderings := []string{
		` ORDER BY updated_at DESC NULLS LAST, created_at DESC NULLS LAST, id DESC`,
		` ORDER BY id DESC`,
		``,
	}

	var lastErr error
	for _, ordering := range orderings {
		query := `SELECT ` + shipmentColumns + ` FROM shipments` + ordering + ` LIMIT $1`
		shipments, err := r.queryShipments(ctx, query, limit)
		if err != nil {
			lastErr = err
			continue
		}
		return shipments, nil
	}
	return nil, fmt.Errorf("list shipments: %w", lastErr)
}

// ListByCustomer fetches a customer's shipments, optionally narrowed by a
// case-insensitive substring of the status description.
func (r *ShipmentRepo) ListByCustomer(ctx context.Context, params ports.CustomerListParams) ([]domain.Shipment, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE customer_id = $1`
	args := []any{params.CustomerID}

	if params.StatusFilter != "" {
		query += ` AND status_desc ILIKE '%' || $2 || '%'`
		args = append(args, params.StatusFilter)
	}

	query += fmt.Sprintf(` ORDER BY updated_at DESC NULLS LAST LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	shipments, err := r.queryShipments(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments by customer: %w", err)
	}
	return shipments, nil
}

func (r *ShipmentRepo) queryShipments(ctx context.Context, query string, args ...any) ([]domain.Shipment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]domain.Shipment, 0)
	for rows.Next() {
		var s domain.Shipment
		if err := scanShipmentFields(rows, &s); err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shipments, nil
}

func scanShipment(row pgx.Row) (*domain.Shipment, error) {
	s := &domain.Shipment{}
	if err := scanShipmentFields(row, s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return s, nil
}

func scanShipmentFields(row pgx.Row, s *domain.Shipment) error {
	return row.Scan(
		&s.ID, &s.TrackNo, &s.CustomerID, &s.InvoiceNumber, &s.StatusCode, &s.StatusDesc,
		&s.ExceptionCode, &s.ExceptionDesc, &s.EstimatedDelivery, &s.DeliveredTime, &s.ReceivedBy,
		&s.ServiceCode, &s.PackageWeight, &s.PackageDimensions, &s.ShipperName, &s.ShipperAddress,
		&s.RecipientName, &s.RecipientAddress, &s.CurrentLocation, &s.LastScanLocation, &s.LastScanTime,
		&s.DeliveryAttemptCount, &s.DeliveryInstructions, &s.SignatureRequired, &s.Ref1, &s.Ref2, &s.Ref3,
		&s.ShippingCost, &s.InsuranceValue, &s.CreatedAt, &s.UpdatedAt,
	)
}
