package dto

import (
	"time"

	"shipment-tracker/internal/core/domain"
)

// WebhookRequest is the carrier notification payload. Key names are the
// carrier's, not ours; ToUpdate maps them onto internal fields. Pointer fields
// distinguish absent keys from explicit values, and numeric fields use
// LooseNumber because the feed sends them as numbers or quoted strings
// interchangeably.
type WebhookRequest struct {
	TrackNo              string      `json:"trackNo" binding:"required"`
	Ref1                 *string     `json:"ref1"`
	Ref2                 *string     `json:"ref2"`
	Ref3                 *string     `json:"ref3"`
	StatusCode           LooseNumber `json:"statusCode"`
	StatusDescHeb        *string     `json:"statusDescHeb"`
	ExceptionCode        *string     `json:"exceptionCode"`
	ExceptionDescHeb     *string     `json:"exceptionDescHeb"`
	EstimateDelivery     *string     `json:"estimateDelivery"`
	DeliveredTime        *string     `json:"deliveredTime"`
	ReceivedBy           *string     `json:"receivedBy"`
	ServiceCode          *string     `json:"serviceCode"`
	PackageWeight        LooseNumber `json:"packageWeight"`
	PackageDimensions    *string     `json:"packageDimensions"`
	ShipperName          *string     `json:"shipperName"`
	ShipperAddress       *string     `json:"shipperAddress"`
	RecipientName        *string     `json:"recipientName"`
	RecipientAddress     *string     `json:"recipientAddress"`
	CurrentLocation      *string     `json:"currentLocation"`
	LastScanLocation     *string     `json:"lastScanLocation"`
	LastScanTime         *string     `json:"lastScanTime"`
	DeliveryAttemptCount LooseNumber `json:"deliveryAttemptCount"`
	DeliveryInstructions *string     `json:"deliveryInstructions"`
	SignatureRequired    *bool       `json:"signatureRequired"`
	ShippingCost         LooseNumber `json:"shippingCost"`
	InsuranceValue       LooseNumber `json:"insuranceValue"`
}

// ToUpdate converts the external payload to the internal field mapping.
func (r *WebhookRequest) ToUpdate() *domain.ShipmentUpdate {
	u := &domain.ShipmentUpdate{
		StatusCode:           r.StatusCode.Int(),
		StatusDesc:           r.StatusDescHeb,
		ExceptionCode:        r.ExceptionCode,
		ExceptionDesc:        r.ExceptionDescHeb,
		EstimatedDelivery:    r.EstimateDelivery,
		DeliveredTime:        r.DeliveredTime,
		ReceivedBy:           r.ReceivedBy,
		ServiceCode:          r.ServiceCode,
		PackageWeight:        r.PackageWeight.Float(),
		PackageDimensions:    r.PackageDimensions,
		ShipperName:          r.ShipperName,
		ShipperAddress:       r.ShipperAddress,
		RecipientName:        r.RecipientName,
		RecipientAddress:     r.RecipientAddress,
		CurrentLocation:      r.CurrentLocation,
		LastScanLocation:     r.LastScanLocation,
		LastScanTime:         parseScanTime(r.LastScanTime),
		DeliveryAttemptCount: r.DeliveryAttemptCount.Int(),
		DeliveryInstructions: r.DeliveryInstructions,
		ShippingCost:         r.ShippingCost.Float(),
		InsuranceValue:       r.InsuranceValue.Float(),
		Ref1:                 r.Ref1,
		Ref2:                 r.Ref2,
		Ref3:                 r.Ref3,
	}
	if r.SignatureRequired != nil {
		u.SignatureRequired = *r.SignatureRequired
	}
	return u
}

// scanTimeLayouts are the formats the carrier has been seen sending.
var scanTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseScanTime parses a carrier timestamp; unparseable values are dropped
// rather than failing the whole notification.
func parseScanTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range scanTimeLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	return nil
}

// WebhookResponse confirms an accepted carrier notification.
type WebhookResponse struct {
	Message string `json:"message"`
	TrackNo string `json:"track_no"`
}

// CustomerShipmentsResponse wraps a per-customer listing.
type CustomerShipmentsResponse struct {
	CustomerID     string                 `json:"customer_id"`
	TotalShipments int                    `json:"total_shipments"`
	Shipments      []CustomerShipmentItem `json:"shipments"`
}

// CustomerShipmentItem is one row of a customer listing. Absent values
// serialize as null, which the WordPress integration relies on.
type CustomerShipmentItem struct {
	TrackNo              string  `json:"track_no"`
	InvoiceNumber        *string `json:"invoice_number"`
	StatusCode           int     `json:"status_code"`
	StatusDesc           *string `json:"status_desc"`
	ExceptionCode        *string `json:"exception_code"`
	ExceptionDesc        *string `json:"exception_desc"`
	EstimatedDelivery    *string `json:"estimated_delivery"`
	DeliveredTime        *string `json:"delivered_time"`
	ReceivedBy           *string `json:"received_by"`
	CurrentLocation      *string `json:"current_location"`
	LastScanLocation     *string `json:"last_scan_location"`
	DeliveryAttemptCount int     `json:"delivery_attempt_count"`
	CreatedAt            *string `json:"created_at"`
	UpdatedAt            *string `json:"updated_at"`
}

// TrackShipmentResponse is the full single-shipment lookup body.
type TrackShipmentResponse struct {
	TrackNo              string  `json:"track_no"`
	CustomerID           *string `json:"customer_id"`
	InvoiceNumber        *string `json:"invoice_number"`
	StatusCode           int     `json:"status_code"`
	StatusDesc           *string `json:"status_desc"`
	ExceptionCode        *string `json:"exception_code"`
	ExceptionDesc        *string `json:"exception_desc"`
	EstimatedDelivery    *string `json:"estimated_delivery"`
	DeliveredTime        *string `json:"delivered_time"`
	ReceivedBy           *string `json:"received_by"`
	ServiceCode          *string `json:"service_code"`
	CurrentLocation      *string `json:"current_location"`
	LastScanLocation     *string `json:"last_scan_location"`
	DeliveryAttemptCount int     `json:"delivery_attempt_count"`
	CreatedAt            *string `json:"created_at"`
	UpdatedAt            *string `json:"updated_at"`
}

// HealthResponse describes the API and its routes.
type HealthResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// StatusResponse is the root liveness body.
type StatusResponse struct {
	Status string `json:"status"`
}
