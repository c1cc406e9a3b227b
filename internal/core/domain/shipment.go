package domain

import "time"

// Shipment is one row per physical parcel, keyed by the carrier tracking number.
// Delivery date fields are loose strings straight from the carrier feed and are
// never parsed. Optional columns are pointers so legacy NULLs survive a round trip.
type Shipment struct {
	ID            int64   `json:"-"`
	TrackNo       string  `json:"track_no"`
	CustomerID    *string `json:"customer_id,omitempty"`
	InvoiceNumber *string `json:"invoice_number,omitempty"`

	StatusCode    int     `json:"status_code"`
	StatusDesc    *string `json:"status_desc,omitempty"`
	ExceptionCode *string `json:"exception_code,omitempty"`
	ExceptionDesc *string `json:"exception_desc,omitempty"`

	EstimatedDelivery *string `json:"estimated_delivery,omitempty"`
	DeliveredTime     *string `json:"delivered_time,omitempty"`
	ReceivedBy        *string `json:"received_by,omitempty"`

	ServiceCode          *string    `json:"service_code,omitempty"`
	PackageWeight        *float64   `json:"package_weight,omitempty"`
	PackageDimensions    *string    `json:"package_dimensions,omitempty"`
	ShipperName          *string    `json:"shipper_name,omitempty"`
	ShipperAddress       *string    `json:"shipper_address,omitempty"`
	RecipientName        *string    `json:"recipient_name,omitempty"`
	RecipientAddress     *string    `json:"recipient_address,omitempty"`
	CurrentLocation      *string    `json:"current_location,omitempty"`
	LastScanLocation     *string    `json:"last_scan_location,omitempty"`
	LastScanTime         *time.Time `json:"last_scan_time,omitempty"`
	DeliveryAttemptCount int        `json:"delivery_attempt_count"`
	DeliveryInstructions *string    `json:"delivery_instructions,omitempty"`
	SignatureRequired    bool       `json:"signature_required"`

	Ref1 *string `json:"ref1,omitempty"`
	Ref2 *string `json:"ref2,omitempty"`
	Ref3 *string `json:"ref3,omitempty"`

	ShippingCost   *float64 `json:"shipping_cost,omitempty"`
	InsuranceValue *float64 `json:"insurance_value,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ShipmentUpdate is the typed mapping from a carrier webhook payload to
// internal shipment fields. Pointer fields distinguish "absent from payload"
// from an explicit value; the absence policy lives in ApplyTo and NewShipment,
// not in ad-hoc key lookups.
//
// Policy: string fields absent from the payload are left untouched on update.
// Numeric and boolean fields (StatusCode, DeliveryAttemptCount, PackageWeight,
// ShippingCost, InsuranceValue, SignatureRequired) reset to their zero value
// when absent, matching the carrier feed's own convention.
type ShipmentUpdate struct {
	StatusCode           int // already coerced; missing or non-numeric input is 0
	StatusDesc           *string
	ExceptionCode        *string
	ExceptionDesc        *string
	EstimatedDelivery    *string
	DeliveredTime        *string
	ReceivedBy           *string
	ServiceCode          *string
	PackageWeight        float64
	PackageDimensions    *string
	ShipperName          *string
	ShipperAddress       *string
	RecipientName        *string
	RecipientAddress     *string
	CurrentLocation      *string
	LastScanLocation     *string
	LastScanTime         *time.Time
	DeliveryAttemptCount int
	DeliveryInstructions *string
	SignatureRequired    bool
	Ref1                 *string
	Ref2                 *string
	Ref3                 *string
	ShippingCost         float64
	InsuranceValue       float64
}

// ApplyTo overlays the update onto an existing shipment and stamps updated_at.
// created_at is never touched after the first insert.
func (u *ShipmentUpdate) ApplyTo(s *Shipment, now time.Time) {
	s.StatusCode = u.StatusCode
	setIfPresent(&s.StatusDesc, u.StatusDesc)
	setIfPresent(&s.ExceptionCode, u.ExceptionCode)
	setIfPresent(&s.ExceptionDesc, u.ExceptionDesc)
	setIfPresent(&s.EstimatedDelivery, u.EstimatedDelivery)
	setIfPresent(&s.DeliveredTime, u.DeliveredTime)
	setIfPresent(&s.ReceivedBy, u.ReceivedBy)
	setIfPresent(&s.ServiceCode, u.ServiceCode)
	setIfPresent(&s.PackageDimensions, u.PackageDimensions)
	setIfPresent(&s.ShipperName, u.ShipperName)
	setIfPresent(&s.ShipperAddress, u.ShipperAddress)
	setIfPresent(&s.RecipientName, u.RecipientName)
	setIfPresent(&s.RecipientAddress, u.RecipientAddress)
	setIfPresent(&s.CurrentLocation, u.CurrentLocation)
	setIfPresent(&s.LastScanLocation, u.LastScanLocation)
	setIfPresent(&s.DeliveryInstructions, u.DeliveryInstructions)
	setIfPresent(&s.Ref1, u.Ref1)
	setIfPresent(&s.Ref2, u.Ref2)
	setIfPresent(&s.Ref3, u.Ref3)
	if u.LastScanTime != nil {
		t := *u.LastScanTime
		s.LastScanTime = &t
	}

	s.PackageWeight = floatColumn(u.PackageWeight)
	s.ShippingCost = floatColumn(u.ShippingCost)
	s.InsuranceValue = floatColumn(u.InsuranceValue)
	s.DeliveryAttemptCount = u.DeliveryAttemptCount
	s.SignatureRequired = u.SignatureRequired

	s.UpdatedAt = &now
}

// NewShipment builds the row for a first-seen tracking number. ref1 doubles as
// customer_id and ref2 as invoice_number: the carrier reuses its reference
// slots for those identifiers and the query API keys off the aliases.
func NewShipment(trackNo string, u *ShipmentUpdate, now time.Time) *Shipment {
	s := &Shipment{
		TrackNo:       trackNo,
		CustomerID:    clone(u.Ref1),
		InvoiceNumber: clone(u.Ref2),
		CreatedAt:     &now,
	}
	u.ApplyTo(s, now)
	return s
}

func setIfPresent(dst **string, src *string) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func floatColumn(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
