package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewShipment_AliasesRefFields(t *testing.T) {
	now := time.Now().UTC()
	u := &ShipmentUpdate{
		StatusCode: 10,
		StatusDesc: strPtr("In Transit"),
		Ref1:       strPtr("CUST001"),
		Ref2:       strPtr("INV-42"),
		Ref3:       strPtr("PRIORITY"),
	}

	s := NewShipment("1Z999", u, now)

	require.NotNil(t, s.CustomerID)
	assert.Equal(t, "CUST001", *s.CustomerID)
	require.NotNil(t, s.InvoiceNumber)
	assert.Equal(t, "INV-42", *s.InvoiceNumber)
	require.NotNil(t, s.Ref1)
	assert.Equal(t, "CUST001", *s.Ref1)
	require.NotNil(t, s.Ref3)
	assert.Equal(t, "PRIORITY", *s.Ref3)

	assert.Equal(t, 10, s.StatusCode)
	require.NotNil(t, s.CreatedAt)
	require.NotNil(t, s.UpdatedAt)
	assert.Equal(t, now, *s.CreatedAt)
	assert.Equal(t, now, *s.UpdatedAt)
}

func TestApplyTo_AbsentStringsUntouched(t *testing.T) {
	created := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	s := &Shipment{
		TrackNo:           "1Z1",
		CustomerID:        strPtr("CUST001"),
		StatusCode:        10,
		StatusDesc:        strPtr("In Transit"),
		EstimatedDelivery: strPtr("2025-08-06"),
		CreatedAt:         &created,
		UpdatedAt:         &created,
	}

	now := created.Add(24 * time.Hour)
	u := &ShipmentUpdate{
		StatusCode:    20,
		StatusDesc:    strPtr("Delivered"),
		DeliveredTime: strPtr("2025-08-02 14:30:00"),
		ReceivedBy:    strPtr("Sara Levi"),
	}
	u.ApplyTo(s, now)

	assert.Equal(t, 20, s.StatusCode)
	assert.Equal(t, "Delivered", *s.StatusDesc)
	assert.Equal(t, "2025-08-02 14:30:00", *s.DeliveredTime)
	assert.Equal(t, "Sara Levi", *s.ReceivedBy)
	// Absent string fields keep their previous values.
	assert.Equal(t, "2025-08-06", *s.EstimatedDelivery)
	assert.Equal(t, "CUST001", *s.CustomerID)
	// created_at untouched, updated_at advanced.
	assert.Equal(t, created, *s.CreatedAt)
	assert.Equal(t, now, *s.UpdatedAt)
}

func TestApplyTo_AbsentNumericsReset(t *testing.T) {
	weight := 2.5
	s := &Shipment{
		TrackNo:              "1Z1",
		StatusCode:           10,
		PackageWeight:        &weight,
		DeliveryAttemptCount: 2,
		SignatureRequired:    true,
	}

	u := &ShipmentUpdate{} // everything absent
	u.ApplyTo(s, time.Now().UTC())

	assert.Equal(t, 0, s.StatusCode)
	assert.Nil(t, s.PackageWeight)
	assert.Equal(t, 0, s.DeliveryAttemptCount)
	assert.False(t, s.SignatureRequired)
}

func TestApplyTo_SetsExtendedFields(t *testing.T) {
	s := &Shipment{TrackNo: "1Z1"}
	scan := time.Date(2025, 8, 2, 9, 30, 0, 0, time.UTC)

	u := &ShipmentUpdate{
		StatusCode:           15,
		ServiceCode:          strPtr("UPS_GROUND"),
		PackageWeight:        3.2,
		CurrentLocation:      strPtr("Tel Aviv hub"),
		LastScanTime:         &scan,
		DeliveryAttemptCount: 1,
		SignatureRequired:    true,
		ShippingCost:         45.5,
	}
	u.ApplyTo(s, time.Now().UTC())

	assert.Equal(t, "UPS_GROUND", *s.ServiceCode)
	assert.Equal(t, 3.2, *s.PackageWeight)
	assert.Equal(t, "Tel Aviv hub", *s.CurrentLocation)
	assert.Equal(t, scan, *s.LastScanTime)
	assert.Equal(t, 1, s.DeliveryAttemptCount)
	assert.True(t, s.SignatureRequired)
	assert.Equal(t, 45.5, *s.ShippingCost)
	assert.Nil(t, s.InsuranceValue)
}
