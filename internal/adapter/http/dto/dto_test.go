package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseNumber_UnmarshalVariants(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantInt   int
		wantFloat float64
	}{
		{"quoted integer", `{"statusCode":"10"}`, 10, 10},
		{"bare integer", `{"statusCode":20}`, 20, 20},
		{"bare float", `{"statusCode":2.5}`, 2, 2.5},
		{"quoted float", `{"statusCode":"45.50"}`, 45, 45.5},
		{"non-numeric", `{"statusCode":"pending"}`, 0, 0},
		{"null", `{"statusCode":null}`, 0, 0},
		{"absent", `{}`, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req WebhookRequest
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &req))
			assert.Equal(t, tt.wantInt, req.StatusCode.Int())
			assert.Equal(t, tt.wantFloat, req.StatusCode.Float())
		})
	}
}

func TestWebhookRequest_ToUpdate_MapsExternalKeys(t *testing.T) {
	payload := `{
		"trackNo": "1Z999",
		"ref1": "CUST001",
		"ref2": "INV-42",
		"statusCode": "10",
		"statusDescHeb": "In Transit",
		"estimateDelivery": "2025-08-06",
		"packageWeight": 2.5,
		"signatureRequired": true,
		"lastScanTime": "2025-08-02 09:30:00"
	}`

	var req WebhookRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	u := req.ToUpdate()
	assert.Equal(t, 10, u.StatusCode)
	assert.Equal(t, "In Transit", *u.StatusDesc)
	assert.Equal(t, "2025-08-06", *u.EstimatedDelivery)
	assert.Equal(t, 2.5, u.PackageWeight)
	assert.True(t, u.SignatureRequired)
	assert.Equal(t, "CUST001", *u.Ref1)
	require.NotNil(t, u.LastScanTime)
	assert.Equal(t, time.Date(2025, 8, 2, 9, 30, 0, 0, time.UTC), *u.LastScanTime)
}

func TestWebhookRequest_ToUpdate_AbsentFields(t *testing.T) {
	var req WebhookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"trackNo":"1Z1"}`), &req))

	u := req.ToUpdate()
	assert.Equal(t, 0, u.StatusCode)
	assert.Nil(t, u.StatusDesc)
	assert.Nil(t, u.LastScanTime)
	assert.False(t, u.SignatureRequired)
	assert.Zero(t, u.PackageWeight)
}

func TestParseScanTime_Unparseable(t *testing.T) {
	bad := "last tuesday"
	assert.Nil(t, parseScanTime(&bad))
	assert.Nil(t, parseScanTime(nil))
}
