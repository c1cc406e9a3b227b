package postgres

import (
	"context"
	"fmt"
)

// InitSchema creates the shipments table and applies additive column
// migrations. Statements are idempotent; the table only ever grows columns.
func InitSchema(ctx context.Context, pool Pool) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS shipments (
  id BIGSERIAL PRIMARY KEY,
  track_no TEXT NOT NULL,
  customer_id TEXT NULL,
  invoice_number TEXT NULL,
  status_code INT NOT NULL DEFAULT 0,
  status_desc TEXT NULL,
  exception_code TEXT NULL,
  exception_desc TEXT NULL,
  estimated_delivery TEXT NULL,
  delivered_time TEXT NULL,
  received_by TEXT NULL,
  created_at TIMESTAMPTZ NULL,
  updated_at TIMESTAMPTZ NULL,
  UNIQUE (track_no)
)`,
		`CREATE INDEX IF NOT EXISTS idx_shipments_customer_id ON shipments(customer_id)`,
		// Carrier API field set, added after the initial deployment.
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS service_code TEXT`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS package_weight DOUBLE PRECISION`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS package_dimensions TEXT`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS shipper_name TEXT`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS shipper_address TEXT`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS recipient_name TEXT`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS recipient_address TEXT`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS current_location TEXT`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS last_scan_location TEXT`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS last_scan_time TIMESTAMPTZ`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS delivery_attempt_count INT DEFAULT 0`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS delivery_instructions TEXT`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS signature_required BOOLEAN DEFAULT FALSE`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS ref1 TEXT`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS ref2 TEXT`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS ref3 TEXT`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS shipping_cost DOUBLE PRECISION`,
		`ALTER TABLE shipments ADD COLUMN IF NOT EXISTS insurance_value DOUBLE PRECISION`,
		// Migrations for older schemas (when the numeric columns were nullable).
		`UPDATE shipments SET status_code = 0 WHERE status_code IS NULL`,
		`UPDATE shipments SET delivery_attempt_count = 0 WHERE delivery_attempt_count IS NULL`,
		`UPDATE shipments SET signature_required = FALSE WHERE signature_required IS NULL`,
		`ALTER TABLE shipments ALTER COLUMN status_code SET DEFAULT 0`,
		`ALTER TABLE shipments ALTER COLUMN status_code SET NOT NULL`,
		`ALTER TABLE shipments ALTER COLUMN delivery_attempt_count SET NOT NULL`,
		`ALTER TABLE shipments ALTER COLUMN signature_required SET NOT NULL`,
	}

	for _, q := range stmts {
		if _, err := pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
