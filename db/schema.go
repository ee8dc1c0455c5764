package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements creates the storefront tables when they are missing.
// Prices are NUMERIC(10,2) so they round-trip through decimal.Decimal without float error.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(160) NOT NULL,
		slug VARCHAR(180) NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS colors (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		hex_code VARCHAR(7) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS variants (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		color_id BIGINT REFERENCES colors(id) ON DELETE SET NULL,
		sku VARCHAR(60) NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		image_url TEXT NOT NULL DEFAULT '',
		drive_file_id TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS shipping_zones (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(80) NOT NULL UNIQUE,
		cost NUMERIC(10,2) NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS carts (
		id BIGSERIAL PRIMARY KEY,
		session_key VARCHAR(64) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_carts_session_key ON carts(session_key) WHERE is_active`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id BIGSERIAL PRIMARY KEY,
		cart_id BIGINT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
		variant_id BIGINT NOT NULL REFERENCES variants(id) ON DELETE RESTRICT,
		quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity > 0),
		UNIQUE (cart_id, variant_id)
	)`,
}

// EnsureSchema runs the idempotent schema statements inside one transaction
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}
