package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS delivery_settings (
		id              SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		min_days        INTEGER,
		default_days    TEXT[] NOT NULL DEFAULT '{}',
		excluded_dates  TEXT[] NOT NULL DEFAULT '{}',
		blackout_ranges TEXT[] NOT NULL DEFAULT '{}',
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS delivery_category_days (
		position    INTEGER PRIMARY KEY,
		category_id TEXT NOT NULL,
		days        TEXT[] NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS product_categories (
		product_id  TEXT NOT NULL,
		category_id TEXT NOT NULL,
		PRIMARY KEY (product_id, category_id)
	)`,
	`CREATE TABLE IF NOT EXISTS product_delivery_rules (
		product_id    TEXT PRIMARY KEY,
		until_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		until_date    TEXT NOT NULL DEFAULT '',
		delivery_days TEXT[] NOT NULL DEFAULT '{}',
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_delivery_dates (
		order_id      BIGINT PRIMARY KEY,
		delivery_date DATE NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the service tables when they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
