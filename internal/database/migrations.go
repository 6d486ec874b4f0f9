package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables in the order they must be truncated
var Tables = []string{"order_lines", "orders", "accounts", "products"}

var migrations = []struct {
	name string
	sql  string
}{
	{"products", `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		slug VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category VARCHAR(50) NOT NULL,
		price BIGINT NOT NULL,
		currency VARCHAR(3) NOT NULL,
		sizes TEXT[] NOT NULL DEFAULT '{}',
		colors TEXT[] NOT NULL DEFAULT '{}',
		in_stock BOOLEAN NOT NULL DEFAULT TRUE,
		sku VARCHAR(255) NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
	`},
	{"accounts", `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		username VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email ON accounts(lower(email));
	`},
	{"orders", `
	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		reference VARCHAR(255) UNIQUE NOT NULL,
		email VARCHAR(255) NOT NULL,
		currency VARCHAR(3) NOT NULL,
		status VARCHAR(50) NOT NULL,
		card_last4 VARCHAR(4),
		ship_first_name VARCHAR(255) NOT NULL,
		ship_last_name VARCHAR(255) NOT NULL,
		ship_phone VARCHAR(50) NOT NULL,
		ship_address VARCHAR(255) NOT NULL,
		ship_city VARCHAR(255) NOT NULL,
		ship_postcode VARCHAR(20) NOT NULL,
		ship_country VARCHAR(100) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_orders_reference ON orders(reference);
	CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
	`},
	{"order_lines", `
	CREATE TABLE IF NOT EXISTS order_lines (
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		product_slug VARCHAR(255) NOT NULL,
		product_name VARCHAR(255) NOT NULL,
		size VARCHAR(20) NOT NULL DEFAULT '',
		color VARCHAR(50) NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL,
		unit_price BIGINT NOT NULL,
		PRIMARY KEY (order_id, position)
	);
	`},
}

// RunMigrations creates the fixture tables. It is safe to run repeatedly.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("failed to create %s table: %w", m.name, err)
		}
	}
	return nil
}
