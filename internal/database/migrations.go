package database

import (
	"database/sql"
	"fmt"

	"github.com/phuslu/log"
)

// Schema statements shared by production migrations and the isolated test
// schemas created by repository/testutil.
const (
	CreateBrandsTable = `
	CREATE TABLE IF NOT EXISTS brands (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) UNIQUE NOT NULL,
		short_code VARCHAR(5) UNIQUE NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	CreateProductsTable = `
	CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		sku VARCHAR(64) UNIQUE NOT NULL,
		category VARCHAR(100) NOT NULL,
		subcategory VARCHAR(100) NOT NULL,
		brand_id BIGINT REFERENCES brands(id),
		quantity INTEGER NOT NULL DEFAULT 0,
		length_cm DOUBLE PRECISION,
		width_cm DOUBLE PRECISION,
		height_cm DOUBLE PRECISION,
		weight_kg DOUBLE PRECISION,
		status VARCHAR(50) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_products_sku ON products(sku);
	CREATE INDEX IF NOT EXISTS idx_products_status ON products(status);
	`
)

// RunMigrations creates the necessary database tables
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	log.Info().Msg("Database migrations completed successfully")
	return nil
}

// Migrate applies the schema to the given connection. Brands are created
// first because products reference them.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(CreateBrandsTable); err != nil {
		return fmt.Errorf("failed to create brands table: %w", err)
	}
	if _, err := db.Exec(CreateProductsTable); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}
	return nil
}
