package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/skulab/stockroom/internal/database"
	"github.com/skulab/stockroom/internal/models"
)

// BrandRepository handles database operations for brands
type BrandRepository struct {
	db *sql.DB
}

// NewBrandRepository creates a new brand repository
func NewBrandRepository() *BrandRepository {
	return &BrandRepository{
		db: database.DB,
	}
}

// NewBrandRepositoryWithDB creates a new brand repository with a specific database connection
func NewBrandRepositoryWithDB(db *sql.DB) *BrandRepository {
	return &BrandRepository{
		db: db,
	}
}

// CreateBrand inserts a new brand and assigns its generated ID
func (r *BrandRepository) CreateBrand(brand *models.Brand) error {
	query := `
		INSERT INTO brands (name, short_code, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(query, brand.Name, brand.ShortCode, now).Scan(&brand.ID)

	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateBrand, brand.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}

	brand.CreatedAt = now

	return nil
}

// GetBrandByID retrieves a brand by its ID
func (r *BrandRepository) GetBrandByID(id int64) (*models.Brand, error) {
	query := `SELECT id, name, short_code, created_at FROM brands WHERE id = $1`

	brand := &models.Brand{}
	err := r.db.QueryRow(query, id).Scan(&brand.ID, &brand.Name, &brand.ShortCode, &brand.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBrandNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	return brand, nil
}

// GetBrandByName retrieves a brand by its exact name
func (r *BrandRepository) GetBrandByName(name string) (*models.Brand, error) {
	query := `SELECT id, name, short_code, created_at FROM brands WHERE name = $1`

	brand := &models.Brand{}
	err := r.db.QueryRow(query, name).Scan(&brand.ID, &brand.Name, &brand.ShortCode, &brand.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBrandNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	return brand, nil
}

// ListBrands returns all brands, oldest first
func (r *BrandRepository) ListBrands() ([]*models.Brand, error) {
	query := `SELECT id, name, short_code, created_at FROM brands ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	var brands []*models.Brand
	for rows.Next() {
		brand := &models.Brand{}
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.ShortCode, &brand.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	return brands, nil
}
