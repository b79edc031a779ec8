package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/skulab/stockroom/internal/database"
	"github.com/skulab/stockroom/internal/models"
)

// Repository errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrBrandNotFound   = errors.New("brand not found")
	ErrDuplicateSKU    = errors.New("sku already exists")
	ErrDuplicateBrand  = errors.New("brand name or short code already exists")
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// ProductRepository handles database operations for products
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		db: database.DB,
	}
}

// NewProductRepositoryWithDB creates a new product repository with a specific database connection
func NewProductRepositoryWithDB(db *sql.DB) *ProductRepository {
	return &ProductRepository{
		db: db,
	}
}

// CreateProduct inserts a new product and assigns its generated ID
func (r *ProductRepository) CreateProduct(product *models.Product) error {
	query := `
		INSERT INTO products (name, sku, category, subcategory, quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(query,
		product.Name,
		product.SKU,
		product.Category,
		product.Subcategory,
		product.Quantity,
		product.Status,
		now,
		now,
	).Scan(&product.ID)

	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateSKU, product.SKU)
	}
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	product.CreatedAt = now
	product.UpdatedAt = now

	return nil
}

const productColumns = `
	id, name, sku, category, subcategory,
	COALESCE(brand_id, 0), quantity,
	length_cm, width_cm, height_cm, weight_kg,
	status, created_at, updated_at
`

// scanProduct reads one product row, folding nullable dimension columns
// into a Dimensions value only when all of them are present.
func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	product := &models.Product{}
	var length, width, height, weight sql.NullFloat64

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.SKU,
		&product.Category,
		&product.Subcategory,
		&product.BrandID,
		&product.Quantity,
		&length,
		&width,
		&height,
		&weight,
		&product.Status,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if length.Valid && width.Valid && height.Valid && weight.Valid {
		product.Dimensions = &models.Dimensions{
			Length: length.Float64,
			Width:  width.Float64,
			Height: height.Float64,
			Weight: weight.Float64,
		}
	}

	return product, nil
}

// GetProductByID retrieves a product by its ID
func (r *ProductRepository) GetProductByID(id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// GetProductBySKU retrieves a product by its SKU
func (r *ProductRepository) GetProductBySKU(sku string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`

	product, err := scanProduct(r.db.QueryRow(query, sku))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// ListProducts returns all products, oldest first
func (r *ProductRepository) ListProducts() ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// SearchBySKU returns products whose SKU matches exactly
func (r *ProductRepository) SearchBySKU(sku string) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1 ORDER BY id`

	rows, err := r.db.Query(query, sku)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

// UpdateDimensions stores product dimensions and quantity
func (r *ProductRepository) UpdateDimensions(id int64, dims models.Dimensions, quantity int) error {
	query := `
		UPDATE products
		SET length_cm = $1, width_cm = $2, height_cm = $3, weight_kg = $4, quantity = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := r.db.Exec(query, dims.Length, dims.Width, dims.Height, dims.Weight, quantity, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update dimensions: %w", err)
	}

	return checkAffected(result)
}

// UpdateStatus updates the product status
func (r *ProductRepository) UpdateStatus(id int64, status models.ProductStatus) error {
	query := `UPDATE products SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return checkAffected(result)
}

// UpdateBrand links the product to a brand
func (r *ProductRepository) UpdateBrand(id, brandID int64) error {
	query := `UPDATE products SET brand_id = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, brandID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update brand: %w", err)
	}

	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
