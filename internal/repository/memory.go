package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/skulab/stockroom/internal/models"
)

// MemoryProductRepository is an in-memory product store used by unit tests
// and hermetic end-to-end runs. It mirrors the behavior of the Postgres
// repository, including sentinel errors.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[int64]*models.Product
	bySKU    map[string]int64
	nextID   int64
}

// NewMemoryProductRepository creates an empty in-memory product repository
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int64]*models.Product),
		bySKU:    make(map[string]int64),
		nextID:   1,
	}
}

// cloneProduct copies a product so callers never alias stored state
func cloneProduct(p *models.Product) *models.Product {
	clone := *p
	if p.Dimensions != nil {
		dims := *p.Dimensions
		clone.Dimensions = &dims
	}
	return &clone
}

// CreateProduct stores a new product and assigns its ID
func (r *MemoryProductRepository) CreateProduct(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bySKU[product.SKU]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSKU, product.SKU)
	}

	now := time.Now()
	product.ID = r.nextID
	r.nextID++
	product.CreatedAt = now
	product.UpdatedAt = now

	r.products[product.ID] = cloneProduct(product)
	r.bySKU[product.SKU] = product.ID

	return nil
}

// GetProductByID retrieves a product by its ID
func (r *MemoryProductRepository) GetProductByID(id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return cloneProduct(product), nil
}

// GetProductBySKU retrieves a product by its SKU
func (r *MemoryProductRepository) GetProductBySKU(sku string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySKU[sku]
	if !ok {
		return nil, ErrProductNotFound
	}
	return cloneProduct(r.products[id]), nil
}

// ListProducts returns all products, oldest first
func (r *MemoryProductRepository) ListProducts() ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*models.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, cloneProduct(p))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	return products, nil
}

// SearchBySKU returns products whose SKU matches exactly
func (r *MemoryProductRepository) SearchBySKU(sku string) ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySKU[sku]
	if !ok {
		return nil, nil
	}
	return []*models.Product{cloneProduct(r.products[id])}, nil
}

// UpdateDimensions stores product dimensions and quantity
func (r *MemoryProductRepository) UpdateDimensions(id int64, dims models.Dimensions, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return ErrProductNotFound
	}

	d := dims
	product.Dimensions = &d
	product.Quantity = quantity
	product.UpdatedAt = time.Now()

	return nil
}

// UpdateStatus updates the product status
func (r *MemoryProductRepository) UpdateStatus(id int64, status models.ProductStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return ErrProductNotFound
	}

	product.Status = status
	product.UpdatedAt = time.Now()

	return nil
}

// UpdateBrand links the product to a brand
func (r *MemoryProductRepository) UpdateBrand(id, brandID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return ErrProductNotFound
	}

	product.BrandID = brandID
	product.UpdatedAt = time.Now()

	return nil
}

// MemoryBrandRepository is an in-memory brand store
type MemoryBrandRepository struct {
	mu     sync.RWMutex
	brands map[int64]*models.Brand
	nextID int64
}

// NewMemoryBrandRepository creates an empty in-memory brand repository
func NewMemoryBrandRepository() *MemoryBrandRepository {
	return &MemoryBrandRepository{
		brands: make(map[int64]*models.Brand),
		nextID: 1,
	}
}

// CreateBrand stores a new brand and assigns its ID
func (r *MemoryBrandRepository) CreateBrand(brand *models.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.brands {
		if existing.Name == brand.Name || existing.ShortCode == brand.ShortCode {
			return fmt.Errorf("%w: %s", ErrDuplicateBrand, brand.Name)
		}
	}

	brand.ID = r.nextID
	r.nextID++
	brand.CreatedAt = time.Now()

	clone := *brand
	r.brands[brand.ID] = &clone

	return nil
}

// GetBrandByID retrieves a brand by its ID
func (r *MemoryBrandRepository) GetBrandByID(id int64) (*models.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	brand, ok := r.brands[id]
	if !ok {
		return nil, ErrBrandNotFound
	}
	clone := *brand
	return &clone, nil
}

// GetBrandByName retrieves a brand by its exact name
func (r *MemoryBrandRepository) GetBrandByName(name string) (*models.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, brand := range r.brands {
		if brand.Name == name {
			clone := *brand
			return &clone, nil
		}
	}
	return nil, ErrBrandNotFound
}

// ListBrands returns all brands, oldest first
func (r *MemoryBrandRepository) ListBrands() ([]*models.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	brands := make([]*models.Brand, 0, len(r.brands))
	for _, b := range r.brands {
		clone := *b
		brands = append(brands, &clone)
	}
	sort.Slice(brands, func(i, j int) bool { return brands[i].ID < brands[j].ID })

	return brands, nil
}
