package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phuslu/log"

	"github.com/skulab/stockroom/internal/models"
	"github.com/skulab/stockroom/internal/repository"
)

// maxSKUAttempts bounds how often a colliding SKU is regenerated before
// the create is reported as failed.
const maxSKUAttempts = 5

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	CreateProduct(product *models.Product) error
	GetProductByID(id int64) (*models.Product, error)
	GetProductBySKU(sku string) (*models.Product, error)
	ListProducts() ([]*models.Product, error)
	SearchBySKU(sku string) ([]*models.Product, error)
	UpdateDimensions(id int64, dims models.Dimensions, quantity int) error
	UpdateStatus(id int64, status models.ProductStatus) error
	UpdateBrand(id, brandID int64) error
}

// BrandRepository defines the interface for brand persistence
type BrandRepository interface {
	CreateBrand(brand *models.Brand) error
	GetBrandByID(id int64) (*models.Brand, error)
	GetBrandByName(name string) (*models.Brand, error)
	ListBrands() ([]*models.Brand, error)
}

// CatalogService handles product and brand business logic
type CatalogService interface {
	CreateProduct(name, category, subcategory string) (*models.Product, error)
	GetProduct(id int64) (*models.Product, error)
	GetProductBySKU(sku string) (*models.Product, error)
	SearchInventory(sku string) ([]*models.Product, error)
	SaveDimensions(id int64, dims models.Dimensions, quantity int) (*models.Product, error)
	AssignBrand(productID, brandID int64) (*models.Product, error)
	DiscontinueProduct(id int64) error
	CreateBrand(name, shortCode string) (*models.Brand, error)
	GetBrand(id int64) (*models.Brand, error)
	ListBrands() ([]*models.Brand, error)
}

// CatalogServiceImpl implements CatalogService
type CatalogServiceImpl struct {
	productRepo ProductRepository
	brandRepo   BrandRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo ProductRepository, brandRepo BrandRepository) CatalogService {
	return &CatalogServiceImpl{
		productRepo: productRepo,
		brandRepo:   brandRepo,
	}
}

// CreateProduct creates a new draft product with a generated SKU. When the
// generated SKU collides with an existing product a fresh one is drawn,
// up to maxSKUAttempts times.
func (s *CatalogServiceImpl) CreateProduct(name, category, subcategory string) (*models.Product, error) {
	product, err := models.NewProduct(name, category, subcategory)
	if err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}

	for attempt := 1; ; attempt++ {
		err := s.productRepo.CreateProduct(product)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicateSKU) || attempt >= maxSKUAttempts {
			return nil, fmt.Errorf("failed to create product: %w", err)
		}
		log.Warn().Str("sku", product.SKU).Int("attempt", attempt).Msg("SKU collision, regenerating")
		product.SKU = models.GenerateSKU(name)
	}

	log.Info().Int64("id", product.ID).Str("sku", product.SKU).Str("name", product.Name).Msg("product created")
	return product, nil
}

// GetProduct retrieves a product by its ID
func (s *CatalogServiceImpl) GetProduct(id int64) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// GetProductBySKU retrieves a product by its SKU
func (s *CatalogServiceImpl) GetProductBySKU(sku string) (*models.Product, error) {
	product, err := s.productRepo.GetProductBySKU(sku)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// SearchInventory returns products matching the given SKU. A blank SKU
// returns the full inventory listing.
func (s *CatalogServiceImpl) SearchInventory(sku string) ([]*models.Product, error) {
	sku = strings.TrimSpace(sku)

	if sku == "" {
		products, err := s.productRepo.ListProducts()
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		return products, nil
	}

	products, err := s.productRepo.SearchBySKU(sku)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// SaveDimensions records physical dimensions and stock quantity for a
// product. Saving dimensions on a draft product activates it.
func (s *CatalogServiceImpl) SaveDimensions(id int64, dims models.Dimensions, quantity int) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	// Use domain methods to validate the transition
	if err := product.SetDimensions(dims); err != nil {
		return nil, err
	}
	if err := product.SetQuantity(quantity); err != nil {
		return nil, err
	}

	if err := s.productRepo.UpdateDimensions(id, dims, quantity); err != nil {
		return nil, fmt.Errorf("failed to save dimensions: %w", err)
	}

	// A draft product with dimensions on record becomes sellable
	if product.IsDraft() {
		if err := product.Activate(); err != nil {
			return nil, err
		}
		if err := s.productRepo.UpdateStatus(id, product.Status); err != nil {
			return nil, fmt.Errorf("failed to activate product: %w", err)
		}
		log.Info().Int64("id", id).Str("sku", product.SKU).Msg("product activated")
	}

	return product, nil
}

// AssignBrand links a product to an existing brand
func (s *CatalogServiceImpl) AssignBrand(productID, brandID int64) (*models.Product, error) {
	brand, err := s.brandRepo.GetBrandByID(brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	product, err := s.productRepo.GetProductByID(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := product.AssignBrand(brand.ID); err != nil {
		return nil, err
	}

	if err := s.productRepo.UpdateBrand(productID, brand.ID); err != nil {
		return nil, fmt.Errorf("failed to assign brand: %w", err)
	}

	return product, nil
}

// DiscontinueProduct retires a product from the catalog
func (s *CatalogServiceImpl) DiscontinueProduct(id int64) error {
	product, err := s.productRepo.GetProductByID(id)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}

	if err := product.Discontinue(); err != nil {
		return err
	}

	if err := s.productRepo.UpdateStatus(id, product.Status); err != nil {
		return fmt.Errorf("failed to discontinue product: %w", err)
	}

	log.Info().Int64("id", id).Str("sku", product.SKU).Msg("product discontinued")
	return nil
}

// CreateBrand registers a new brand
func (s *CatalogServiceImpl) CreateBrand(name, shortCode string) (*models.Brand, error) {
	brand, err := models.NewBrand(name, shortCode)
	if err != nil {
		return nil, fmt.Errorf("invalid brand: %w", err)
	}

	if err := s.brandRepo.CreateBrand(brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	log.Info().Int64("id", brand.ID).Str("name", brand.Name).Msg("brand created")
	return brand, nil
}

// GetBrand retrieves a brand by its ID
func (s *CatalogServiceImpl) GetBrand(id int64) (*models.Brand, error) {
	brand, err := s.brandRepo.GetBrandByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return brand, nil
}

// ListBrands returns all registered brands
func (s *CatalogServiceImpl) ListBrands() ([]*models.Brand, error) {
	brands, err := s.brandRepo.ListBrands()
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}
