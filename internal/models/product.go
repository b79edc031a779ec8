package models

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// ProductStatus represents valid product states
type ProductStatus string

// Product statuses
const (
	ProductStatusDraft        ProductStatus = "draft"
	ProductStatusActive       ProductStatus = "active"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product represents a catalog product with business logic
type Product struct {
	ID          int64
	Name        string
	SKU         string
	Category    string
	Subcategory string
	BrandID     int64
	Quantity    int
	Dimensions  *Dimensions
	Status      ProductStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Domain errors
var (
	ErrInvalidProductName      = errors.New("product name cannot be empty")
	ErrInvalidCategory         = errors.New("category cannot be empty")
	ErrInvalidSubcategory      = errors.New("subcategory cannot be empty")
	ErrInvalidQuantity         = errors.New("quantity cannot be negative")
	ErrInvalidBrandID          = errors.New("brand id must be positive")
	ErrInvalidStatusTransition = errors.New("invalid product status transition")
	ErrProductDiscontinued     = errors.New("product is discontinued")
)

// skuAlphabet is the character set for generated SKU suffixes. Every
// generated SKU must match ^[A-Z0-9]+$.
const skuAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewProduct creates a new draft product with a generated SKU
func NewProduct(name, category, subcategory string) (*Product, error) {
	if err := validateProductInput(name, category, subcategory); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Product{
		Name:        strings.TrimSpace(name),
		SKU:         GenerateSKU(name),
		Category:    category,
		Subcategory: subcategory,
		Status:      ProductStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// validateProductInput validates product creation parameters
func validateProductInput(name, category, subcategory string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidProductName
	}
	if strings.TrimSpace(category) == "" {
		return ErrInvalidCategory
	}
	if strings.TrimSpace(subcategory) == "" {
		return ErrInvalidSubcategory
	}
	return nil
}

// GenerateSKU derives a stock keeping unit code from the product name plus a
// random suffix. Non-alphanumeric characters are stripped and the remainder
// uppercased, so the result always matches ^[A-Z0-9]+$.
func GenerateSKU(name string) string {
	var prefix strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			prefix.WriteRune(r)
			if prefix.Len() == 4 {
				break
			}
		}
	}
	if prefix.Len() == 0 {
		prefix.WriteString("SKU")
	}

	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = skuAlphabet[rand.Intn(len(skuAlphabet))]
	}

	return prefix.String() + string(suffix)
}

// Activate marks a draft product as active
func (p *Product) Activate() error {
	if p.Status != ProductStatusDraft {
		return fmt.Errorf("%w: cannot activate product with status %s", ErrInvalidStatusTransition, p.Status)
	}

	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	return nil
}

// Discontinue marks the product as discontinued. Discontinued products
// cannot be modified or reactivated.
func (p *Product) Discontinue() error {
	if p.Status == ProductStatusDiscontinued {
		return fmt.Errorf("%w: product is already discontinued", ErrInvalidStatusTransition)
	}

	p.Status = ProductStatusDiscontinued
	p.UpdatedAt = time.Now()
	return nil
}

// SetDimensions records the physical dimensions of the product
func (p *Product) SetDimensions(d Dimensions) error {
	if p.Status == ProductStatusDiscontinued {
		return ErrProductDiscontinued
	}

	p.Dimensions = &d
	p.UpdatedAt = time.Now()
	return nil
}

// SetQuantity updates the stock quantity
func (p *Product) SetQuantity(quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if p.Status == ProductStatusDiscontinued {
		return ErrProductDiscontinued
	}

	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	return nil
}

// AssignBrand links the product to a brand
func (p *Product) AssignBrand(brandID int64) error {
	if brandID <= 0 {
		return ErrInvalidBrandID
	}
	if p.Status == ProductStatusDiscontinued {
		return ErrProductDiscontinued
	}

	p.BrandID = brandID
	p.UpdatedAt = time.Now()
	return nil
}

// IsDraft returns true if the product is in draft status
func (p *Product) IsDraft() bool {
	return p.Status == ProductStatusDraft
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsDiscontinued returns true if the product is discontinued
func (p *Product) IsDiscontinued() bool {
	return p.Status == ProductStatusDiscontinued
}

// HasBrand returns true if a brand has been assigned
func (p *Product) HasBrand() bool {
	return p.BrandID > 0
}

// HasDimensions returns true if dimensions have been recorded
func (p *Product) HasDimensions() bool {
	return p.Dimensions != nil
}
