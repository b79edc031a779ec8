package models

import (
	"errors"
	"strings"
	"time"
)

// Brand represents a product brand
type Brand struct {
	ID        int64
	Name      string
	ShortCode string
	CreatedAt time.Time
}

// Brand domain errors
var (
	ErrInvalidBrandName      = errors.New("brand name cannot be empty")
	ErrInvalidBrandShortCode = errors.New("brand short code must be 2 to 5 uppercase letters or digits")
)

// NewBrand creates a brand with a normalized short code. Short codes are
// uppercased before validation.
func NewBrand(name, shortCode string) (*Brand, error) {
	name = strings.TrimSpace(name)
	shortCode = strings.ToUpper(strings.TrimSpace(shortCode))

	if name == "" {
		return nil, ErrInvalidBrandName
	}
	if !isValidShortCode(shortCode) {
		return nil, ErrInvalidBrandShortCode
	}

	return &Brand{
		Name:      name,
		ShortCode: shortCode,
		CreatedAt: time.Now(),
	}, nil
}

func isValidShortCode(code string) bool {
	if len(code) < 2 || len(code) > 5 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
