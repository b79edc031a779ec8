package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/skulab/stockroom/internal/models"
)

// MockCatalogService is a mock implementation of CatalogService for testing
type MockCatalogService struct {
	CreateProductFunc      func(name, category, subcategory string) (*models.Product, error)
	GetProductFunc         func(int64) (*models.Product, error)
	GetProductBySKUFunc    func(string) (*models.Product, error)
	SearchInventoryFunc    func(string) ([]*models.Product, error)
	SaveDimensionsFunc     func(int64, models.Dimensions, int) (*models.Product, error)
	AssignBrandFunc        func(int64, int64) (*models.Product, error)
	DiscontinueProductFunc func(int64) error
	CreateBrandFunc        func(string, string) (*models.Brand, error)
	GetBrandFunc           func(int64) (*models.Brand, error)
	ListBrandsFunc         func() ([]*models.Brand, error)
}

func (m *MockCatalogService) CreateProduct(name, category, subcategory string) (*models.Product, error) {
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(name, category, subcategory)
	}
	return &models.Product{ID: 1, Name: name, SKU: "TEST123456", Status: models.ProductStatusDraft}, nil
}

func (m *MockCatalogService) GetProduct(id int64) (*models.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(id)
	}
	return &models.Product{ID: id, Name: "Test Product", SKU: "TEST123456", Status: models.ProductStatusDraft}, nil
}

func (m *MockCatalogService) GetProductBySKU(sku string) (*models.Product, error) {
	if m.GetProductBySKUFunc != nil {
		return m.GetProductBySKUFunc(sku)
	}
	return &models.Product{ID: 1, Name: "Test Product", SKU: sku, Status: models.ProductStatusDraft}, nil
}

func (m *MockCatalogService) SearchInventory(sku string) ([]*models.Product, error) {
	if m.SearchInventoryFunc != nil {
		return m.SearchInventoryFunc(sku)
	}
	return nil, nil
}

func (m *MockCatalogService) SaveDimensions(id int64, dims models.Dimensions, quantity int) (*models.Product, error) {
	if m.SaveDimensionsFunc != nil {
		return m.SaveDimensionsFunc(id, dims, quantity)
	}
	return &models.Product{ID: id, Status: models.ProductStatusActive}, nil
}

func (m *MockCatalogService) AssignBrand(productID, brandID int64) (*models.Product, error) {
	if m.AssignBrandFunc != nil {
		return m.AssignBrandFunc(productID, brandID)
	}
	return &models.Product{ID: productID, BrandID: brandID, Status: models.ProductStatusActive}, nil
}

func (m *MockCatalogService) DiscontinueProduct(id int64) error {
	if m.DiscontinueProductFunc != nil {
		return m.DiscontinueProductFunc(id)
	}
	return nil
}

func (m *MockCatalogService) CreateBrand(name, shortCode string) (*models.Brand, error) {
	if m.CreateBrandFunc != nil {
		return m.CreateBrandFunc(name, shortCode)
	}
	return &models.Brand{ID: 1, Name: name, ShortCode: shortCode}, nil
}

func (m *MockCatalogService) GetBrand(id int64) (*models.Brand, error) {
	if m.GetBrandFunc != nil {
		return m.GetBrandFunc(id)
	}
	return &models.Brand{ID: id, Name: "Test Brand", ShortCode: "TB"}, nil
}

func (m *MockCatalogService) ListBrands() ([]*models.Brand, error) {
	if m.ListBrandsFunc != nil {
		return m.ListBrandsFunc()
	}
	return nil, nil
}

// MockAuthService is a mock implementation of AuthService for testing
type MockAuthService struct {
	LoginFunc  func(username, password string) (string, error)
	VerifyFunc func(string) error
	LogoutFunc func(string)
}

func (m *MockAuthService) Login(username, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(username, password)
	}
	return "test-token", nil
}

func (m *MockAuthService) Verify(token string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	return nil
}

func (m *MockAuthService) Logout(token string) {
	if m.LogoutFunc != nil {
		m.LogoutFunc(token)
	}
}

// parseHTML parses a rendered page so tests can assert on its structure
func parseHTML(t *testing.T, body string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to parse response HTML: %v", err)
	}
	return doc
}

// findCookie returns the named cookie from a response, or nil
func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
