package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skulab/stockroom/internal/models"
)

func TestDashboardHandler_ServeHTTP(t *testing.T) {
	mockCatalog := &MockCatalogService{
		SearchInventoryFunc: func(sku string) ([]*models.Product, error) {
			return []*models.Product{
				{ID: 1, Name: "Hex Nut", Status: models.ProductStatusActive},
				{ID: 2, Name: "Wing Nut", Status: models.ProductStatusActive},
				{ID: 3, Name: "Lock Washer", Status: models.ProductStatusDraft},
			}, nil
		},
		ListBrandsFunc: func() ([]*models.Brand, error) {
			return []*models.Brand{{ID: 1, Name: "Northstar Tools"}}, nil
		},
	}

	handler, err := NewDashboardHandler(mockCatalog)
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	doc := parseHTML(t, w.Body.String())

	if got := doc.Find("#stat-products").Text(); got != "3" {
		t.Errorf("expected 3 products, got %q", got)
	}
	if got := doc.Find("#stat-active").Text(); got != "2" {
		t.Errorf("expected 2 active products, got %q", got)
	}
	if got := doc.Find("#stat-brands").Text(); got != "1" {
		t.Errorf("expected 1 brand, got %q", got)
	}

	// The nav carries the Dashboard link the suite checks for
	if doc.Find(`nav a[href="/dashboard"]`).Text() != "Dashboard" {
		t.Error("expected Dashboard nav link")
	}
}

func TestDashboardHandler_FlashMessage(t *testing.T) {
	handler, err := NewDashboardHandler(&MockCatalogService{})
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: "The+product+has+been+saved"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	doc := parseHTML(t, w.Body.String())
	if got := doc.Find("#flash-message").Text(); got != "The product has been saved" {
		t.Errorf("expected flash message, got %q", got)
	}

	// The flash cookie is cleared after display
	flash := findCookie(w.Result(), flashCookie)
	if flash == nil || flash.MaxAge != -1 {
		t.Error("expected flash cookie to be cleared")
	}
}

func TestDashboardHandler_ServiceError(t *testing.T) {
	mockCatalog := &MockCatalogService{
		SearchInventoryFunc: func(sku string) ([]*models.Product, error) {
			return nil, errors.New("database down")
		},
	}

	handler, err := NewDashboardHandler(mockCatalog)
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestDashboardHandler_MethodNotAllowed(t *testing.T) {
	handler, err := NewDashboardHandler(&MockCatalogService{})
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/dashboard", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}
