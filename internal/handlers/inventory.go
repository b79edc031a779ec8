package handlers

import (
	"html/template"
	"net/http"

	"github.com/phuslu/log"

	"github.com/skulab/stockroom/internal/models"
	"github.com/skulab/stockroom/internal/services"
)

// InventoryHandler renders the inventory listing with SKU search
type InventoryHandler struct {
	template       *template.Template
	catalogService services.CatalogService
}

// InventoryData represents the data for the inventory template
type InventoryData struct {
	BasePage
	Query    string
	Products []*models.Product
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(catalogService services.CatalogService) (*InventoryHandler, error) {
	tmpl, err := parseTemplate("inventory.html")
	if err != nil {
		return nil, err
	}

	return &InventoryHandler{
		template:       tmpl,
		catalogService: catalogService,
	}, nil
}

// ServeHTTP handles GET /inventory with an optional sku query parameter
func (h *InventoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("sku")

	products, err := h.catalogService.SearchInventory(query)
	if err != nil {
		log.Error().Err(err).Str("sku", query).Msg("inventory search failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := InventoryData{
		BasePage: BasePage{
			Title:   "Inventory",
			Flash:   takeFlash(w, r),
			ShowNav: true,
		},
		Query:    query,
		Products: products,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.ExecuteTemplate(w, "inventory.html", data); err != nil {
		log.Error().Err(err).Msg("failed to render inventory")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
