package handlers

import (
	"html/template"
	"net/http"

	"github.com/phuslu/log"

	"github.com/skulab/stockroom/internal/services"
)

// DashboardHandler renders the landing page with catalog counts
type DashboardHandler struct {
	template       *template.Template
	catalogService services.CatalogService
}

// DashboardData represents the data for the dashboard template
type DashboardData struct {
	BasePage
	TotalProducts  int
	ActiveProducts int
	TotalBrands    int
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(catalogService services.CatalogService) (*DashboardHandler, error) {
	tmpl, err := parseTemplate("dashboard.html")
	if err != nil {
		return nil, err
	}

	return &DashboardHandler{
		template:       tmpl,
		catalogService: catalogService,
	}, nil
}

// ServeHTTP handles GET /dashboard
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	products, err := h.catalogService.SearchInventory("")
	if err != nil {
		log.Error().Err(err).Msg("failed to load products for dashboard")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	brands, err := h.catalogService.ListBrands()
	if err != nil {
		log.Error().Err(err).Msg("failed to load brands for dashboard")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	active := 0
	for _, p := range products {
		if p.IsActive() {
			active++
		}
	}

	data := DashboardData{
		BasePage: BasePage{
			Title:   "Dashboard",
			Flash:   takeFlash(w, r),
			ShowNav: true,
		},
		TotalProducts:  len(products),
		ActiveProducts: active,
		TotalBrands:    len(brands),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		log.Error().Err(err).Msg("failed to render dashboard")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
