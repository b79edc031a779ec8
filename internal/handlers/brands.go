package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/phuslu/log"

	"github.com/skulab/stockroom/internal/models"
	"github.com/skulab/stockroom/internal/repository"
	"github.com/skulab/stockroom/internal/services"
)

// BrandsHandler renders the brand registry and adds new brands
type BrandsHandler struct {
	template       *template.Template
	catalogService services.CatalogService
}

// BrandsData represents the data for the brands template
type BrandsData struct {
	BasePage
	Brands    []*models.Brand
	Name      string
	ShortCode string
	Error     string
}

// NewBrandsHandler creates a new brands handler
func NewBrandsHandler(catalogService services.CatalogService) (*BrandsHandler, error) {
	tmpl, err := parseTemplate("brands.html")
	if err != nil {
		return nil, err
	}

	return &BrandsHandler{
		template:       tmpl,
		catalogService: catalogService,
	}, nil
}

// ServeHTTP handles GET (list) and POST (add) on /brands
func (h *BrandsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.renderPage(w, r, BrandsData{}, http.StatusOK)
	case http.MethodPost:
		h.handleAdd(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *BrandsHandler) renderPage(w http.ResponseWriter, r *http.Request, data BrandsData, status int) {
	brands, err := h.catalogService.ListBrands()
	if err != nil {
		log.Error().Err(err).Msg("failed to list brands")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data.Title = "Brands"
	data.Flash = takeFlash(w, r)
	data.ShowNav = true
	data.Brands = brands

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.template.ExecuteTemplate(w, "brands.html", data); err != nil {
		log.Error().Err(err).Msg("failed to render brands page")
	}
}

func (h *BrandsHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	name := r.PostFormValue("name")
	shortCode := r.PostFormValue("short_code")

	_, err := h.catalogService.CreateBrand(name, shortCode)
	if err != nil {
		if message, ok := brandValidationMessage(err); ok {
			h.renderPage(w, r, BrandsData{
				Name:      name,
				ShortCode: shortCode,
				Error:     message,
			}, http.StatusUnprocessableEntity)
			return
		}
		log.Error().Err(err).Str("name", name).Msg("brand creation failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "The brand has been saved")
	http.Redirect(w, r, "/brands", http.StatusSeeOther)
}

// brandValidationMessage maps brand errors to messages safe to show on
// the form
func brandValidationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, models.ErrInvalidBrandName):
		return "Brand name is required.", true
	case errors.Is(err, models.ErrInvalidBrandShortCode):
		return "Short code must be 2 to 5 letters or digits.", true
	case errors.Is(err, repository.ErrDuplicateBrand):
		return "A brand with this name or short code already exists.", true
	default:
		return "", false
	}
}
