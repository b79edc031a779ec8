package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/phuslu/log"

	"github.com/skulab/stockroom/internal/models"
	"github.com/skulab/stockroom/internal/repository"
	"github.com/skulab/stockroom/internal/services"
)

// ProductDetailsHandler renders a single product and applies the brand
// and lifecycle actions submitted from that page
type ProductDetailsHandler struct {
	template       *template.Template
	catalogService services.CatalogService
}

// DetailsData represents the data for the details template
type DetailsData struct {
	BasePage
	Product *models.Product
	Brand   *models.Brand
	Brands  []*models.Brand
}

// NewProductDetailsHandler creates a new product details handler
func NewProductDetailsHandler(catalogService services.CatalogService) (*ProductDetailsHandler, error) {
	tmpl, err := parseTemplate("details.html")
	if err != nil {
		return nil, err
	}

	return &ProductDetailsHandler{
		template:       tmpl,
		catalogService: catalogService,
	}, nil
}

// ServeHTTP handles GET /products/{id}, POST /products/{id}/brand and
// POST /products/{id}/discontinue
func (h *ProductDetailsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, action, err := parseDetailsPath(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch {
	case r.Method == http.MethodGet && action == "":
		h.renderPage(w, r, id)
	case r.Method == http.MethodPost && action == "brand":
		h.handleAssignBrand(w, r, id)
	case r.Method == http.MethodPost && action == "discontinue":
		h.handleDiscontinue(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// parseDetailsPath splits /products/{id}[/action] into its parts
func parseDetailsPath(path string) (int64, string, error) {
	raw := strings.TrimPrefix(path, "/products/")
	if raw == "" {
		return 0, "", fmt.Errorf("missing product id in %q", path)
	}

	parts := strings.SplitN(raw, "/", 2)
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid product id %q", parts[0])
	}

	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}
	return id, action, nil
}

func (h *ProductDetailsHandler) renderPage(w http.ResponseWriter, r *http.Request, id int64) {
	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("failed to load product details")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var brand *models.Brand
	if product.HasBrand() {
		brand, err = h.catalogService.GetBrand(product.BrandID)
		if err != nil && !errors.Is(err, repository.ErrBrandNotFound) {
			log.Error().Err(err).Int64("brand_id", product.BrandID).Msg("failed to load brand")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	brands, err := h.catalogService.ListBrands()
	if err != nil {
		log.Error().Err(err).Msg("failed to list brands for details page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := DetailsData{
		BasePage: BasePage{
			Title:   product.Name,
			Flash:   takeFlash(w, r),
			ShowNav: true,
		},
		Product: product,
		Brand:   brand,
		Brands:  brands,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.ExecuteTemplate(w, "details.html", data); err != nil {
		log.Error().Err(err).Msg("failed to render product details")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *ProductDetailsHandler) handleAssignBrand(w http.ResponseWriter, r *http.Request, id int64) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	brandID, err := strconv.ParseInt(r.PostFormValue("brand_id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if _, err := h.catalogService.AssignBrand(id, brandID); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound), errors.Is(err, repository.ErrBrandNotFound):
			http.NotFound(w, r)
		case errors.Is(err, models.ErrProductDiscontinued):
			setFlash(w, "Discontinued products cannot be rebranded")
			http.Redirect(w, r, fmt.Sprintf("/products/%d", id), http.StatusSeeOther)
		default:
			log.Error().Err(err).Int64("id", id).Msg("failed to assign brand")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	setFlash(w, "The brand has been assigned")
	http.Redirect(w, r, fmt.Sprintf("/products/%d", id), http.StatusSeeOther)
}

func (h *ProductDetailsHandler) handleDiscontinue(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.catalogService.DiscontinueProduct(id); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			http.NotFound(w, r)
		case errors.Is(err, models.ErrInvalidStatusTransition):
			setFlash(w, "The product is already discontinued")
			http.Redirect(w, r, fmt.Sprintf("/products/%d", id), http.StatusSeeOther)
		default:
			log.Error().Err(err).Int64("id", id).Msg("failed to discontinue product")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	setFlash(w, "The product has been discontinued")
	http.Redirect(w, r, fmt.Sprintf("/products/%d", id), http.StatusSeeOther)
}
