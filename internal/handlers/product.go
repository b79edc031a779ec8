package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/phuslu/log"

	"github.com/skulab/stockroom/internal/models"
	"github.com/skulab/stockroom/internal/services"
)

// ProductCreationHandler renders the new-product form and creates
// products from its submissions. It is mounted on /products/new for the
// form and /products for the create.
type ProductCreationHandler struct {
	template       *template.Template
	catalogService services.CatalogService
}

// Categories offered by the creation form. The form constrains choices
// to these lists; the domain layer only requires non-empty values.
var (
	productCategories    = []string{"Electronics", "Apparel", "Homeware"}
	productSubcategories = []string{"Audio", "Computing", "Wearables", "Outerwear", "Kitchen", "Decor"}
)

// ProductFormData represents the data for the new-product template
type ProductFormData struct {
	BasePage
	Name          string
	Category      string
	Subcategory   string
	Categories    []string
	Subcategories []string
	Error         string
}

// NewProductCreationHandler creates a new product creation handler
func NewProductCreationHandler(catalogService services.CatalogService) (*ProductCreationHandler, error) {
	tmpl, err := parseTemplate("product_new.html")
	if err != nil {
		return nil, err
	}

	return &ProductCreationHandler{
		template:       tmpl,
		catalogService: catalogService,
	}, nil
}

// ServeHTTP handles GET /products/new and POST /products
func (h *ProductCreationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/products/new":
		h.renderForm(w, r, ProductFormData{}, http.StatusOK)
	case r.Method == http.MethodPost && r.URL.Path == "/products":
		h.handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ProductCreationHandler) renderForm(w http.ResponseWriter, r *http.Request, data ProductFormData, status int) {
	data.Title = "New Product"
	data.Flash = takeFlash(w, r)
	data.ShowNav = true
	data.Categories = productCategories
	data.Subcategories = productSubcategories

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.template.ExecuteTemplate(w, "product_new.html", data); err != nil {
		log.Error().Err(err).Msg("failed to render product form")
	}
}

func (h *ProductCreationHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	name := r.PostFormValue("name")
	category := r.PostFormValue("category")
	subcategory := r.PostFormValue("subcategory")

	product, err := h.catalogService.CreateProduct(name, category, subcategory)
	if err != nil {
		if message, ok := productValidationMessage(err); ok {
			h.renderForm(w, r, ProductFormData{
				Name:        name,
				Category:    category,
				Subcategory: subcategory,
				Error:       message,
			}, http.StatusUnprocessableEntity)
			return
		}
		log.Error().Err(err).Str("name", name).Msg("product creation failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "The product has been saved")
	http.Redirect(w, r, fmt.Sprintf("/Skus/add_stock/%d", product.ID), http.StatusSeeOther)
}

// productValidationMessage maps domain validation errors to messages
// safe to show on the form
func productValidationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, models.ErrInvalidProductName):
		return "Product name is required.", true
	case errors.Is(err, models.ErrInvalidCategory):
		return "Category is required.", true
	case errors.Is(err, models.ErrInvalidSubcategory):
		return "Subcategory is required.", true
	default:
		return "", false
	}
}
