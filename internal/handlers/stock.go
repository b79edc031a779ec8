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

// stockPathPrefix is the legacy-style add-stock route the admin UI keeps
// for compatibility with bookmarked links.
const stockPathPrefix = "/Skus/add_stock/"

// StockHandler renders the add-stock page for a product and records
// dimensions and quantity submitted through it
type StockHandler struct {
	template       *template.Template
	catalogService services.CatalogService
}

// StockData represents the data for the add-stock template
type StockData struct {
	BasePage
	Product  *models.Product
	Length   string
	Width    string
	Height   string
	Weight   string
	Quantity string
	Error    string
}

// NewStockHandler creates a new stock handler
func NewStockHandler(catalogService services.CatalogService) (*StockHandler, error) {
	tmpl, err := parseTemplate("add_stock.html")
	if err != nil {
		return nil, err
	}

	return &StockHandler{
		template:       tmpl,
		catalogService: catalogService,
	}, nil
}

// ServeHTTP handles GET and POST on /Skus/add_stock/{id}
func (h *StockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := parseStockID(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.renderForm(w, r, id, StockData{}, http.StatusOK)
	case http.MethodPost:
		h.handleSave(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// parseStockID extracts the product ID from an add-stock path
func parseStockID(path string) (int64, error) {
	raw := strings.TrimPrefix(path, stockPathPrefix)
	if raw == "" || strings.Contains(raw, "/") {
		return 0, fmt.Errorf("invalid add-stock path %q", path)
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (h *StockHandler) renderForm(w http.ResponseWriter, r *http.Request, id int64, data StockData, status int) {
	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("failed to load product for stock page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data.Title = "Add Stock"
	data.Flash = takeFlash(w, r)
	data.ShowNav = true
	data.Product = product

	// Prefill from the stored record unless the form already carries values
	if data.Length == "" && product.Dimensions != nil {
		data.Length = formatDimension(product.Dimensions.Length)
		data.Width = formatDimension(product.Dimensions.Width)
		data.Height = formatDimension(product.Dimensions.Height)
		data.Weight = formatDimension(product.Dimensions.Weight)
	}
	if data.Quantity == "" && product.Quantity > 0 {
		data.Quantity = strconv.Itoa(product.Quantity)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.template.ExecuteTemplate(w, "add_stock.html", data); err != nil {
		log.Error().Err(err).Msg("failed to render stock page")
	}
}

func (h *StockHandler) handleSave(w http.ResponseWriter, r *http.Request, id int64) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := StockData{
		Length:   strings.TrimSpace(r.PostFormValue("length")),
		Width:    strings.TrimSpace(r.PostFormValue("width")),
		Height:   strings.TrimSpace(r.PostFormValue("height")),
		Weight:   strings.TrimSpace(r.PostFormValue("weight")),
		Quantity: strings.TrimSpace(r.PostFormValue("quantity")),
	}

	dims, quantity, err := parseStockForm(form)
	if err != nil {
		form.Error = err.Error()
		h.renderForm(w, r, id, form, http.StatusUnprocessableEntity)
		return
	}

	if _, err := h.catalogService.SaveDimensions(id, dims, quantity); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			http.NotFound(w, r)
		case errors.Is(err, models.ErrProductDiscontinued):
			form.Error = "This product is discontinued and cannot be restocked."
			h.renderForm(w, r, id, form, http.StatusUnprocessableEntity)
		case errors.Is(err, models.ErrInvalidQuantity), errors.Is(err, models.ErrInvalidDimension):
			form.Error = "Dimensions and quantity must be positive numbers."
			h.renderForm(w, r, id, form, http.StatusUnprocessableEntity)
		default:
			log.Error().Err(err).Int64("id", id).Msg("failed to save dimensions")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	setFlash(w, "The dimensions have been saved")
	http.Redirect(w, r, fmt.Sprintf("%s%d", stockPathPrefix, id), http.StatusSeeOther)
}

// parseStockForm converts the submitted strings into domain values
func parseStockForm(form StockData) (models.Dimensions, int, error) {
	length, err := parseMeasure("length", form.Length)
	if err != nil {
		return models.Dimensions{}, 0, err
	}
	width, err := parseMeasure("width", form.Width)
	if err != nil {
		return models.Dimensions{}, 0, err
	}
	height, err := parseMeasure("height", form.Height)
	if err != nil {
		return models.Dimensions{}, 0, err
	}
	weight, err := parseMeasure("weight", form.Weight)
	if err != nil {
		return models.Dimensions{}, 0, err
	}

	dims, err := models.NewDimensions(length, width, height, weight)
	if err != nil {
		return models.Dimensions{}, 0, fmt.Errorf("dimensions must be positive numbers")
	}

	quantity, err := strconv.Atoi(form.Quantity)
	if err != nil {
		return models.Dimensions{}, 0, fmt.Errorf("quantity must be a whole number")
	}

	return dims, quantity, nil
}

func parseMeasure(field, value string) (float64, error) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return parsed, nil
}

// formatDimension renders a measurement without trailing zeros
func formatDimension(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
