package pages

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/skulab/stockroom/internal/testcases"
)

var stockPath = regexp.MustCompile(`/Skus/add_stock/(\d+)`)

// ProductCreationPage represents the new-product form.
type ProductCreationPage struct {
	page playwright.Page
	t    *testing.T
}

// NewProductCreationPage creates a product form page object bound to the
// given test.
func NewProductCreationPage(t *testing.T, page playwright.Page) *ProductCreationPage {
	return &ProductCreationPage{page: page, t: t}
}

func (p *ProductCreationPage) Navigate(baseURL string) {
	_, err := p.page.Goto(baseURL + "/products/new")
	require.NoError(p.t, err)
}

func (p *ProductCreationPage) FillName(name string) {
	err := p.page.Locator("#name").Fill(name)
	require.NoError(p.t, err)
}

func (p *ProductCreationPage) SelectCategory(category string) {
	_, err := p.page.Locator("#category").SelectOption(playwright.SelectOptionValues{
		Values: &[]string{category},
	})
	require.NoError(p.t, err)
}

func (p *ProductCreationPage) SelectSubcategory(subcategory string) {
	_, err := p.page.Locator("#subcategory").SelectOption(playwright.SelectOptionValues{
		Values: &[]string{subcategory},
	})
	require.NoError(p.t, err)
}

func (p *ProductCreationPage) Submit() {
	err := p.page.Locator("#create-button").Click()
	require.NoError(p.t, err)
}

// Create fills the whole form from a test-data record and submits it.
func (p *ProductCreationPage) Create(input testcases.ProductInput) {
	p.FillName(input.Name)
	p.SelectCategory(input.Category)
	p.SelectSubcategory(input.Subcategory)
	p.Submit()
}

// ExpectSaved verifies the redirect onto the add-stock page and the flash
// confirmation shown there.
func (p *ProductCreationPage) ExpectSaved(urlPattern, message string) {
	pattern, err := regexp.Compile(urlPattern)
	require.NoError(p.t, err)
	expect(p.t).Page(p.page).ToHaveURL(pattern)
	expect(p.t).Locator(p.page.Locator("#flash-message")).ToHaveText(message)
}

// StockID extracts the product id from the add-stock URL the form
// redirected to.
func (p *ProductCreationPage) StockID() int64 {
	url := p.page.URL()
	match := stockPath.FindStringSubmatch(url)
	require.NotNil(p.t, match, "expected an add-stock URL, got %s", url)
	id, err := strconv.ParseInt(match[1], 10, 64)
	require.NoError(p.t, err)
	return id
}
