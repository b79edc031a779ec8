package pages

import (
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

// ProductDetailsPage represents the read-only product view with its
// brand-assignment form.
type ProductDetailsPage struct {
	page playwright.Page
	t    *testing.T
}

// NewProductDetailsPage creates a details page object bound to the given test.
func NewProductDetailsPage(t *testing.T, page playwright.Page) *ProductDetailsPage {
	return &ProductDetailsPage{page: page, t: t}
}

func (p *ProductDetailsPage) Navigate(baseURL string, productID int64) {
	_, err := p.page.Goto(fmt.Sprintf("%s/products/%d", baseURL, productID))
	require.NoError(p.t, err)
}

func (p *ProductDetailsPage) ExpectName(name string) {
	expect(p.t).Locator(p.page.Locator("#product-title")).ToHaveText(name)
}

func (p *ProductDetailsPage) ExpectSKU(sku string) {
	expect(p.t).Locator(p.page.Locator("#detail-sku")).ToHaveText(sku)
}

// ExpectCategory verifies the combined category / subcategory line.
func (p *ProductDetailsPage) ExpectCategory(category, subcategory string) {
	expect(p.t).Locator(p.page.Locator("#detail-category")).ToHaveText(category + " / " + subcategory)
}

func (p *ProductDetailsPage) ExpectStatus(status string) {
	expect(p.t).Locator(p.page.Locator("#detail-status")).ToHaveText(status)
}

func (p *ProductDetailsPage) ExpectQuantity(quantity string) {
	expect(p.t).Locator(p.page.Locator("#detail-quantity")).ToHaveText(quantity)
}

// ExpectDimensions verifies the rendered dimension line, e.g.
// "20.0 x 12.0 x 9.0 cm, 0.80 kg".
func (p *ProductDetailsPage) ExpectDimensions(formatted string) {
	expect(p.t).Locator(p.page.Locator("#detail-dimensions")).ToHaveText(formatted)
}

func (p *ProductDetailsPage) ExpectBrand(name string) {
	expect(p.t).Locator(p.page.Locator("#detail-brand")).ToHaveText(name)
}

// AssignBrand picks a brand from the select by its visible name and
// submits the assignment.
func (p *ProductDetailsPage) AssignBrand(name string) {
	_, err := p.page.Locator("#brand-select").SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{name},
	})
	require.NoError(p.t, err)
	err = p.page.Locator("#assign-brand-button").Click()
	require.NoError(p.t, err)
}

func (p *ProductDetailsPage) ExpectAssigned() {
	expect(p.t).Locator(p.page.Locator("#flash-message")).ToHaveText("The brand has been assigned")
}
