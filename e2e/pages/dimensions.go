package pages

import (
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/skulab/stockroom/internal/testcases"
)

// DimensionsPage represents the add-stock screen where dimensions and
// quantity are recorded for a product.
type DimensionsPage struct {
	page playwright.Page
	t    *testing.T
}

// NewDimensionsPage creates an add-stock page object bound to the given test.
func NewDimensionsPage(t *testing.T, page playwright.Page) *DimensionsPage {
	return &DimensionsPage{page: page, t: t}
}

func (p *DimensionsPage) Navigate(baseURL string, productID int64) {
	_, err := p.page.Goto(fmt.Sprintf("%s/Skus/add_stock/%d", baseURL, productID))
	require.NoError(p.t, err)
}

// SKU reads the generated SKU back from the read-only form field.
func (p *DimensionsPage) SKU() string {
	sku, err := p.page.Locator("#sku").InputValue()
	require.NoError(p.t, err)
	return sku
}

// FillDimensions types the measurement values from a test-data record
// into the form.
func (p *DimensionsPage) FillDimensions(entry testcases.DimensionEntry) {
	err := p.page.Locator("#length").Fill(entry.Length)
	require.NoError(p.t, err)
	err = p.page.Locator("#width").Fill(entry.Width)
	require.NoError(p.t, err)
	err = p.page.Locator("#height").Fill(entry.Height)
	require.NoError(p.t, err)
	err = p.page.Locator("#weight").Fill(entry.Weight)
	require.NoError(p.t, err)
}

func (p *DimensionsPage) FillQuantity(quantity string) {
	err := p.page.Locator("#quantity").Fill(quantity)
	require.NoError(p.t, err)
}

func (p *DimensionsPage) Save() {
	err := p.page.Locator("#save-button").Click()
	require.NoError(p.t, err)
}

func (p *DimensionsPage) ExpectSaved() {
	expect(p.t).Locator(p.page.Locator("#flash-message")).ToHaveText("The dimensions have been saved")
}
