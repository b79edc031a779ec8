package pages

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

// BrandsPage represents the brand registry screen.
type BrandsPage struct {
	page playwright.Page
	t    *testing.T
}

// NewBrandsPage creates a brands page object bound to the given test.
func NewBrandsPage(t *testing.T, page playwright.Page) *BrandsPage {
	return &BrandsPage{page: page, t: t}
}

func (p *BrandsPage) Navigate(baseURL string) {
	_, err := p.page.Goto(baseURL + "/brands")
	require.NoError(p.t, err)
}

// AddBrand fills the registration form and submits it.
func (p *BrandsPage) AddBrand(name, shortCode string) {
	err := p.page.Locator("#brand-name").Fill(name)
	require.NoError(p.t, err)
	err = p.page.Locator("#brand-code").Fill(shortCode)
	require.NoError(p.t, err)
	err = p.page.Locator("#add-brand-button").Click()
	require.NoError(p.t, err)
}

func (p *BrandsPage) ExpectSaved() {
	expect(p.t).Locator(p.page.Locator("#flash-message")).ToHaveText("The brand has been saved")
}

// ExpectBrandRow verifies the brand shows up as a cell in the registry
// table.
func (p *BrandsPage) ExpectBrandRow(name string) {
	cell := p.page.Locator("td.brand-name", playwright.PageLocatorOptions{HasText: name})
	expect(p.t).Locator(cell).ToBeVisible()
}
