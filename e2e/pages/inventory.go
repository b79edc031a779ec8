package pages

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

// InventoryPage represents the inventory listing with its SKU search.
type InventoryPage struct {
	page playwright.Page
	t    *testing.T
}

// NewInventoryPage creates an inventory page object bound to the given test.
func NewInventoryPage(t *testing.T, page playwright.Page) *InventoryPage {
	return &InventoryPage{page: page, t: t}
}

func (p *InventoryPage) Navigate(baseURL string) {
	_, err := p.page.Goto(baseURL + "/inventory")
	require.NoError(p.t, err)
}

func (p *InventoryPage) SearchBySKU(sku string) {
	err := p.page.Locator("#sku-search").Fill(sku)
	require.NoError(p.t, err)
	err = p.page.Locator("#search-button").Click()
	require.NoError(p.t, err)
}

// ExpectSingleResult verifies the search matched exactly one product and
// that its row shows the expected SKU and name.
func (p *InventoryPage) ExpectSingleResult(sku, name string) {
	rows := p.page.Locator("tr.inventory-row")
	expect(p.t).Locator(rows).ToHaveCount(1)
	expect(p.t).Locator(rows.Locator("td.sku")).ToHaveText(sku)
	expect(p.t).Locator(rows.Locator("td.name")).ToHaveText(name)
}

func (p *InventoryPage) ExpectNoResults() {
	expect(p.t).Locator(p.page.Locator("tr.inventory-row")).ToHaveCount(0)
	expect(p.t).Locator(p.page.Locator("#empty-message")).ToBeVisible()
}

// OpenProduct follows the product link in the row listing the given SKU.
func (p *InventoryPage) OpenProduct(sku string) {
	row := p.page.Locator("tr.inventory-row", playwright.PageLocatorOptions{HasText: sku})
	err := row.Locator("td.name a").Click()
	require.NoError(p.t, err)
}
