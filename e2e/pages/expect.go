// Package pages implements the page objects the browser suite drives.
// Each page object wraps a Playwright page together with the owning
// test: actions fail the test immediately on error, verifications poll
// through Playwright's assertion engine before failing.
package pages

import (
	"regexp"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

// assertTimeoutMS is how long expectations poll before giving up. Kept
// equal to the suite's default action timeout so a slow render and a
// genuine failure surface at the same moment.
const assertTimeoutMS = 5000

var assertions = playwright.NewPlaywrightAssertions(assertTimeoutMS)

// expecter turns Playwright's error-returning assertions into test
// failures.
type expecter struct {
	t *testing.T
}

func expect(t *testing.T) expecter {
	return expecter{t: t}
}

func (e expecter) Locator(locator playwright.Locator) locatorExpectation {
	return locatorExpectation{t: e.t, assert: assertions.Locator(locator)}
}

func (e expecter) Page(page playwright.Page) pageExpectation {
	return pageExpectation{t: e.t, assert: assertions.Page(page)}
}

type locatorExpectation struct {
	t      *testing.T
	assert playwright.LocatorAssertions
}

func (le locatorExpectation) ToBeVisible() {
	require.NoError(le.t, le.assert.ToBeVisible())
}

func (le locatorExpectation) ToHaveText(text string) {
	require.NoError(le.t, le.assert.ToHaveText(text))
}

func (le locatorExpectation) ToHaveCount(count int) {
	require.NoError(le.t, le.assert.ToHaveCount(count))
}

type pageExpectation struct {
	t      *testing.T
	assert playwright.PageAssertions
}

func (pe pageExpectation) ToHaveURL(pattern *regexp.Regexp) {
	require.NoError(pe.t, pe.assert.ToHaveURL(pattern))
}
