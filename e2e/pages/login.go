package pages

import (
	"regexp"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

var dashboardURL = regexp.MustCompile(`/dashboard`)

// LoginPage represents the admin login screen.
type LoginPage struct {
	page playwright.Page
	t    *testing.T
}

// NewLoginPage creates a login page object bound to the given test.
func NewLoginPage(t *testing.T, page playwright.Page) *LoginPage {
	return &LoginPage{page: page, t: t}
}

func (p *LoginPage) Navigate(baseURL string) {
	_, err := p.page.Goto(baseURL + "/login")
	require.NoError(p.t, err)
}

func (p *LoginPage) FillUsername(username string) {
	err := p.page.Locator("#username").Fill(username)
	require.NoError(p.t, err)
}

func (p *LoginPage) FillPassword(password string) {
	err := p.page.Locator("#password").Fill(password)
	require.NoError(p.t, err)
}

func (p *LoginPage) Submit() {
	err := p.page.Locator("#login-button").Click()
	require.NoError(p.t, err)
}

// Login fills both credential fields and submits the form.
func (p *LoginPage) Login(username, password string) {
	p.FillUsername(username)
	p.FillPassword(password)
	p.Submit()
}

// ExpectDashboard verifies a successful login: the URL moved to the
// dashboard and the Dashboard navigation link is rendered.
func (p *LoginPage) ExpectDashboard() {
	expect(p.t).Page(p.page).ToHaveURL(dashboardURL)
	link := p.page.Locator("#nav-dashboard")
	expect(p.t).Locator(link).ToBeVisible()
	expect(p.t).Locator(link).ToHaveText("Dashboard")
}

func (p *LoginPage) ExpectLoginError(message string) {
	alert := p.page.Locator("#error-message")
	expect(p.t).Locator(alert).ToBeVisible()
	expect(p.t).Locator(alert).ToHaveText(message)
}
