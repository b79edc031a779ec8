package handlers

import (
	"net/http"

	"github.com/skulab/stockroom/internal/services"
)

// RootHandler sends visitors of the bare domain to the dashboard, or to
// the login page when no live session is present. It also serves as the
// mux fallback, so unknown paths 404 here.
type RootHandler struct {
	authService services.AuthService
}

// NewRootHandler creates a new root handler
func NewRootHandler(authService services.AuthService) *RootHandler {
	return &RootHandler{authService: authService}
}

// ServeHTTP handles GET /
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cookie, err := r.Cookie(sessionCookie)
	if err != nil || h.authService.Verify(cookie.Value) != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
