package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/phuslu/log"

	"github.com/skulab/stockroom/internal/services"
)

// LoginHandler renders the login form and processes sign-in attempts
type LoginHandler struct {
	template    *template.Template
	authService services.AuthService
	sessionAge  int
}

// LoginData represents the data for the login template
type LoginData struct {
	BasePage
	Username string
	Error    string
}

// NewLoginHandler creates a new login handler. sessionAge is the cookie
// lifetime in seconds.
func NewLoginHandler(authService services.AuthService, sessionAge int) (*LoginHandler, error) {
	tmpl, err := parseTemplate("login.html")
	if err != nil {
		return nil, err
	}

	return &LoginHandler{
		template:    tmpl,
		authService: authService,
		sessionAge:  sessionAge,
	}, nil
}

// ServeHTTP handles GET (form) and POST (sign in) on /login
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.renderForm(w, r, LoginData{}, http.StatusOK)
	case http.MethodPost:
		h.handleLogin(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *LoginHandler) renderForm(w http.ResponseWriter, r *http.Request, data LoginData, status int) {
	data.Title = "Log in"
	data.Flash = takeFlash(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.template.ExecuteTemplate(w, "login.html", data); err != nil {
		log.Error().Err(err).Msg("failed to render login page")
	}
}

func (h *LoginHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.authService.Login(username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.renderForm(w, r, LoginData{
				Username: username,
				Error:    "Invalid username or password.",
			}, http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Msg("login failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setSession(w, token, h.sessionAge)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// LogoutHandler terminates the admin session
type LogoutHandler struct {
	authService services.AuthService
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(authService services.AuthService) *LogoutHandler {
	return &LogoutHandler{authService: authService}
}

// ServeHTTP handles POST /logout
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if cookie, err := r.Cookie(sessionCookie); err == nil {
		h.authService.Logout(cookie.Value)
	}
	clearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
