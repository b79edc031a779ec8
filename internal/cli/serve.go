package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phuslu/log"

	"github.com/skulab/stockroom/internal/config"
	"github.com/skulab/stockroom/internal/handlers"
	"github.com/skulab/stockroom/internal/services"
)

// ServerDependencies holds all dependencies needed for the server
type ServerDependencies struct {
	ServerConfig   config.ServerConfig
	AuthService    services.AuthService
	CatalogService services.CatalogService

	LoginHandler     http.Handler
	LogoutHandler    http.Handler
	DashboardHandler http.Handler
	InventoryHandler http.Handler
	ProductHandler   http.Handler
	StockHandler     http.Handler
	BrandsHandler    http.Handler
	DetailsHandler   http.Handler
	RootHandler      http.Handler
}

// NewServerDependencies wires the handler layer on top of the given
// services. The same wiring backs the binary and the in-process server
// the browser suite boots, so the two cannot drift apart.
func NewServerDependencies(serverConfig config.ServerConfig, adminConfig *config.AdminConfig, catalog services.CatalogService, auth services.AuthService) (ServerDependencies, error) {
	deps := ServerDependencies{
		ServerConfig:   serverConfig,
		AuthService:    auth,
		CatalogService: catalog,
	}

	loginHandler, err := handlers.NewLoginHandler(auth, int(adminConfig.SessionTTL.Seconds()))
	if err != nil {
		return deps, fmt.Errorf("failed to create login handler: %w", err)
	}
	deps.LoginHandler = loginHandler
	deps.LogoutHandler = handlers.NewLogoutHandler(auth)

	dashboardHandler, err := handlers.NewDashboardHandler(catalog)
	if err != nil {
		return deps, fmt.Errorf("failed to create dashboard handler: %w", err)
	}
	deps.DashboardHandler = dashboardHandler

	inventoryHandler, err := handlers.NewInventoryHandler(catalog)
	if err != nil {
		return deps, fmt.Errorf("failed to create inventory handler: %w", err)
	}
	deps.InventoryHandler = inventoryHandler

	productHandler, err := handlers.NewProductCreationHandler(catalog)
	if err != nil {
		return deps, fmt.Errorf("failed to create product handler: %w", err)
	}
	deps.ProductHandler = productHandler

	stockHandler, err := handlers.NewStockHandler(catalog)
	if err != nil {
		return deps, fmt.Errorf("failed to create stock handler: %w", err)
	}
	deps.StockHandler = stockHandler

	brandsHandler, err := handlers.NewBrandsHandler(catalog)
	if err != nil {
		return deps, fmt.Errorf("failed to create brands handler: %w", err)
	}
	deps.BrandsHandler = brandsHandler

	detailsHandler, err := handlers.NewProductDetailsHandler(catalog)
	if err != nil {
		return deps, fmt.Errorf("failed to create details handler: %w", err)
	}
	deps.DetailsHandler = detailsHandler

	deps.RootHandler = handlers.NewRootHandler(auth)

	return deps, nil
}

// NewMux builds the route table. Every admin page sits behind the
// session check; only the login form and the root redirect are open.
func NewMux(deps ServerDependencies) *http.ServeMux {
	requireAuth := func(next http.Handler) http.Handler {
		return handlers.RequireAuth(deps.AuthService, next)
	}

	mux := http.NewServeMux()
	mux.Handle("/login", deps.LoginHandler)
	mux.Handle("/logout", deps.LogoutHandler)
	mux.Handle("/dashboard", requireAuth(deps.DashboardHandler))
	mux.Handle("/inventory", requireAuth(deps.InventoryHandler))
	mux.Handle("/products/new", requireAuth(deps.ProductHandler))
	mux.Handle("/products", requireAuth(deps.ProductHandler))
	mux.Handle("/products/", requireAuth(deps.DetailsHandler))
	mux.Handle("/Skus/add_stock/", requireAuth(deps.StockHandler))
	mux.Handle("/brands", requireAuth(deps.BrandsHandler))
	mux.Handle("/", deps.RootHandler)
	return mux
}

// RunServe starts the stockroom web server
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	mux := NewMux(deps)

	// Create listener. An empty host binds all interfaces.
	addr := net.JoinHostPort(deps.ServerConfig.Host, deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	// Create HTTP server
	server := &http.Server{
		Handler: mux,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", listener.Addr().String()).Msg("server listening")
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server
// If shutdown channel is nil, a new channel will be created and registered with signal.Notify
// shutdownTimeout can be passed for testing; use 0 for default 30 seconds
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	// Channel to listen for interrupt or terminate signals
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	}

	// Wait for shutdown signal
	sig := <-shutdown
	log.Info().Str("signal", sig.String()).Msg("shutting down server")

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		// Force close the server after timeout
		// Note: The nested error case where both Shutdown AND Close fail is unreachable
		// in practice because http.Server.Close() does not propagate listener close errors.
		// This has been verified through testing with mock listeners.
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Info().Msg("server stopped")
	return nil
}
