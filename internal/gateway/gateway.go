// ABOUTME: Gateway orchestrator that wires the catalog, registry, and MCP server
// ABOUTME: Manages the HTTP server, audit store, and health endpoints lifecycle

package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/2389/depot-gateway/internal/auth"
	"github.com/2389/depot-gateway/internal/builtins"
	"github.com/2389/depot-gateway/internal/catalog"
	"github.com/2389/depot-gateway/internal/config"
	"github.com/2389/depot-gateway/internal/lifecycle"
	"github.com/2389/depot-gateway/internal/mcp"
	"github.com/2389/depot-gateway/internal/packs"
	"github.com/2389/depot-gateway/internal/registry"
	"github.com/2389/depot-gateway/internal/store"
)

// Gateway orchestrates the depot-gateway server components.
// It owns the HTTP server for MCP and health endpoints, the software
// lifecycle service, and the operation audit store.
type Gateway struct {
	config     *config.Config
	catalog    *catalog.Catalog
	audit      store.AuditStore
	lifecycle  *lifecycle.Service
	httpServer *http.Server
	logger     *slog.Logger

	// serverID identifies this gateway instance
	serverID string

	// packRegistry tracks registered tool packs
	packRegistry *packs.Registry

	// packRouter routes tool calls to their handlers
	packRouter *packs.Router

	// mcpTokens maps MCP access tokens to capabilities
	mcpTokens *mcp.TokenStore

	// mcpServer is the MCP-compatible HTTP server for external agents
	mcpServer *mcp.Server
}

// initAudit opens the operation audit store based on config and environment.
// An empty database path disables auditing.
func initAudit(cfg *config.Config) (store.AuditStore, error) {
	dbPath := cfg.Database.Path
	if envPath := os.Getenv("DEPOT_DB_PATH"); envPath != "" {
		dbPath = envPath
	}
	if dbPath == "" {
		return nil, nil
	}
	return store.NewSQLiteStore(dbPath)
}

// New creates a new Gateway instance with the given configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	audit, err := initAudit(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening audit store: %w", err)
	}

	regStore := registry.NewFileStore(cfg.Registry.Path, logger.With("component", "registry"))

	svc, err := lifecycle.NewService(lifecycle.Config{
		Catalog: cat,
		Store:   regStore,
		Audit:   audit,
		Logger:  logger.With("component", "lifecycle"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating lifecycle service: %w", err)
	}

	packRegistry := packs.NewRegistry(logger.With("component", "pack-registry"))
	packRouter := packs.NewRouter(packs.RouterConfig{
		Registry: packRegistry,
		Logger:   logger.With("component", "pack-router"),
		Timeout:  cfg.Tools.Timeout,
	})
	if err := packRegistry.RegisterBuiltinPack(builtins.SoftwarePack(svc)); err != nil {
		return nil, fmt.Errorf("registering software pack: %w", err)
	}

	mcpTokens := mcp.NewTokenStore()
	for _, tok := range cfg.Auth.Tokens {
		if err := mcpTokens.AddStaticToken(tok.Token, tok.Capabilities); err != nil {
			return nil, fmt.Errorf("registering access token: %w", err)
		}
	}

	var verifier auth.TokenVerifier
	if cfg.Auth.JWTSecret != "" {
		verifier = auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))
	}

	gw := &Gateway{
		config:       cfg,
		catalog:      cat,
		audit:        audit,
		lifecycle:    svc,
		logger:       logger.With("component", "gateway"),
		serverID:     generateServerID(),
		packRegistry: packRegistry,
		packRouter:   packRouter,
		mcpTokens:    mcpTokens,
	}

	mux := http.NewServeMux()

	// Health endpoints - no auth required
	mux.HandleFunc("/health", gw.handleHealth)
	mux.HandleFunc("/health/ready", gw.handleReady)

	// MCP endpoints allow external agents (like Claude Code) to list and
	// execute the software lifecycle tools
	mcpServer, err := mcp.NewServer(mcp.Config{
		Registry:      packRegistry,
		Router:        packRouter,
		TokenStore:    mcpTokens,
		TokenVerifier: verifier,
		Logger:        logger.With("component", "mcp"),
		RequireAuth:   cfg.Auth.RequireAuth,
		DefaultCaps:   []string{"software"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating MCP server: %w", err)
	}
	gw.mcpServer = mcpServer
	gw.mcpServer.RegisterRoutes(mux)

	gw.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return gw, nil
}

// Lifecycle returns the software lifecycle service.
func (g *Gateway) Lifecycle() *lifecycle.Service {
	return g.lifecycle
}

// Tokens returns the MCP token store.
func (g *Gateway) Tokens() *mcp.TokenStore {
	return g.mcpTokens
}

// setupListener creates the TCP listener for the HTTP server.
func (g *Gateway) setupListener() (net.Listener, error) {
	ln, err := net.Listen("tcp", g.config.Server.HTTPAddr)
	if err != nil {
		return nil, fmt.Errorf("listening on HTTP address: %w", err)
	}
	return ln, nil
}

// startServer starts the HTTP server in a goroutine, returning an error channel.
func (g *Gateway) startServer(ln net.Listener) chan error {
	errCh := make(chan error, 1)

	go func() {
		g.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := g.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	return errCh
}

// waitForShutdownSignal waits for context cancellation or a server error.
func (g *Gateway) waitForShutdownSignal(ctx context.Context, errCh chan error) error {
	select {
	case <-ctx.Done():
		g.logger.Info("context canceled, initiating shutdown")
		return nil
	case err := <-errCh:
		g.logger.Error("server error", "error", err)
		return err
	}
}

// Run starts the gateway server and blocks until the context is canceled.
// Returns nil on graceful shutdown (context canceled), or an error if the
// server fails.
func (g *Gateway) Run(ctx context.Context) error {
	g.logger.Info("starting gateway",
		"http_addr", g.config.Server.HTTPAddr,
		"registry", g.config.Registry.Path,
		"catalog_size", g.catalog.Len(),
	)

	ln, err := g.setupListener()
	if err != nil {
		return err
	}

	errCh := g.startServer(ln)
	serverErr := g.waitForShutdownSignal(ctx, errCh)

	shutdownErr := g.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is
// already canceled.
func (g *Gateway) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return g.Shutdown(ctx)
}

// appendCloseError appends an error with label if err is non-nil.
func appendCloseError(errs []error, label string, err error) []error {
	if err != nil {
		return append(errs, fmt.Errorf("%s: %w", label, err))
	}
	return errs
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	g.logger.Info("shutting down gateway")

	var errs []error
	errs = appendCloseError(errs, "HTTP shutdown", g.httpServer.Shutdown(ctx))

	if g.audit != nil {
		errs = appendCloseError(errs, "audit store close", g.audit.Close())
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

// handleHealth returns 200 OK if the server is alive.
func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReady returns 200 OK if the registry is readable.
func (g *Gateway) handleReady(w http.ResponseWriter, r *http.Request) {
	res := g.lifecycle.ListInstalled(r.Context())
	if !res.OK {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprintf(w, "registry unavailable: %s", res.Error.Code)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// generateServerID creates a unique identifier for this gateway instance.
func generateServerID() string {
	return fmt.Sprintf("depot-gateway-%d", time.Now().UnixNano()%1000000)
}
