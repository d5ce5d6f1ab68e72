// ABOUTME: Tests for gateway assembly and health endpoints.
// ABOUTME: Exercises New wiring and the HTTP handlers without a listener.

package gateway

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/depot-gateway/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	tmpDir := t.TempDir()
	return &config.Config{
		Server:   config.ServerConfig{HTTPAddr: "127.0.0.1:0"},
		Registry: config.RegistryConfig{Path: filepath.Join(tmpDir, "registry.json")},
		Database: config.DatabaseConfig{Path: ":memory:"},
	}
}

func TestNew(t *testing.T) {
	gw, err := New(testConfig(t), slog.Default())
	require.NoError(t, err)
	require.NotNil(t, gw)
	defer func() { _ = gw.audit.Close() }()

	// The software pack is registered
	tools := gw.packRegistry.GetAllTools()
	require.NotEmpty(t, tools)

	names := make(map[string]bool)
	for _, tool := range tools {
		names[tool.Name] = true
	}
	assert.True(t, names["install_software"])
	assert.True(t, names["get_recommendations"])
}

func TestNewWithStaticTokens(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.Tokens = []config.TokenConfig{
		{Token: "dev-token", Capabilities: []string{"software"}},
	}

	gw, err := New(cfg, slog.Default())
	require.NoError(t, err)
	defer func() { _ = gw.audit.Close() }()

	assert.Equal(t, []string{"software"}, gw.Tokens().GetCapabilities("dev-token"))
}

func TestNewWithoutAudit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Path = ""

	gw, err := New(cfg, slog.Default())
	require.NoError(t, err)
	assert.Nil(t, gw.audit)
}

func TestHandleHealth(t *testing.T) {
	gw, err := New(testConfig(t), slog.Default())
	require.NoError(t, err)
	defer func() { _ = gw.audit.Close() }()

	rec := httptest.NewRecorder()
	gw.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestHandleReady(t *testing.T) {
	gw, err := New(testConfig(t), slog.Default())
	require.NoError(t, err)
	defer func() { _ = gw.audit.Close() }()

	rec := httptest.NewRecorder()
	gw.handleReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", rec.Body.String())
}

func TestMCPRoutesRegistered(t *testing.T) {
	gw, err := New(testConfig(t), slog.Default())
	require.NoError(t, err)
	defer func() { _ = gw.audit.Close() }()

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	rec := httptest.NewRecorder()
	gw.httpServer.Handler.ServeHTTP(rec, req)
	// Empty body is a parse error, but the route exists
	assert.Equal(t, http.StatusOK, rec.Code)
}
