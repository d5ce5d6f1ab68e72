// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, and duration parsing

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

registry:
  path: "./registry.json"

database:
  path: "./audit.db"

tools:
  timeout: "45s"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8080")
	}
	if cfg.Registry.Path != "./registry.json" {
		t.Errorf("Registry.Path = %q, want %q", cfg.Registry.Path, "./registry.json")
	}
	if cfg.Database.Path != "./audit.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "./audit.db")
	}
	if cfg.Tools.Timeout != 45*time.Second {
		t.Errorf("Tools.Timeout = %v, want %v", cfg.Tools.Timeout, 45*time.Second)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("DEPOT_TEST_SECRET", "super-secret-value")

	configPath := writeConfig(t, `
server:
  http_addr: ":8080"

registry:
  path: "./registry.json"

auth:
  jwt_secret: "${DEPOT_TEST_SECRET}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Auth.JWTSecret != "super-secret-value" {
		t.Errorf("JWTSecret = %q, want %q", cfg.Auth.JWTSecret, "super-secret-value")
	}
}

func TestLoad_UnsetEnvVarExpandsEmpty(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: ":8080"

registry:
  path: "./registry.json"

auth:
  jwt_secret: "${DEPOT_DEFINITELY_UNSET_VAR}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Auth.JWTSecret != "" {
		t.Errorf("JWTSecret = %q, want empty", cfg.Auth.JWTSecret)
	}
}

func TestLoad_StaticTokens(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: ":8080"

registry:
  path: "./registry.json"

auth:
  require_auth: true
  tokens:
    - token: "dev-token"
      capabilities: ["software"]
    - token: "admin-token"
      capabilities: ["software", "admin"]
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Auth.Tokens) != 2 {
		t.Fatalf("len(Tokens) = %d, want 2", len(cfg.Auth.Tokens))
	}
	if cfg.Auth.Tokens[0].Token != "dev-token" {
		t.Errorf("Tokens[0].Token = %q, want %q", cfg.Auth.Tokens[0].Token, "dev-token")
	}
	if len(cfg.Auth.Tokens[1].Capabilities) != 2 {
		t.Errorf("len(Tokens[1].Capabilities) = %d, want 2", len(cfg.Auth.Tokens[1].Capabilities))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Load() should fail for missing file")
	}
	if !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("error = %q, want it to mention reading config file", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "server: [not: valid: yaml")

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() should fail for invalid YAML")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: ":8080"

registry:
  path: "./registry.json"

tools:
  timeout: "not-a-duration"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() should fail for invalid duration")
	}
	if !strings.Contains(err.Error(), "tools.timeout") {
		t.Errorf("error = %q, want it to mention tools.timeout", err)
	}
}

func TestValidate_MissingHTTPAddr(t *testing.T) {
	configPath := writeConfig(t, `
registry:
  path: "./registry.json"
`)

	_, err := Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "server.http_addr") {
		t.Errorf("error = %v, want server.http_addr validation failure", err)
	}
}

func TestValidate_MissingRegistryPath(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: ":8080"
`)

	_, err := Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "registry.path") {
		t.Errorf("error = %v, want registry.path validation failure", err)
	}
}

func TestValidate_RequireAuthWithoutCredentials(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: ":8080"

registry:
  path: "./registry.json"

auth:
  require_auth: true
`)

	_, err := Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "require_auth") {
		t.Errorf("error = %v, want require_auth validation failure", err)
	}
}

func TestValidate_EmptyStaticToken(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: ":8080"

registry:
  path: "./registry.json"

auth:
  tokens:
    - token: ""
      capabilities: ["software"]
`)

	_, err := Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "tokens[0]") {
		t.Errorf("error = %v, want tokens[0] validation failure", err)
	}
}
