// Package config handles configuration loading for depot-gateway.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${DEPOT_JWT_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8080"   # MCP endpoint and health check
//
// Installed-software registry:
//
//	registry:
//	  path: "/var/lib/depot/registry.json"
//
// Operation audit database:
//
//	database:
//	  path: "/var/lib/depot/audit.db"
//
// Authentication:
//
//	auth:
//	  jwt_secret: "${DEPOT_JWT_SECRET}"
//	  require_auth: true
//	  tokens:
//	    - token: "${DEPOT_DEV_TOKEN}"
//	      capabilities: ["software"]
//
// Tool execution:
//
//	tools:
//	  timeout: "30s"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
// Load configuration from a path:
//
//	cfg, err := config.Load("/etc/depot/gateway.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
