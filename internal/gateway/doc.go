// ABOUTME: Package documentation for the gateway orchestrator.
// ABOUTME: Describes component wiring and server lifecycle.

// Package gateway wires the depot-gateway components together and runs
// the HTTP server.
//
// New assembles the embedded software catalog, the JSON registry store,
// the optional SQLite audit store, the lifecycle service, the builtin
// tool pack, and the MCP server, then exposes everything on a single
// HTTP listener alongside /health and /health/ready endpoints.
//
// Run blocks until the context is canceled and then shuts the server
// down gracefully.
package gateway
