// ABOUTME: Package documentation for the MCP server package.
// ABOUTME: Describes the Streamable HTTP transport implementation.

// Package mcp implements a Model Context Protocol server over the
// Streamable HTTP transport. External agents POST JSON-RPC 2.0 messages
// to a single /mcp endpoint, negotiate a session via initialize, then
// list and call the gateway's tools.
//
// Sessions are tracked with the Mcp-Session-Id header and bound to the
// credentials that created them. Authentication accepts opaque tokens
// (URL path or token query parameter, backed by TokenStore) or JWT
// bearer tokens; capabilities from the credential gate which tools a
// session can see and invoke.
package mcp
