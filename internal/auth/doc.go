// Package auth provides JWT bearer-token authentication for the MCP endpoint.
//
// Tokens are HS256-signed with the secret from configuration and carry the
// caller's capabilities in the "caps" claim. The MCP server accepts either a
// bearer JWT (Authorization header) or an opaque token managed by the MCP
// token store; this package handles only the JWT path.
package auth
