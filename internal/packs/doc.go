// Package packs provides the built-in tool pack system.
//
// # Architecture
//
// The pack system has two components:
//
//   - Registry: tracks registered builtin packs and their tools
//   - Router: dispatches tool calls to builtin handlers
//
// All tools execute in-process. A tool definition carries the JSON input
// schema and required capabilities advertised over MCP; handlers receive the
// raw JSON input and return JSON output or an error.
//
// # Tool Routing
//
// When a client calls a tool, the router looks it up in the registry,
// applies the tool's timeout (or the router default), and invokes the
// handler. Handler errors become tool-level errors in the ToolResponse;
// only transport faults (unknown tool, context expiry) are returned as Go
// errors.
//
// Tool names are globally unique; registering a colliding name fails with
// ErrToolCollision.
package packs
