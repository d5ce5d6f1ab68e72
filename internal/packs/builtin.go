// ABOUTME: Built-in tool types for tools that execute in-process.
// ABOUTME: Tool definitions carry a JSON schema string and required capability.

package packs

import (
	"context"
	"encoding/json"
)

// ToolDefinition describes a tool exposed to MCP clients.
type ToolDefinition struct {
	Name                 string
	Description          string
	InputSchemaJSON      string
	RequiredCapabilities []string
	TimeoutSeconds       int // 0 means the router default
}

// ToolHandler executes a built-in tool. It receives the tool input as JSON
// and returns the result as JSON or an error.
type ToolHandler func(ctx context.Context, input json.RawMessage) (json.RawMessage, error)

// BuiltinTool pairs a tool definition with its in-process handler.
type BuiltinTool struct {
	Definition *ToolDefinition
	Handler    ToolHandler
}

// BuiltinPack is a collection of built-in tools with a pack ID.
type BuiltinPack struct {
	ID    string
	Tools []*BuiltinTool
}

// builtinEntry stores a builtin tool with its pack ID for registry lookup.
type builtinEntry struct {
	Tool   *BuiltinTool
	PackID string
}
