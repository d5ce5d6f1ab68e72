// ABOUTME: Routes tool calls to their builtin handlers with per-tool timeouts.
// ABOUTME: Handler errors are carried in the response, not returned.

package packs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// ErrToolNotFound indicates the requested tool is not registered.
var ErrToolNotFound = errors.New("tool not found")

// DefaultTimeout is the default timeout for tool execution.
const DefaultTimeout = 30 * time.Second

// ToolResponse is the outcome of a routed tool call. Exactly one of
// OutputJSON and Error is set.
type ToolResponse struct {
	RequestID  string
	OutputJSON string
	Error      string
}

// Router dispatches tool calls to builtin handlers.
type Router struct {
	registry *Registry
	logger   *slog.Logger
	timeout  time.Duration
}

// RouterConfig contains configuration options for the Router.
type RouterConfig struct {
	Registry *Registry
	Logger   *slog.Logger
	Timeout  time.Duration
}

// NewRouter creates a new Router with the given configuration.
func NewRouter(cfg RouterConfig) *Router {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default().With("component", "router")
	}
	return &Router{
		registry: cfg.Registry,
		logger:   logger,
		timeout:  timeout,
	}
}

// GetToolDefinition returns the definition for a tool name, or nil.
func (r *Router) GetToolDefinition(name string) *ToolDefinition {
	return r.registry.GetToolDefinition(name)
}

// RouteToolCall dispatches a tool call to its builtin handler.
// Returns ErrToolNotFound when the tool is not registered; handler errors are
// reported in the response's Error field so callers can distinguish transport
// faults from tool-level failures.
func (r *Router) RouteToolCall(ctx context.Context, toolName, inputJSON, requestID string) (*ToolResponse, error) {
	builtin := r.registry.GetBuiltinTool(toolName)
	if builtin == nil {
		r.logger.Debug("tool not found in registry",
			"tool_name", toolName,
			"request_id", requestID,
		)
		return nil, ErrToolNotFound
	}

	timeout := r.timeout
	if builtin.Definition.TimeoutSeconds > 0 {
		timeout = time.Duration(builtin.Definition.TimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r.logger.Debug("dispatching to builtin",
		"tool_name", toolName,
		"request_id", requestID,
	)

	result, err := builtin.Handler(ctx, json.RawMessage(inputJSON))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		r.logger.Warn("builtin tool error",
			"tool_name", toolName,
			"request_id", requestID,
			"error", err,
		)
		return &ToolResponse{RequestID: requestID, Error: err.Error()}, nil
	}

	return &ToolResponse{RequestID: requestID, OutputJSON: string(result)}, nil
}
