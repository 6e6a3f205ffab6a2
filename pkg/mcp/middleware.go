package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// shortStringMax bounds logged string arguments; longer values are logged
// as their length only.
const shortStringMax = 64

// loggingMiddleware returns a ToolHandlerMiddleware that records every tool
// call through the server's logger.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, req)

			rb := responseBytes(result)
			attrs := []any{
				"tool", req.Params.Name,
				"params", sanitizeParams(req.GetArguments()),
				"duration_ms", time.Since(start).Milliseconds(),
				"response_bytes", rb,
				"tokens_est", rb / 4,
			}
			switch {
			case err != nil:
				s.logger.Error("tool call failed", append(attrs, "error", err)...)
			case result != nil && result.IsError:
				s.logger.Warn("tool call returned error", attrs...)
			default:
				s.logger.Info("tool call", attrs...)
			}

			return result, err
		}
	}
}

// sanitizeParams returns a copy of args safe for logging.
func sanitizeParams(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		if s, ok := v.(string); ok && len(s) > shortStringMax {
			out[k+"_len"] = len(s)
		} else {
			out[k] = v
		}
	}
	return out
}

// responseBytes returns the serialized byte length of a result's content.
// Returns 0 for a nil result or on marshal error.
func responseBytes(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}
	b, err := json.Marshal(result.Content)
	if err != nil {
		return 0
	}
	return len(b)
}
