package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoggingMiddleware logs each request the server receives. Tool, prompt and
// resource requests are logged at info with their target; protocol chatter
// (initialize, list calls, pings) at debug. Failures are logged at error.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)

			level := slog.LevelDebug
			attrs := []slog.Attr{slog.String("method", method)}
			switch r := req.(type) {
			case *sdkmcp.CallToolRequest:
				level = slog.LevelInfo
				if r.Params != nil {
					attrs = append(attrs, slog.String("tool", r.Params.Name))
				}
			case *sdkmcp.GetPromptRequest:
				level = slog.LevelInfo
				if r.Params != nil {
					attrs = append(attrs, slog.String("prompt", r.Params.Name))
				}
			case *sdkmcp.ReadResourceRequest:
				level = slog.LevelInfo
				if r.Params != nil {
					attrs = append(attrs, slog.String("uri", r.Params.URI))
				}
			}
			attrs = append(attrs, slog.Duration("elapsed", time.Since(start)))

			if res, ok := result.(*sdkmcp.CallToolResult); ok && res != nil && res.IsError {
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("tool_error", true))
			}
			if err != nil {
				slog.LogAttrs(ctx, slog.LevelError, "request failed", append(attrs, slog.Any("error", err))...)
				return result, err
			}

			slog.LogAttrs(ctx, level, "request handled", attrs...)
			return result, nil
		}
	}
}
