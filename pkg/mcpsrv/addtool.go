package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/cognos-mcp/internal/mcp/tools"
)

// AddTool registers a tool with the server after checking its output type.
// Go's json.Marshal serializes nil slices as null while the SDK infers
// "type": "array" from the Go type, so such outputs fail validation on the
// first call. Recursive types and json.RawMessage fields are rejected too.
//
// AddTool panics with a message naming the field to fix.
//
// Use this instead of [sdkmcp.AddTool] to get the additional check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
