package mcp

import (
	"context"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/cognos-mcp/internal/mcp/prompts"
	"github.com/usestring/cognos-mcp/internal/mcp/tools"
)

// ServerName is the implementation name announced to clients.
const ServerName = "cognos-mcp"

const instructions = `Tools for browsing an IBM Cognos Analytics content store and reading report data.
Log in with cognos_login, start from cognos_list_root, and pass an expression to cognos_report_data instead of reading whole data sets.
Prompt cognos_usage_guide describes every tool.`

// Options selects what NewServer registers.
type Options struct {
	// Version announced to clients; "dev" when empty.
	Version string

	// Tools registers the cognos_* tools and the cognos:// resources.
	Tools bool
	// Prompts registers explore_content and cognos_usage_guide.
	Prompts bool

	// Extensions run after the builtins, in order.
	Extensions []func(*sdkmcp.Server)
}

// Server is the Cognos MCP server.
type Server struct {
	mcpServer *sdkmcp.Server
	deps      *tools.Deps
}

// NewServer builds the MCP server around deps.
func NewServer(deps *tools.Deps, opts Options) (*Server, error) {
	switch {
	case deps == nil:
		return nil, errors.New("deps is required")
	case deps.Sessions == nil, deps.Config == nil, deps.Query == nil:
		return nil, errors.New("deps must set Sessions, Config and Query")
	}

	version := opts.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		deps: deps,
		mcpServer: sdkmcp.NewServer(
			&sdkmcp.Implementation{Name: ServerName, Version: version},
			&sdkmcp.ServerOptions{Instructions: instructions},
		),
	}
	s.mcpServer.AddReceivingMiddleware(LoggingMiddleware())

	if opts.Tools {
		tools.Register(s.mcpServer, deps)
		s.registerResources()
	}
	if opts.Prompts {
		prompts.Register(s.mcpServer, &prompts.Config{
			CognosURL:      deps.Config.CognosURL,
			HasCredentials: deps.Config.HasCredentials(),
			TreeMaxDepth:   deps.Config.TreeMaxDepth,
		})
	}
	for _, register := range opts.Extensions {
		register(s.mcpServer)
	}

	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.mcpServer
}
