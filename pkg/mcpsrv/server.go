package mcpsrv

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/cognos-mcp/internal/config"
	"github.com/usestring/cognos-mcp/internal/logging"
	"github.com/usestring/cognos-mcp/internal/mcp"
	"github.com/usestring/cognos-mcp/internal/mcp/tools"
	"github.com/usestring/cognos-mcp/internal/query"
	"github.com/usestring/cognos-mcp/pkg/client"
)

// Version is announced to MCP clients. Release builds set it with
// -ldflags "-X github.com/usestring/cognos-mcp/pkg/mcpsrv.Version=...".
var Version = "dev"

// Server is the Cognos MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer loads the configuration from the environment, applies opts and
// builds a server with the builtin Cognos tools, resources and prompts. It
// also installs the process-wide slog logger; Close releases it.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &serverConfig{
		config: config.Load(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	cfg.resolve()

	logCfg := logging.FromConfig(cfg.config)
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	sessions := cfg.sessions
	if sessions == nil {
		sessions, err = newSessionManager(cfg)
		if err != nil {
			_ = logCleanup()
			return nil, fmt.Errorf("creating session manager: %w", err)
		}
	}

	deps := &Deps{
		Sessions: sessions,
		Config:   cfg.config,
		Query:    query.NewEngine(),
	}
	toolDeps := (*tools.Deps)(deps)

	internalOpts := mcp.Options{
		Version: Version,
		Tools:   !cfg.disableBuiltinTools,
		Prompts: !cfg.disableBuiltinPrompts,
	}
	for _, register := range cfg.registrations {
		internalOpts.Extensions = append(internalOpts.Extensions, func(srv *sdkmcp.Server) {
			register(srv, deps)
		})
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("creating server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// newSessionManager builds an HTTP session manager from the configuration.
func newSessionManager(cfg *serverConfig) (*client.SessionManager, error) {
	dial := client.DialHTTP(client.HTTPOptions{
		Namespace:      cfg.config.Namespace,
		Timeout:        cfg.config.HTTPClientTimeout,
		IDFromLocation: cfg.config.IDFromLocation,
		HTTPClient:     cfg.httpClient,
	})
	return client.NewSessionManager(dial,
		client.WithMaxSessions(cfg.config.MaxSessions),
		client.WithInitTimeout(cfg.config.SessionInitTimeout),
	)
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if s.deps.Config.CognosURL == "" {
		slog.Warn("COGNOS_URL is not set, tools need an explicit endpoint")
	}
	return s.internal.Run(ctx)
}

// Close logs off open sessions and cleans up server resources.
func (s *Server) Close() error {
	timeout := s.deps.Config.HTTPClientTimeout
	if timeout <= 0 {
		timeout = client.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, sess := range s.deps.Sessions.Sessions() {
		if sess.Client.LoggedIn() {
			sess.Client.Logoff(ctx)
		}
	}
	s.deps.Sessions.Close()

	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
