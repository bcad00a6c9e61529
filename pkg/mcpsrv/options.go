package mcpsrv

import (
	"context"
	"net/http"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/cognos-mcp/internal/config"
	"github.com/usestring/cognos-mcp/pkg/client"
)

// serverConfig collects options. Field overrides are applied on top of
// config once every option has run, so option order does not matter.
type serverConfig struct {
	config     *config.Config
	httpClient *http.Client
	sessions   *client.SessionManager

	cognosURL   *string
	credentials *[2]string
	logLevel    string
	logFile     string

	disableBuiltinTools   bool
	disableBuiltinPrompts bool

	// Extensions, registered after the builtins in option order.
	registrations []func(*mcp.Server, *Deps)
}

// resolve applies the field overrides to the configuration.
func (c *serverConfig) resolve() {
	if c.config == nil {
		return
	}
	if c.cognosURL != nil {
		c.config.CognosURL = *c.cognosURL
	}
	if c.credentials != nil {
		c.config.Username, c.config.Password = c.credentials[0], c.credentials[1]
	}
}

// Option configures the server.
type Option func(*serverConfig)

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(c *config.Config) Option {
	return func(cfg *serverConfig) {
		cfg.config = c
	}
}

// WithCognosURL sets the default Cognos endpoint, overriding COGNOS_URL.
func WithCognosURL(url string) Option {
	return func(cfg *serverConfig) {
		cfg.cognosURL = &url
	}
}

// WithCredentials sets the credentials cognos_login falls back to.
func WithCredentials(username, password string) Option {
	return func(cfg *serverConfig) {
		cfg.credentials = &[2]string{username, password}
	}
}

// WithLogLevel overrides LOG_LEVEL (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) {
		cfg.logLevel = level
	}
}

// WithLogFile overrides LOG_FILE. Logs always go to stderr as well.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.logFile = path
	}
}

// WithHTTPClient sets the HTTP client behind every Cognos session. A cookie
// jar is added when it has none. Ignored together with WithSessionManager.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *serverConfig) {
		cfg.httpClient = c
	}
}

// WithSessionManager supplies the session manager instead of dialing over
// HTTP from the configuration.
func WithSessionManager(m *client.SessionManager) Option {
	return func(cfg *serverConfig) {
		cfg.sessions = m
	}
}

// WithoutBuiltinTools leaves out the cognos_* tools and resources.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinTools = true
	}
}

// WithoutBuiltinPrompts leaves out the explore_content and
// cognos_usage_guide prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinPrompts = true
	}
}

// WithTool registers a tool whose handler needs no Cognos access. In and Out
// follow the SDK's typed tool handlers; see AddTool.
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server, _ *Deps) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a tool built from the server's Deps, for handlers
// that talk to Cognos or run jq. The builder runs once, at server creation.
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server, d *Deps) {
			AddTool(srv, tool, builder(d))
		})
	}
}

// WithPrompt registers a prompt.
func WithPrompt(prompt *mcp.Prompt, handler mcp.PromptHandler) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server, _ *Deps) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResourceTemplate registers a resource template, e.g. one serving
// another cognos:// path.
func WithResourceTemplate(template *mcp.ResourceTemplate, handler mcp.ResourceHandler) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server, _ *Deps) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}
