package mcpsrv

import (
	"context"

	"github.com/usestring/cognos-mcp/internal/config"
	"github.com/usestring/cognos-mcp/internal/query"
	"github.com/usestring/cognos-mcp/pkg/client"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same session manager as builtin tools.
type Deps struct {
	Sessions *client.SessionManager
	Config   *config.Config
	Query    *query.Engine
}

// Client returns the session client for the configured COGNOS_URL.
func (d *Deps) Client(ctx context.Context) (*client.Client, error) {
	return d.Sessions.GetClient(ctx, d.Config.CognosURL, d.Config.Debug)
}
