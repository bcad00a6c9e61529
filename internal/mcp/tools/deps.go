package tools

import (
	"context"

	"github.com/usestring/cognos-mcp/internal/config"
	"github.com/usestring/cognos-mcp/internal/query"
	"github.com/usestring/cognos-mcp/pkg/client"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Sessions *client.SessionManager
	Config   *config.Config
	Query    *query.Engine
}

// Endpoint returns endpoint, or the configured COGNOS_URL when it is empty.
func (d *Deps) Endpoint(endpoint string) string {
	if endpoint != "" {
		return endpoint
	}
	return d.Config.CognosURL
}

// Client returns the session client for endpoint (or the configured one).
// Asking for a different endpoint than the current session discards it.
func (d *Deps) Client(ctx context.Context, endpoint string) (*client.Client, error) {
	endpoint = d.Endpoint(endpoint)
	if endpoint == "" {
		return nil, ErrInvalidInput("no endpoint given and COGNOS_URL is not set")
	}

	c, err := d.Sessions.GetClient(ctx, endpoint, d.Config.Debug)
	if err != nil {
		return nil, WrapCognosError(err)
	}
	return c, nil
}
