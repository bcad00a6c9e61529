package tools

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// SessionInfo describes a cached Cognos session.
type SessionInfo struct {
	SessionID      string `json:"session_id"`
	Endpoint       string `json:"endpoint"`
	Namespace      string `json:"namespace,omitempty"`
	LoggedIn       bool   `json:"logged_in"`
	IDFromLocation bool   `json:"id_from_location"`
	SupportsPut    bool   `json:"supports_put"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// SessionInput is the input for cognos_session.
type SessionInput struct {
	Endpoint string `json:"endpoint,omitempty" jsonschema:"Cognos base URL such as https://host/ibmcognos (default: COGNOS_URL). Switching endpoints discards the current session."`
}

// SessionOutput is the output for cognos_session.
type SessionOutput struct {
	Session  SessionInfo   `json:"session"`
	Sessions []SessionInfo `json:"sessions,omitzero"`
}

// LoginInput is the input for cognos_login.
type LoginInput struct {
	Endpoint string `json:"endpoint,omitempty" jsonschema:"Cognos base URL such as https://host/ibmcognos (default: COGNOS_URL). Switching endpoints discards the current session."`
	Username string `json:"username,omitempty" jsonschema:"CAM user name (default: COGNOS_USERNAME)"`
	Password string `json:"password,omitempty" jsonschema:"CAM password (default: COGNOS_PASSWORD)"`
}

// LoginOutput is the output for cognos_login.
type LoginOutput struct {
	LoggedIn  bool   `json:"logged_in"`
	Namespace string `json:"namespace,omitempty"`
	Response  any    `json:"response,omitempty"`
}

// LogoffInput is the input for cognos_logoff.
type LogoffInput struct {
	Endpoint string `json:"endpoint,omitempty" jsonschema:"Cognos base URL such as https://host/ibmcognos (default: COGNOS_URL). Switching endpoints discards the current session."`
}

// LogoffOutput is the output for cognos_logoff.
type LogoffOutput struct {
	OK       bool `json:"ok"`
	LoggedIn bool `json:"logged_in"`
	Response any  `json:"response,omitempty"`
}

// ToolSession opens (or reuses) the session for an endpoint and describes it.
func ToolSession(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SessionInput) (*sdkmcp.CallToolResult, SessionOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SessionInput) (*sdkmcp.CallToolResult, SessionOutput, error) {
		if _, err := d.Client(ctx, input.Endpoint); err != nil {
			return nil, SessionOutput{}, err
		}

		var output SessionOutput
		current := d.Endpoint(input.Endpoint)
		for _, s := range d.Sessions.Sessions() {
			caps := s.Client.Capabilities()
			info := SessionInfo{
				SessionID:      s.ID,
				Endpoint:       s.EndpointURL,
				Namespace:      s.Client.Namespace(),
				LoggedIn:       s.Client.LoggedIn(),
				IDFromLocation: caps.IDFromLocation,
				SupportsPut:    caps.SupportsPut,
				CreatedAt:      formatTime(s.CreatedAt),
			}
			if s.EndpointURL == current {
				output.Session = info
			}
			output.Sessions = append(output.Sessions, info)
		}
		return nil, output, nil
	}
}

// ToolLogin logs on with the given or configured credentials.
func ToolLogin(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input LoginInput) (*sdkmcp.CallToolResult, LoginOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input LoginInput) (*sdkmcp.CallToolResult, LoginOutput, error) {
		username, password := input.Username, input.Password
		if username == "" && password == "" {
			username, password = d.Config.Username, d.Config.Password
		}
		if username == "" {
			return nil, LoginOutput{}, ErrInvalidInput("username is required (or set COGNOS_USERNAME and COGNOS_PASSWORD)")
		}

		c, err := d.Client(ctx, input.Endpoint)
		if err != nil {
			return nil, LoginOutput{}, err
		}

		body, err := c.Login(ctx, username, password)
		if err != nil {
			return nil, LoginOutput{}, WrapCognosError(err)
		}

		return nil, LoginOutput{
			LoggedIn:  c.LoggedIn(),
			Namespace: c.Namespace(),
			Response:  responseValue(ctx, body),
		}, nil
	}
}

// ToolLogoff ends the remote session. A failed logoff is reported as ok=false.
func ToolLogoff(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input LogoffInput) (*sdkmcp.CallToolResult, LogoffOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input LogoffInput) (*sdkmcp.CallToolResult, LogoffOutput, error) {
		c, err := d.Client(ctx, input.Endpoint)
		if err != nil {
			return nil, LogoffOutput{}, err
		}

		body, ok := c.Logoff(ctx)
		return nil, LogoffOutput{
			OK:       ok,
			LoggedIn: c.LoggedIn(),
			Response: responseValue(ctx, body),
		}, nil
	}
}

// responseValue decodes a login or logoff body, falling back to the raw text
// when Cognos answered with something other than JSON.
func responseValue(ctx context.Context, body json.RawMessage) any {
	v, err := ToAny(body)
	if err != nil {
		slog.DebugContext(ctx, "cognos response is not JSON, returning it as text", slog.Any("error", err))
		return string(body)
	}
	return v
}
