package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Login logs on with the transport's namespace. On success the client is
// marked logged in and the raw response body is returned. On failure the
// logged-in state is left untouched and the transport error is returned.
func (c *Client) Login(ctx context.Context, username, password string) (json.RawMessage, error) {
	payload := loginRequest{
		Parameters: []loginParameter{
			{Name: "CAMNamespace", Value: c.transport.Namespace()},
			{Name: "h_CAM_action", Value: "logonAs"},
			{Name: "CAMUsername", Value: username},
			{Name: "CAMPassword", Value: password},
		},
	}

	resp, err := c.transport.Post(ctx, loginPath, payload)
	if err != nil {
		c.trace(ctx, "login failed", slog.String("username", username))
		return nil, fmt.Errorf("logging in as %q: %w", username, err)
	}

	c.loggedIn.Store(true)
	c.trace(ctx, "logged in", slog.String("username", username))
	return resp.RawBody(), nil
}

// Logoff ends the remote session. It never fails: on error it logs, returns
// ok == false and leaves LoggedIn unchanged, so a client whose logoff failed
// still reports itself as logged in.
func (c *Client) Logoff(ctx context.Context) (body json.RawMessage, ok bool) {
	resp, err := c.transport.Delete(ctx, loginPath, nil)
	if err != nil {
		c.warn(ctx, "logoff failed", err)
		return nil, false
	}

	c.loggedIn.Store(false)
	c.trace(ctx, "logged off")
	return resp.RawBody(), true
}
