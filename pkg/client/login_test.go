package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	ft := newFakeTransport()
	ft.onJSON(http.MethodPost, loginPath, `{"cafContextId":"abc"}`)
	c := NewClient(ft, false)

	body, err := c.Login(context.Background(), "jdoe", "secret")
	require.NoError(t, err)
	assert.JSONEq(t, `{"cafContextId":"abc"}`, string(body))
	assert.True(t, c.LoggedIn())

	calls := ft.recorded()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"parameters":[
		{"name":"CAMNamespace","value":"LDAP"},
		{"name":"h_CAM_action","value":"logonAs"},
		{"name":"CAMUsername","value":"jdoe"},
		{"name":"CAMPassword","value":"secret"}
	]}`, bodyJSON(calls[0].Body))
}

func TestLogin_FailureReturnsOriginalError(t *testing.T) {
	ft := newFakeTransport()
	apiErr := &APIError{StatusCode: http.StatusForbidden, Message: "bad credentials"}
	ft.onError(http.MethodPost, loginPath, apiErr)
	c := NewClient(ft, false)

	body, err := c.Login(context.Background(), "jdoe", "wrong")
	require.Error(t, err)
	assert.Nil(t, body)
	assert.ErrorIs(t, err, apiErr)
	assert.False(t, c.LoggedIn())
}

func TestLogoff_Success(t *testing.T) {
	ft := newFakeTransport()
	ft.onJSON(http.MethodPost, loginPath, `{}`)
	ft.onJSON(http.MethodDelete, loginPath, `{"status":"ok"}`)
	c := NewClient(ft, true)

	_, err := c.Login(context.Background(), "jdoe", "secret")
	require.NoError(t, err)

	body, ok := c.Logoff(context.Background())
	assert.True(t, ok)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.False(t, c.LoggedIn())
}

func TestLogoff_FailureIsSwallowed(t *testing.T) {
	tests := []struct {
		name     string
		loggedIn bool
	}{
		{name: "after login", loggedIn: true},
		{name: "anonymous", loggedIn: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := newFakeTransport()
			ft.onJSON(http.MethodPost, loginPath, `{}`)
			ft.onError(http.MethodDelete, loginPath, errUnavailable)
			c := NewClient(ft, false)

			if tt.loggedIn {
				_, err := c.Login(context.Background(), "jdoe", "secret")
				require.NoError(t, err)
			}

			var (
				body []byte
				ok   bool
			)
			assert.NotPanics(t, func() {
				body, ok = c.Logoff(context.Background())
			})
			assert.False(t, ok)
			assert.Nil(t, body)
			assert.Equal(t, tt.loggedIn, c.LoggedIn())
		})
	}
}
