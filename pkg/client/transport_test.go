package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cognosStub serves the subset of the Cognos REST API the client uses.
type cognosStub struct {
	mu        sync.Mutex
	xsrfSeen  []string
	createdID string
}

func (s *cognosStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ibmcognos/bi/v1/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: xsrfCookie, Value: "token-123", Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"promptInfo":{"displayObjects":[
			{"name":"h_CAM_action","value":"logonAs"},
			{"name":"CAMNamespace","value":"CorpLDAP"}
		]}}`))
	})
	mux.HandleFunc("POST /ibmcognos/bi/v1/login", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"message":"bad body"}`, http.StatusBadRequest)
			return
		}
		for _, p := range req.Parameters {
			if p.Name == "CAMPassword" && p.Value != "secret" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"messages":[{"messageString":"The provided credentials are invalid."}]}`))
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cafContextId":"ctx-1"}`))
	})
	mux.HandleFunc("POST /ibmcognos/bi/v1/objects/iPARENT/items", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.Header().Set("Location", "/ibmcognos/bi/v1/objects/"+s.createdID)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /ibmcognos/bi/v1/objects/iPARENT/items", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("nav_filter") != "true" {
			http.Error(w, "missing nav_filter", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"iA","defaultName":"Alpha","type":"folder"}]}`))
	})
	return mux
}

func (s *cognosStub) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.xsrfSeen = append(s.xsrfSeen, r.Header.Get(xsrfHeader))
}

func newStubServer(t *testing.T) (*cognosStub, string) {
	t.Helper()
	stub := &cognosStub{createdID: "iCREATED"}
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)
	return stub, srv.URL + "/ibmcognos/"
}

func TestNewHTTPTransport_DiscoversNamespace(t *testing.T) {
	_, endpoint := newStubServer(t)

	tr, err := NewHTTPTransport(context.Background(), endpoint, false, HTTPOptions{})
	require.NoError(t, err)
	assert.Equal(t, "CorpLDAP", tr.Namespace())
	assert.True(t, tr.Capabilities().SupportsPut)
	assert.False(t, tr.Capabilities().IDFromLocation)
}

func TestNewHTTPTransport_NamespaceOverride(t *testing.T) {
	_, endpoint := newStubServer(t)

	tr, err := NewHTTPTransport(context.Background(), endpoint, false, HTTPOptions{Namespace: "Other"})
	require.NoError(t, err)
	assert.Equal(t, "Other", tr.Namespace())
}

func TestNewHTTPTransport_LeavesCallerClientUntouched(t *testing.T) {
	stub, endpoint := newStubServer(t)
	var trips atomic.Int32
	caller := &http.Client{
		Timeout: 5 * time.Second,
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			trips.Add(1)
			return http.DefaultTransport.RoundTrip(r)
		}),
	}

	tr, err := NewHTTPTransport(context.Background(), endpoint, false, HTTPOptions{HTTPClient: caller, Timeout: time.Minute})
	require.NoError(t, err)
	assert.Nil(t, caller.Jar)
	assert.Equal(t, 5*time.Second, caller.Timeout)

	c := NewClient(tr, false)
	_, err = c.Login(context.Background(), "jdoe", "secret")
	require.NoError(t, err)
	assert.Equal(t, int32(2), trips.Load())

	stub.mu.Lock()
	defer stub.mu.Unlock()
	require.Len(t, stub.xsrfSeen, 1)
	assert.Equal(t, "token-123", stub.xsrfSeen[0])
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestNewHTTPTransport_InvalidURL(t *testing.T) {
	for _, endpoint := range []string{"", "not a url", "ftp://host/ibmcognos", "/relative/path"} {
		t.Run(endpoint, func(t *testing.T) {
			_, err := NewHTTPTransport(context.Background(), endpoint, false, HTTPOptions{})
			assert.Error(t, err)
		})
	}
}

func TestNewHTTPTransport_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	_, err := NewHTTPTransport(context.Background(), endpoint, false, HTTPOptions{})
	assert.Error(t, err)
}

func TestHTTPTransport_LoginSendsXSRFToken(t *testing.T) {
	stub, endpoint := newStubServer(t)

	tr, err := NewHTTPTransport(context.Background(), endpoint, false, HTTPOptions{})
	require.NoError(t, err)
	c := NewClient(tr, true)

	_, err = c.Login(context.Background(), "jdoe", "secret")
	require.NoError(t, err)
	assert.True(t, c.LoggedIn())

	stub.mu.Lock()
	defer stub.mu.Unlock()
	require.Len(t, stub.xsrfSeen, 1)
	assert.Equal(t, "token-123", stub.xsrfSeen[0])
}

func TestHTTPTransport_ErrorStatusIsAPIError(t *testing.T) {
	_, endpoint := newStubServer(t)

	tr, err := NewHTTPTransport(context.Background(), endpoint, false, HTTPOptions{})
	require.NoError(t, err)
	c := NewClient(tr, false)

	_, err = c.Login(context.Background(), "jdoe", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "The provided credentials are invalid.", apiErr.Message)
	assert.True(t, apiErr.Unauthenticated())
}

func TestHTTPTransport_AddFolderFromLocation(t *testing.T) {
	_, endpoint := newStubServer(t)

	tr, err := NewHTTPTransport(context.Background(), endpoint, false, HTTPOptions{IDFromLocation: true})
	require.NoError(t, err)
	c := NewClient(tr, false)

	got := c.AddFolder(context.Background(), "iPARENT", "Archive")
	require.NotNil(t, got)
	assert.Equal(t, "iCREATED", got.ID)
}

func TestHTTPTransport_ListFolder(t *testing.T) {
	_, endpoint := newStubServer(t)

	tr, err := DialHTTP(HTTPOptions{})(context.Background(), endpoint, false)
	require.NoError(t, err)
	c := NewClient(tr, false)

	got, err := c.ListFolderByID(context.Background(), "iPARENT", "A*")
	require.NoError(t, err)
	assert.Equal(t, []FolderDescriptor{{ID: "iA", Name: "Alpha", Type: TypeFolder}}, got)
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"message":"boom"}`, "boom"},
		{"errorMessage", `{"errorMessage":"bad id"}`, "bad id"},
		{"messages", `{"messages":[{"messageString":"denied"}]}`, "denied"},
		{"plain text", "  Service Unavailable\n", "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(http.StatusInternalServerError, []byte(tt.body))
			assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
			assert.Equal(t, tt.want, err.Message)
		})
	}
}
