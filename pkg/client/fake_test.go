package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sync"
)

// recordedCall is one request seen by fakeTransport.
type recordedCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// fakeTransport answers requests from a route table keyed by "METHOD path".
type fakeTransport struct {
	mu        sync.Mutex
	namespace string
	caps      Capabilities
	routes    map[string]func(recordedCall) (*Response, error)
	calls     []recordedCall
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		namespace: "LDAP",
		routes:    make(map[string]func(recordedCall) (*Response, error)),
	}
}

func (f *fakeTransport) on(method, path string, h func(recordedCall) (*Response, error)) {
	f.routes[method+" "+path] = h
}

func (f *fakeTransport) onJSON(method, path, body string) {
	f.on(method, path, func(recordedCall) (*Response, error) {
		return jsonResponse(http.StatusOK, body), nil
	})
}

func (f *fakeTransport) onError(method, path string, err error) {
	f.on(method, path, func(recordedCall) (*Response, error) {
		return nil, err
	})
}

func (f *fakeTransport) handle(method, path string, query url.Values, body any) (*Response, error) {
	call := recordedCall{Method: method, Path: path, Query: query, Body: body}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	h, ok := f.routes[method+" "+path]
	f.mu.Unlock()

	if !ok {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "no route for " + method + " " + path}
	}
	return h(call)
}

func (f *fakeTransport) recorded() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

func (f *fakeTransport) Get(_ context.Context, path string, query url.Values) (*Response, error) {
	return f.handle(http.MethodGet, path, query, nil)
}

func (f *fakeTransport) Post(_ context.Context, path string, body any) (*Response, error) {
	return f.handle(http.MethodPost, path, nil, body)
}

func (f *fakeTransport) Delete(_ context.Context, path string, body any) (*Response, error) {
	return f.handle(http.MethodDelete, path, nil, body)
}

func (f *fakeTransport) Put(_ context.Context, path string, body io.Reader, _ string) (*Response, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	return f.handle(http.MethodPut, path, nil, data)
}

func (f *fakeTransport) Namespace() string          { return f.namespace }
func (f *fakeTransport) Capabilities() Capabilities { return f.caps }

func jsonResponse(status int, body string) *Response {
	return &Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       []byte(body),
	}
}

// bodyJSON re-encodes a recorded request body for assertions.
func bodyJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

var errUnavailable = errors.New("connection refused")
