package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout is the HTTP timeout used when HTTPOptions.Timeout is zero.
const DefaultTimeout = 30 * time.Second

const (
	xsrfCookie = "XSRF-TOKEN"
	xsrfHeader = "X-XSRF-TOKEN"
)

// Transport performs HTTP verbs against one Cognos endpoint. Paths are
// relative to the endpoint URL. Responses with a status of 400 or above are
// returned as *APIError.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) (*Response, error)
	Post(ctx context.Context, path string, body any) (*Response, error)
	Delete(ctx context.Context, path string, body any) (*Response, error)
	// Put streams body to path. Callers must check Capabilities().SupportsPut.
	Put(ctx context.Context, path string, body io.Reader, contentType string) (*Response, error)

	// Namespace is the CAM namespace used to log on.
	Namespace() string
	Capabilities() Capabilities
}

// Dialer constructs a Transport bound to endpointURL.
type Dialer func(ctx context.Context, endpointURL string, debug bool) (Transport, error)

// HTTPOptions configures HTTPTransport.
type HTTPOptions struct {
	// Namespace overrides namespace discovery.
	Namespace string
	// Timeout bounds every request. Zero means DefaultTimeout.
	Timeout time.Duration
	// IDFromLocation selects Location-header id extraction for created objects.
	IDFromLocation bool
	// HTTPClient is copied as the base of the underlying http.Client, so its
	// Transport and CheckRedirect carry over. The copy gets its own timeout and,
	// if it has none, a cookie jar; the caller's client is left untouched.
	HTTPClient *http.Client
}

// HTTPTransport is the Transport used against a live Cognos server. It keeps
// the session cookies in a jar and echoes the XSRF token on every request.
type HTTPTransport struct {
	rc        *resty.Client
	base      *url.URL
	namespace string
	caps      Capabilities
}

// DialHTTP returns a Dialer that builds HTTPTransports with opts.
func DialHTTP(opts HTTPOptions) Dialer {
	return func(ctx context.Context, endpointURL string, debug bool) (Transport, error) {
		return NewHTTPTransport(ctx, endpointURL, debug, opts)
	}
}

// NewHTTPTransport validates endpointURL, prepares the HTTP client and primes
// the session by fetching the logon prompt, which sets the XSRF cookie and
// names the namespace when opts.Namespace is empty.
func NewHTTPTransport(ctx context.Context, endpointURL string, debug bool, opts HTTPOptions) (*HTTPTransport, error) {
	base, err := url.Parse(strings.TrimSuffix(endpointURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint URL: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("endpoint URL %q must be an absolute http(s) URL", endpointURL)
	}

	var rc *resty.Client
	if opts.HTTPClient != nil {
		hc := *opts.HTTPClient
		rc = resty.NewWithClient(&hc)
	} else {
		rc = resty.New()
	}
	if rc.GetClient().Jar == nil {
		jar, _ := cookiejar.New(nil)
		rc.SetCookieJar(jar)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	t := &HTTPTransport{
		rc:        rc,
		base:      base,
		namespace: opts.Namespace,
		caps: Capabilities{
			IDFromLocation: opts.IDFromLocation,
			SupportsPut:    true,
		},
	}

	rc.SetBaseURL(base.String()).
		SetTimeout(timeout).
		SetLogger(restyLogger{}).
		SetHeader("Accept", "application/json").
		SetHeader("X-Requested-With", "XMLHttpRequest").
		OnBeforeRequest(t.setXSRFHeader).
		OnAfterResponse(logResponse)

	if err := t.prime(ctx); err != nil {
		return nil, err
	}

	level := slog.LevelDebug
	if debug {
		level = slog.LevelInfo
	}
	slog.Log(ctx, level, "cognos transport ready",
		slog.String("endpoint", base.String()),
		slog.String("namespace", t.namespace),
	)
	return t, nil
}

// loginPrompt is the body Cognos answers an anonymous GET on the login
// resource with.
type loginPrompt struct {
	PromptInfo struct {
		DisplayObjects []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"displayObjects"`
	} `json:"promptInfo"`
}

func (t *HTTPTransport) prime(ctx context.Context) error {
	resp, err := t.rc.R().SetContext(ctx).Get(loginPath)
	if err != nil {
		return fmt.Errorf("contacting %s: %w", t.base, err)
	}
	if t.namespace != "" {
		return nil
	}

	var prompt loginPrompt
	if err := json.Unmarshal(resp.Body(), &prompt); err != nil {
		slog.Debug("logon prompt is not JSON, namespace left empty",
			slog.Int("status", resp.StatusCode()),
		)
		return nil
	}
	for _, obj := range prompt.PromptInfo.DisplayObjects {
		if obj.Name == "CAMNamespace" {
			t.namespace = obj.Value
			break
		}
	}
	return nil
}

// Namespace implements Transport.
func (t *HTTPTransport) Namespace() string { return t.namespace }

// Capabilities implements Transport.
func (t *HTTPTransport) Capabilities() Capabilities { return t.caps }

// Get implements Transport.
func (t *HTTPTransport) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return t.do(t.rc.R().SetContext(ctx).SetQueryParamsFromValues(query), http.MethodGet, path)
}

// Post implements Transport.
func (t *HTTPTransport) Post(ctx context.Context, path string, body any) (*Response, error) {
	return t.do(t.request(ctx, body), http.MethodPost, path)
}

// Delete implements Transport.
func (t *HTTPTransport) Delete(ctx context.Context, path string, body any) (*Response, error) {
	return t.do(t.request(ctx, body), http.MethodDelete, path)
}

// Put implements Transport.
func (t *HTTPTransport) Put(ctx context.Context, path string, body io.Reader, contentType string) (*Response, error) {
	req := t.rc.R().SetContext(ctx).SetBody(body)
	if contentType != "" {
		req.SetHeader("Content-Type", contentType)
	}
	return t.do(req, http.MethodPut, path)
}

func (t *HTTPTransport) request(ctx context.Context, body any) *resty.Request {
	req := t.rc.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	return req
}

func (t *HTTPTransport) do(req *resty.Request, method, path string) (*Response, error) {
	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.IsError() {
		return nil, parseError(resp.StatusCode(), resp.Body())
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

// setXSRFHeader copies the XSRF cookie Cognos issued into the request header
// it checks on every state-changing call.
func (t *HTTPTransport) setXSRFHeader(c *resty.Client, r *resty.Request) error {
	jar := c.GetClient().Jar
	if jar == nil {
		return nil
	}
	for _, ck := range jar.Cookies(t.base) {
		if ck.Name == xsrfCookie {
			r.SetHeader(xsrfHeader, ck.Value)
			break
		}
	}
	return nil
}

func logResponse(_ *resty.Client, resp *resty.Response) error {
	slog.Debug("HTTP request completed",
		slog.String("method", resp.Request.Method),
		slog.String("url", resp.Request.URL),
		slog.Int("status", resp.StatusCode()),
		slog.Int64("duration_ms", resp.Time().Milliseconds()),
	)
	return nil
}

// restyLogger routes resty's internal warnings through slog.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) {
	slog.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "resty"))
}

func (restyLogger) Warnf(format string, v ...any) {
	slog.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "resty"))
}

func (restyLogger) Debugf(format string, v ...any) {
	slog.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "resty"))
}
