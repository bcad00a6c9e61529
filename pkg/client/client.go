package client

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"
)

// Remote resources, relative to the endpoint URL.
const (
	loginPath         = "bi/v1/login"
	objectsPath       = "bi/v1/objects/"
	myFoldersPath     = objectsPath + ".my_folders"
	publicFoldersPath = objectsPath + ".public_folders"
	reportDataPath    = "bi/v1/disp/rds/reportData/report/"
	extensionsPath    = "bi/v1/plugins/extensions/"
)

// ReportFormat is the fmt parameter of the report data service.
type ReportFormat string

// Report output formats.
const (
	FormatDataSetJSON ReportFormat = "DataSetJSON"
	FormatDataSet     ReportFormat = "DataSet" // XML
	FormatHTML        ReportFormat = "HTMLFragment"
)

// Report data query defaults.
const (
	ReportDataFormat   = FormatDataSetJSON
	ReportDataRowLimit = "100"
)

// Client exposes the session, folder and report operations of one Cognos
// endpoint. Obtain one from SessionManager.GetClient.
//
// Query operations return errors. Mutating operations (Logoff, AddFolder,
// DeleteFolder, UploadExtension) are best-effort: they log failures and
// report them through a nil or false result, never through an error.
type Client struct {
	loggedIn  atomic.Bool
	debug     bool
	transport Transport
	logger    *slog.Logger
}

// NewClient wraps a transport. Most callers should go through a SessionManager
// instead so that only one client exists per endpoint.
func NewClient(t Transport, debug bool) *Client {
	return &Client{
		debug:     debug,
		transport: t,
		logger:    slog.Default().With(slog.String("component", "cognos")),
	}
}

// LoggedIn reports whether the last Login succeeded and no Logoff has
// succeeded since. It is observational only; no operation is gated on it.
func (c *Client) LoggedIn() bool { return c.loggedIn.Load() }

// Debug reports whether verbose logging was requested for this client.
func (c *Client) Debug() bool { return c.debug }

// Namespace returns the CAM namespace used by Login.
func (c *Client) Namespace() string { return c.transport.Namespace() }

// Capabilities returns the transport capabilities.
func (c *Client) Capabilities() Capabilities { return c.transport.Capabilities() }

// trace logs progress messages: at info level when the client was created
// with debug enabled, at debug level otherwise.
func (c *Client) trace(ctx context.Context, msg string, attrs ...slog.Attr) {
	level := slog.LevelDebug
	if c.debug {
		level = slog.LevelInfo
	}
	c.logger.LogAttrs(ctx, level, msg, attrs...)
}

// warn logs a failure that a best-effort operation swallowed.
func (c *Client) warn(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("error", err.Error()))
	c.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

func objectPath(id string) string {
	return objectsPath + url.PathEscape(id)
}

func itemsPath(id string) string {
	return objectPath(id) + "/items"
}
