package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
)

// GetReportData runs the report id through the report data service and
// returns the DataSetJSON body unmodified, limited to ReportDataRowLimit rows.
func (c *Client) GetReportData(ctx context.Context, id string) (json.RawMessage, error) {
	body, err := c.GetReportOutput(ctx, id, FormatDataSetJSON, 0)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// GetReportOutput runs the report id and returns its output in format,
// limited to rowLimit rows. A rowLimit of zero or less means
// ReportDataRowLimit. The body is returned unmodified, nil when empty.
func (c *Client) GetReportOutput(ctx context.Context, id string, format ReportFormat, rowLimit int) ([]byte, error) {
	if format == "" {
		format = FormatDataSetJSON
	}
	limit := ReportDataRowLimit
	if rowLimit > 0 {
		limit = strconv.Itoa(rowLimit)
	}
	query := url.Values{
		"fmt":      {string(format)},
		"rowLimit": {limit},
	}

	resp, err := c.transport.Get(ctx, reportDataPath+url.PathEscape(id), query)
	if err != nil {
		return nil, fmt.Errorf("getting report data for %q: %w", id, err)
	}

	c.trace(ctx, "retrieved report data",
		slog.String("id", id),
		slog.String("format", string(format)),
		slog.Int("bytes", len(resp.Body)),
	)
	if len(resp.Body) == 0 {
		return nil, nil
	}
	return resp.Body, nil
}

// UploadExtension replaces the existing extension module name with the zip
// archive. Only transports that support PUT can upload; on others it returns
// false without contacting the server. Failures are logged and reported as
// false.
func (c *Client) UploadExtension(ctx context.Context, name string, archive io.Reader) bool {
	if !c.transport.Capabilities().SupportsPut {
		c.trace(ctx, "transport cannot upload extensions", slog.String("name", name))
		return false
	}

	if _, err := c.transport.Put(ctx, extensionsPath+url.PathEscape(name), archive, "application/zip"); err != nil {
		c.warn(ctx, "uploading extension failed", err, slog.String("name", name))
		return false
	}

	c.trace(ctx, "uploaded extension", slog.String("name", name))
	return true
}
