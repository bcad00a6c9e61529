package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/cognos-mcp/internal/preview"
	"github.com/usestring/cognos-mcp/internal/query"
	"github.com/usestring/cognos-mcp/pkg/client"
)

// Report output formats accepted by cognos_report_data.
const (
	ReportFormatJSON = "json"
	ReportFormatXML  = "xml"
	ReportFormatHTML = "html"
)

// ReportDataInput is the input for cognos_report_data.
type ReportDataInput struct {
	Endpoint   string `json:"endpoint,omitempty" jsonschema:"Cognos base URL (default: COGNOS_URL)"`
	ReportID   string `json:"report_id" jsonschema:"Store id of the report to run"`
	Format     string `json:"format,omitempty" jsonschema:"json (DataSetJSON, default), xml (DataSet) or html (HTMLFragment)"`
	Expression string `json:"expression,omitempty" jsonschema:"Optional expression applied to the result: jq for json (e.g. .dataSet.dataTable[0]), XPath for xml (e.g. //row/Region), CSS selector or XPath for html (e.g. td.lm)"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Max values returned by the expression (default: QUERY_MAX_RESULTS)"`
	RowLimit   int    `json:"row_limit,omitempty" jsonschema:"Rows requested from the server (default: 100)"`
	Preview    int    `json:"preview_rows,omitempty" jsonschema:"json without expression: keep only the first N items of every array (e.g. 5 to see the layout cheaply)"`
}

// ReportDataOutput is the output for cognos_report_data.
type ReportDataOutput struct {
	ReportID  string   `json:"report_id"`
	Format    string   `json:"format"`
	Data      any      `json:"data,omitempty"`
	Values    []any    `json:"values,omitzero"`
	Errors    []string `json:"errors,omitzero"`
	RawCount  int      `json:"raw_count,omitempty"`
	Truncated bool     `json:"truncated,omitempty"`

	DroppedRows int `json:"dropped_rows,omitempty"`
}

// ToolReportData runs a report and returns its data set, optionally reduced
// by a jq, XPath or CSS expression or trimmed to a preview.
func ToolReportData(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ReportDataInput) (*sdkmcp.CallToolResult, ReportDataOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ReportDataInput) (*sdkmcp.CallToolResult, ReportDataOutput, error) {
		if input.ReportID == "" {
			return nil, ReportDataOutput{}, ErrInvalidInput("report_id is required")
		}

		format := input.Format
		if format == "" {
			format = ReportFormatJSON
		}
		remote, err := remoteFormat(format)
		if err != nil {
			return nil, ReportDataOutput{}, err
		}

		if input.Expression != "" {
			if err := validateExpression(d.Query, format, input.Expression); err != nil {
				return nil, ReportDataOutput{}, ErrInvalidInput(err.Error())
			}
		}

		c, err := d.Client(ctx, input.Endpoint)
		if err != nil {
			return nil, ReportDataOutput{}, err
		}

		raw, err := c.GetReportOutput(ctx, input.ReportID, remote, input.RowLimit)
		if err != nil {
			return nil, ReportDataOutput{}, WrapCognosError(err)
		}

		output := ReportDataOutput{ReportID: input.ReportID, Format: format}
		if input.Expression == "" {
			if format != ReportFormatJSON {
				output.Data = string(raw)
				return nil, output, nil
			}

			data, err := ToAny(raw)
			if err != nil {
				return nil, ReportDataOutput{}, &CodedError{Code: ErrCodeCognosError, Message: "report data is not JSON", Cause: err}
			}
			if input.Preview > 0 {
				var stats preview.Stats
				data, stats = preview.Trim(data, preview.Options{MaxRows: input.Preview})
				output.DroppedRows = stats.DroppedRows
				output.Truncated = stats.Trimmed()
			}
			output.Data = data
			return nil, output, nil
		}

		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = d.Config.QueryMaxResults
		}
		var result *query.Result
		switch format {
		case ReportFormatXML:
			result, err = d.Query.QueryXPath(raw, input.Expression, maxResults)
		case ReportFormatHTML:
			result, err = d.Query.QueryHTML(raw, input.Expression, maxResults)
		default:
			result, err = d.Query.Query(raw, input.Expression, maxResults)
		}
		if err != nil {
			return nil, ReportDataOutput{}, &CodedError{Code: ErrCodeCognosError, Message: "querying report data", Cause: err}
		}

		output.Values = result.Values
		output.Errors = result.Errors
		output.RawCount = result.RawCount
		output.Truncated = result.Truncated
		return nil, output, nil
	}
}

func remoteFormat(format string) (client.ReportFormat, error) {
	switch format {
	case ReportFormatJSON:
		return client.FormatDataSetJSON, nil
	case ReportFormatXML:
		return client.FormatDataSet, nil
	case ReportFormatHTML:
		return client.FormatHTML, nil
	default:
		return "", ErrInvalidInput(fmt.Sprintf("unknown format %q: use json, xml or html", format))
	}
}

func validateExpression(e *query.Engine, format, expression string) error {
	switch format {
	case ReportFormatXML:
		return e.ValidateXPath(expression)
	case ReportFormatHTML:
		return e.ValidateHTML(expression)
	default:
		return e.Validate(expression)
	}
}
