package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usestring/cognos-mcp/internal/preview"
	"github.com/usestring/cognos-mcp/internal/query"
	"github.com/usestring/cognos-mcp/pkg/client"
)

var (
	reportFormat     string
	reportJQ         string
	reportXPath      string
	reportCSS        string
	reportMaxResults int
	reportPreview    int
	reportRowLimit   int
)

var reportFormats = map[string]client.ReportFormat{
	"json": client.FormatDataSetJSON,
	"xml":  client.FormatDataSet,
	"html": client.FormatHTML,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "Report output to fetch: json (DataSetJSON, default), xml (DataSet) or html (HTMLFragment)")
	reportCmd.Flags().StringVar(&reportJQ, "jq", "", "jq expression applied to json output")
	reportCmd.Flags().StringVar(&reportXPath, "xpath", "", "XPath expression applied to xml or html output (default format: xml)")
	reportCmd.Flags().StringVar(&reportCSS, "css", "", "CSS selector applied to html output (implies --format html)")
	reportCmd.Flags().IntVar(&reportMaxResults, "max-results", 0, "Max values printed for an expression (default: QUERY_MAX_RESULTS)")
	reportCmd.Flags().IntVar(&reportPreview, "preview", 0, "json without --jq: print only the first N items of every array")
	reportCmd.Flags().IntVar(&reportRowLimit, "rows", 0, "Rows requested from the server (default: 100)")
}

var reportCmd = &cobra.Command{
	Use:   "report <report-id>",
	Short: "Run a report and print its data",
	Long: `Run a report and print its output, DataSetJSON unless --format says otherwise.
The server returns at most 100 rows unless --rows is given.

Examples:
  # Whole data set
  cognosctl report iA1B2C3

  # First three rows only
  cognosctl report iA1B2C3 --preview 3

  # Column names of the first row
  cognosctl report iA1B2C3 --jq '.dataSet.dataTable[0] | keys'

  # Raw DataSet XML, then one column of it
  cognosctl report iA1B2C3 --format xml
  cognosctl report iA1B2C3 --xpath '//row/Region'

  # Cells of the rendered report
  cognosctl report iA1B2C3 --css 'td.lm'`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

// reportRequest resolves the format and expression flags into one format
// and at most one expression.
func reportRequest() (string, string, error) {
	format := reportFormat
	set := 0
	expression := ""
	for _, e := range []string{reportJQ, reportXPath, reportCSS} {
		if e != "" {
			set++
			expression = e
		}
	}
	if set > 1 {
		return "", "", fmt.Errorf("--jq, --xpath and --css are exclusive")
	}

	if format == "" {
		switch {
		case reportXPath != "":
			format = "xml"
		case reportCSS != "":
			format = "html"
		default:
			format = "json"
		}
	}

	if _, ok := reportFormats[format]; !ok {
		return "", "", fmt.Errorf("unknown report format %q (use json, xml or html)", format)
	}
	switch {
	case reportJQ != "" && format != "json":
		return "", "", fmt.Errorf("--jq needs --format json")
	case reportXPath != "" && format == "json":
		return "", "", fmt.Errorf("--xpath needs --format xml or html")
	case reportCSS != "" && format != "html":
		return "", "", fmt.Errorf("--css needs --format html")
	}
	return format, expression, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	format, expression, err := reportRequest()
	if err != nil {
		return err
	}

	engine := query.NewEngine()
	if expression != "" {
		if err := validate(engine, format, expression); err != nil {
			return err
		}
	}

	return withSession(cmd.Context(), func(c *client.Client) error {
		raw, err := c.GetReportOutput(cmd.Context(), args[0], reportFormats[format], reportRowLimit)
		if err != nil {
			return err
		}

		if expression == "" {
			if format != "json" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return err
			}
			data, err := rawJSON(raw)
			if err != nil {
				return err
			}
			if reportPreview > 0 {
				var stats preview.Stats
				data, stats = preview.Trim(data, preview.Options{MaxRows: reportPreview})
				if stats.Trimmed() {
					fmt.Fprintf(cmd.ErrOrStderr(), "preview: %d rows dropped\n", stats.DroppedRows)
				}
			}
			return writeOutput(cmd.OutOrStdout(), data)
		}

		maxResults := reportMaxResults
		if maxResults <= 0 {
			maxResults = cfg.QueryMaxResults
		}
		var result *query.Result
		switch format {
		case "xml":
			result, err = engine.QueryXPath(raw, expression, maxResults)
		case "html":
			result, err = engine.QueryHTML(raw, expression, maxResults)
		default:
			result, err = engine.Query(raw, expression, maxResults)
		}
		if err != nil {
			return err
		}
		for _, e := range result.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), "jq:", e)
		}
		if result.Truncated {
			fmt.Fprintf(cmd.ErrOrStderr(), "showing %d of %d values\n", len(result.Values), result.RawCount)
		}
		return writeOutput(cmd.OutOrStdout(), result.Values)
	})
}

func validate(engine *query.Engine, format, expression string) error {
	switch format {
	case "xml":
		return engine.ValidateXPath(expression)
	case "html":
		return engine.ValidateHTML(expression)
	default:
		return engine.Validate(expression)
	}
}
