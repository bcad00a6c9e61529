package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleUsageGuide serves the tool reference. The login section changes with
// whether credentials are configured.
func HandleUsageGuide(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# Cognos Tool Guide\n\n")

		// --- Sessions ---
		sb.WriteString("## Sessions\n\n")
		if cfg.CognosURL != "" {
			sb.WriteString(fmt.Sprintf("Tools talk to `%s` unless you pass `endpoint`. ", cfg.CognosURL))
		} else {
			sb.WriteString("No default endpoint is configured: pass `endpoint` (e.g. `https://host/ibmcognos`) to every tool. ")
		}
		sb.WriteString("Only one endpoint holds a session at a time; naming another endpoint discards the current session and its login.\n\n")
		if cfg.HasCredentials {
			sb.WriteString("- `cognos_login()` logs on with the configured credentials\n")
		} else {
			sb.WriteString("- `cognos_login(username, password)` - no credentials are configured, ask the user for them\n")
		}
		sb.WriteString("- `cognos_session()` shows the namespace and whether the session is logged in\n")
		sb.WriteString("- `cognos_logoff()` when done; it reports `ok: false` rather than failing\n")

		// --- Question -> Tool table ---
		sb.WriteString("\n## Which Tool\n\n")
		sb.WriteString("| Question | Tool |\n")
		sb.WriteString("|----------|------|\n")
		sb.WriteString("| Where do I start? | `cognos_list_root` (My Content, Team Content) |\n")
		sb.WriteString("| What is in this folder? | `cognos_list_folder(folder_id, types)` |\n")
		sb.WriteString("| Which team folders exist? | `cognos_list_public_folders` |\n")
		sb.WriteString("| Where is report X? | `cognos_folder_tree(folder_id, pattern, types: [\"report\"])` |\n")
		sb.WriteString("| What does the report return? | `cognos_report_data(report_id, expression)` |\n")
		sb.WriteString("| Create / remove a folder | `cognos_add_folder`, `cognos_delete_folder` |\n")

		// --- Filters ---
		sb.WriteString("\n## Name and Type Filters\n")
		sb.WriteString("- `pattern` is a shell glob on the display name: `*` any run, `?` one character, `[A-M]` a class\n")
		sb.WriteString("- Matching is case-sensitive unless `ignore_case: true`\n")
		sb.WriteString("- `types` defaults to folders only. Common types: `folder`, `report`, `reportView`, `interactiveReport`, `exploration` (dashboards), `module` (data modules), `dataSet2`, `package`, `shortcut`, `uploadedFile`\n")
		sb.WriteString(fmt.Sprintf("- `cognos_folder_tree` always keeps folders and walks %d levels unless `depth` is given (max 10)\n", cfg.TreeMaxDepth))

		// --- JQ ---
		sb.WriteString("\n## Report Data and JQ\n")
		sb.WriteString("Report data is DataSetJSON capped at 100 rows. Extract with `expression` instead of reading the whole result:\n")
		sb.WriteString("- `.dataSet.dataTable[0]` - first row, to see column names\n")
		sb.WriteString("- `.dataSet.dataTable[] | select(.Region == \"North\")` - filter rows\n")
		sb.WriteString("- `[.dataSet.dataTable[].Revenue] | add` - aggregate a column\n")
		sb.WriteString("- `. | keys` - list top-level keys when the layout is unknown\n")
		sb.WriteString("- `preview_rows: 3` without an expression keeps the first rows of every array\n")
		sb.WriteString("- `format: \"xml\"` returns the DataSet XML instead; its `expression` is XPath, e.g. `//row/Region`\n")
		sb.WriteString("- `format: \"html\"` returns the rendered report; its `expression` is a CSS selector (`td.lm`) or XPath (`//td`)\n")

		// --- Errors ---
		sb.WriteString("\n## Error Codes\n")
		sb.WriteString("- `UNAUTHORIZED` - log in first (or again: the session may have expired)\n")
		sb.WriteString("- `NOT_FOUND` - the store id does not exist or is not visible to this user\n")
		sb.WriteString("- `INVALID_INPUT` - missing argument, bad glob, bad jq or XPath expression, unknown format\n")
		sb.WriteString("- `TIMEOUT` - the server did not answer in time; retry or narrow the request\n")
		sb.WriteString("- `COGNOS_ERROR` - any other server-side failure, message included\n")

		// --- Tips ---
		sb.WriteString("\n## Tips\n")
		sb.WriteString("- Ids are opaque store ids (e.g. `i5C0B9D...`); never guess them, take them from a listing\n")
		sb.WriteString("- `cognos://folder/{id}` lists every entry type of a folder in one read\n")
		sb.WriteString("- Entries the server returns malformed are skipped, so a count can be lower than the UI shows\n")

		return &sdkmcp.GetPromptResult{
			Description: "Reference for the Cognos tools",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
