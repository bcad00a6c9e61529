package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleExploreContent implements the content exploration workflow.
func HandleExploreContent(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var folderHint, goal string
		if req != nil && req.Params != nil && req.Params.Arguments != nil {
			folderHint = req.Params.Arguments["folder_hint"]
			goal = req.Params.Arguments["goal"]
		}

		var sb strings.Builder

		// 1. Role
		sb.WriteString("# Explore Cognos Content\n\n")
		sb.WriteString("You are a BI analyst navigating an IBM Cognos Analytics content store. ")
		sb.WriteString("Your goal is to locate the right folders and reports and pull only the data that answers the question.\n\n")
		if goal != "" {
			sb.WriteString(fmt.Sprintf("**Goal**: %s\n\n", goal))
		}

		// 2. Context usage
		sb.WriteString("## Context Usage Guide\n\n")
		sb.WriteString("- **Listings** are cheap: one level, filtered by name and type\n")
		sb.WriteString("- **Trees** cost one request per folder; keep `depth` small and filter with `pattern`\n")
		sb.WriteString("- **Report data** is expensive; always pass a jq `expression` once you know the layout\n\n")

		// 3. Workflow
		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Log in**")
		if cfg.HasCredentials {
			sb.WriteString(" - `cognos_login()` uses the configured credentials\n")
		} else {
			sb.WriteString(" - ask the user for credentials, then `cognos_login(username, password)`\n")
		}
		sb.WriteString("2. **Find the roots** - `cognos_list_root()` returns My Content and Team Content ids\n")
		sb.WriteString("3. **Narrow down**\n")
		sb.WriteString("   - One level: `cognos_list_folder(folder_id, pattern, types)`\n")
		sb.WriteString(fmt.Sprintf("   - Several levels: `cognos_folder_tree(folder_id, depth, pattern)` (default depth %d)\n", cfg.TreeMaxDepth))
		sb.WriteString("4. **Inspect a report** - `cognos_report_data(report_id, expression: \".dataSet.dataTable[0]\")` to learn the columns\n")
		sb.WriteString("5. **Extract** - rerun with a targeted expression\n")
		sb.WriteString("6. **Log off** - `cognos_logoff()`\n\n")

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		sb.WriteString("cognos_login()\n")
		sb.WriteString("cognos_list_root()\n")
		if folderHint != "" {
			sb.WriteString(fmt.Sprintf("cognos_list_folder(folder_id=\"<team_content_id>\", pattern=%q, ignore_case=true)\n", folderHint))
			sb.WriteString(fmt.Sprintf("cognos_folder_tree(folder_id=\"<team_content_id>\", pattern=%q, ignore_case=true, types=[\"report\"])\n", folderHint))
		} else {
			sb.WriteString("cognos_list_public_folders()\n")
			sb.WriteString("cognos_folder_tree(folder_id=\"<folder_id>\", types=[\"report\"])\n")
		}
		sb.WriteString("cognos_report_data(report_id=\"<report_id>\", expression=\".dataSet.dataTable[0]\")\n")
		sb.WriteString("```\n\n")

		// 4. Output
		sb.WriteString("## Expected Output Format\n\n")
		sb.WriteString("1. **Location**: folder path and id of each relevant report\n")
		sb.WriteString("2. **Data**: the extracted values, with the expression used\n")
		sb.WriteString("3. **Caveats**: truncated trees, 100-row limit, entries you could not list\n\n")

		// 5. Constraints
		sb.WriteString("## Constraints\n\n")
		sb.WriteString("- Do NOT call `cognos_delete_folder` unless the user asked for a deletion; it is recursive by default\n")
		sb.WriteString("- Do NOT walk deeper than needed - stop once the target report is found\n")
		sb.WriteString("- Do NOT read `cognos://report/{id}` when an expression would do\n\n")

		// 6. Recovery
		sb.WriteString("## If Things Go Wrong\n\n")
		sb.WriteString("- **UNAUTHORIZED?** Log in again; switching endpoint drops the previous login\n")
		sb.WriteString("- **Empty listing?** The default type filter is folders only; add `types: [\"report\"]`\n")
		sb.WriteString("- **Tree entries with `error`?** That folder could not be listed; try `cognos_list_folder` on it directly\n")
		sb.WriteString("- **Entries marked `truncated`?** Walk again from that folder\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for exploring Cognos folders and reports",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
