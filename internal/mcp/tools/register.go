package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Session
	AddTool(srv, &sdkmcp.Tool{
		Name:        "cognos_session",
		Description: "Open or reuse the Cognos session for an endpoint and describe it: session id, CAM namespace, login state and transport capabilities. Only one endpoint holds a session at a time by default; naming another endpoint discards the current one.",
	}, ToolSession(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "cognos_login",
		Description: "Log on to Cognos with CAM credentials. Without arguments the configured COGNOS_USERNAME/COGNOS_PASSWORD are used. Most folder and report tools fail with UNAUTHORIZED until this succeeds.",
	}, ToolLogin(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "cognos_logoff",
		Description: "Log off the current Cognos session. Never fails: returns ok=false when the server rejected the logoff.",
	}, ToolLogoff(d))

	// Folders
	AddTool(srv, &sdkmcp.Tool{
		Name:        "cognos_list_root",
		Description: "List the root folders: \"My Content\" (the user's private folder) then \"Team Content\" (public folders). Use the returned ids with cognos_list_folder or cognos_folder_tree.",
	}, ToolListRoot(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "cognos_list_folder",
		Description: "List one level of a folder, filtered by a shell glob on the entry name and by object type (default: folders only). Returns {folders: [{id, name, type, search_path}], count} in server order.",
	}, ToolListFolder(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "cognos_list_public_folders",
		Description: "List the folders directly under Team Content.",
	}, ToolListPublicFolders(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "cognos_folder_tree",
		Description: "Walk several levels below a folder and return every entry flattened depth first with its name path. Folders that could not be listed carry an error; folders at the depth limit are marked truncated. Prefer cognos_list_folder for a single level.",
	}, ToolFolderTree(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "cognos_add_folder",
		Description: "Create a folder under a parent folder. Returns the new folder, or ok=false when it could not be created.",
	}, ToolAddFolder(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "cognos_delete_folder",
		Description: "Delete a folder or other object. By default deletion is forced and recursive, removing the folder content. Returns ok=false when the deletion failed.",
	}, ToolDeleteFolder(d))

	// Reports
	AddTool(srv, &sdkmcp.Tool{
		Name:        "cognos_report_data",
		Description: "Run a report and return its data (first 100 rows unless row_limit is set). format json returns DataSetJSON and takes a jq expression; format xml returns the DataSet XML and takes an XPath expression; format html returns the rendered HTMLFragment and takes a CSS selector or XPath. Pass an expression to extract only the values you need, or preview_rows to see the layout.",
	}, ToolReportData(d))
}
