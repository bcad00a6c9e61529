// Package mcpsrv provides an extensible MCP server for IBM Cognos Analytics.
//
// This package exposes a high-level API for creating and running an MCP server
// with all builtin Cognos tools, prompts, and resources. Users can extend the
// server with custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server configured from the environment (COGNOS_URL,
// COGNOS_USERNAME, COGNOS_PASSWORD, ...):
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Tools that need a Cognos session receive Deps:
//
//	type CountInput struct {
//	    FolderID string `json:"folder_id"`
//	}
//
//	type CountOutput struct {
//	    Reports int `json:"reports"`
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(
//	        &mcp.Tool{Name: "count_reports", Description: "Count reports in a folder"},
//	        func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	            return func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	                c, err := d.Client(ctx)
//	                if err != nil {
//	                    return nil, CountOutput{}, err
//	                }
//	                reports, err := c.ListFolderByID(ctx, in.FolderID, "*", client.TypeReport)
//	                return nil, CountOutput{Reports: len(reports)}, err
//	            }
//	        },
//	    ),
//	)
//
// # Configuration
//
// Environment defaults can be overridden:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithCognosURL("https://bi.example.com/ibmcognos"),
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/cognos-mcp.log"),
//	)
package mcpsrv
