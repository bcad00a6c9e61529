package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "explore_content",
		Description: "RECOMMENDED: Explore the Cognos content store and pull report data. Start here - walks through login, folder navigation and report extraction without fetching whole reports.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "folder_hint",
				Description: "Name or glob of the folder to look for (e.g., 'Sales*')",
				Required:    false,
			},
			{
				Name:        "goal",
				Description: "What you want to find or extract (e.g., 'monthly revenue by region')",
				Required:    false,
			},
		},
	}, HandleExploreContent(cfg))

	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "cognos_usage_guide",
		Description: "Reference for the Cognos tools: which tool answers which question, filter syntax and error codes.",
	}, HandleUsageGuide(cfg))
}
