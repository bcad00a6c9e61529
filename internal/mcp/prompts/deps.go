// Package prompts contains MCP prompt implementations for Cognos.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	CognosURL      string
	HasCredentials bool
	TreeMaxDepth   int
}
