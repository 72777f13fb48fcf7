package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewCommitCraftMCPServer creates an MCP server exposing commit message
// generation and validation for the repository at repoPath.
func NewCommitCraftMCPServer(repoPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"commitcraft",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, repoPath)

	return s
}
