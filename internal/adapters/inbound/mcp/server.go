package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewIPCheckMCPServer creates an MCP server exposing package validation as
// tools and the rule catalog as a resource.
func NewIPCheckMCPServer() (*server.MCPServer, error) {
	s := server.NewMCPServer(
		"ipcheck",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	if err := registerTools(s); err != nil {
		return nil, err
	}
	registerResources(s)

	return s, nil
}
