package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/eark-tools/ipcheck/internal/domain"
)

// registerResources registers all ipcheck MCP resources on the given server.
func registerResources(s *server.MCPServer) {
	// ipcheck://profile - the rule catalog, available without any run
	s.AddResource(
		mcplib.NewResource(
			"ipcheck://profile",
			"Rule Profile",
			mcplib.WithResourceDescription("The rule catalog of the built-in E-ARK CSIP profile"),
			mcplib.WithMIMEType("application/json"),
		),
		handleProfileResource(),
	)
}

func handleProfileResource() server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		profile := domain.DefaultCSIPProfile()
		data, err := json.MarshalIndent(struct {
			Name  string        `json:"name"`
			Rules []domain.Rule `json:"rules"`
		}{profile.Name(), profile.Rules()}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling profile: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
