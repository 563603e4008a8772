package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/eark-tools/ipcheck/internal/adapters/outbound/checksum"
	"github.com/eark-tools/ipcheck/internal/adapters/outbound/scanner"
	"github.com/eark-tools/ipcheck/internal/application"
	"github.com/eark-tools/ipcheck/internal/domain"
	"github.com/eark-tools/ipcheck/internal/domain/rules"
	"github.com/eark-tools/ipcheck/internal/domain/schema"
	"github.com/eark-tools/ipcheck/internal/domain/structure"
)

// registerTools registers all ipcheck MCP tools on the given server.
func registerTools(s *server.MCPServer) error {
	svc, err := newValidateService()
	if err != nil {
		return err
	}

	// 1. ipcheck_validate
	s.AddTool(
		mcplib.NewTool("ipcheck_validate",
			mcplib.WithDescription("Run the full validation pipeline (structure, METS schema, rule profile) over an unpacked information package and return the report as JSON"),
			mcplib.WithString("package",
				mcplib.Required(),
				mcplib.Description("Filesystem path to the package root directory"),
			),
		),
		handleValidate(svc),
	)

	// 2. ipcheck_structure
	s.AddTool(
		mcplib.NewTool("ipcheck_structure",
			mcplib.WithDescription("Check only the on-disk layout of an information package against the E-ARK structural specification"),
			mcplib.WithString("package",
				mcplib.Required(),
				mcplib.Description("Filesystem path to the package root directory"),
			),
		),
		handleStructure(),
	)

	return nil
}

// newValidateService wires the standard pipeline with built-in defaults.
func newValidateService() (*application.ValidateService, error) {
	validator, err := schema.NewValidator(domain.DefaultMetsSchema())
	if err != nil {
		return nil, err
	}
	engine, err := rules.NewEngine(domain.DefaultCSIPProfile())
	if err != nil {
		return nil, err
	}
	return application.NewValidateService(
		scanner.New(), checksum.New(), domain.DefaultStructureSpec(), validator, engine,
	)
}

func handleValidate(svc *application.ValidateService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		pkgPath, err := request.RequireString("package")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := svc.Validate(pkgPath)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleStructure() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		pkgPath, err := request.RequireString("package")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		pkg, err := scanner.New().Scan(pkgPath)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(structure.Check(pkg, domain.DefaultStructureSpec()))
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
