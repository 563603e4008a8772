package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/eark-tools/ipcheck/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the ipcheck MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start ipcheck MCP server (stdio)",
		Long:  "Start the ipcheck MCP server using stdio transport. This allows AI assistants to validate information packages and query the rule catalog.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := mcpadapter.NewIPCheckMCPServer()
			if err != nil {
				return err
			}
			return server.ServeStdio(s)
		},
	}
	return cmd
}
