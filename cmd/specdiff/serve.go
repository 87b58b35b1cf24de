package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	specmcp "github.com/gorewood/specdiff/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	var flags pathFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run specdiff as a Model Context Protocol (MCP) server over stdio.

This exposes report operations as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "specdiff": {
        "command": "specdiff",
        "args": ["serve"]
      }
    }
  }

Available tools: status, history, preview, update, init_baseline`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			up, err := resolveUpdater(cmd, flags)
			if err != nil {
				return err
			}
			server := specmcp.NewServer(buildVersion(), up)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}

	addPathFlags(cmd, &flags)
	return cmd
}
