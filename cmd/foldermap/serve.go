package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	foldermapmcp "github.com/gorewood/foldermap/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run foldermap as a Model Context Protocol (MCP) server over stdio.

This exposes the library as read-only MCP tools that any MCP-capable
agent environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "foldermap": {
        "command": "foldermap",
        "args": ["serve"]
      }
    }
  }

Available tools: locate, folders, report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd, e)
			if err != nil {
				return err
			}
			source := foldermapmcp.NewSource(foldermapmcp.SourceConfig{
				Locator:         e.locator,
				Database:        s.cfg.Database,
				Normalize:       s.norm,
				Options:         s.options,
				YearPlaceholder: s.cfg.YearPlaceholder,
			})
			server := foldermapmcp.NewServer(buildVersion(), source)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
