package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shardcat/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query the
catalog.

The catalog is ingested once at startup. Tools: search, get_entity, facets,
reload. Resources: catalog://report, catalog://facets, catalog://stats and
catalog://entities/{id}.

By default, the server communicates over stdio using JSON-RPC. Use --port to
serve over HTTP instead.

Examples:
  # Stdio mode (default)
  shardcat mcp serve

  # HTTP mode
  shardcat mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "shardcat": {
        "command": "/path/to/shardcat",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	catalog, err := loadedCatalog(cmd.Context())
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Catalog:      catalog,
		Reload:       services.Reload,
		DefaultLimit: limits().Default,
	}, version)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
