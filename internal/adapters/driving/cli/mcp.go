package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/developertarun01/weyfar-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can run travel
searches and resolve airline names.

Tools:
  search            run a flights, hotels, cars or cruises search
  resolve_airline   resolve a carrier code to an airline name
  enhance_flights   add airline names to flight records

By default the server communicates over stdio using JSON-RPC. Use --port
to serve over HTTP instead, for example to test with MCP Inspector.

Examples:
  # Stdio mode (default)
  weyfar mcp serve

  # HTTP mode
  weyfar mcp serve --port 8081

Assistant configuration:
  {
    "mcpServers": {
      "weyfar": {
        "command": "/path/to/weyfar",
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

	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}
	if searchService == nil {
		return errors.New("search service not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search:  searchService,
		Airline: airlineService,
	})
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
