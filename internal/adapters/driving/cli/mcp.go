package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/presentai/presentai/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can list and
export your presentations.

Tools:
  list_presentations   List stored presentations
  list_themes          List available themes
  export_presentation  Export a presentation to a base64 .pptx payload

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  presentai mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  presentai mcp serve --port 8081

Client configuration:
  {
    "mcpServers": {
      "presentai": {
        "command": "/path/to/presentai",
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
	owner, err := currentOwner()
	if err != nil {
		return err
	}

	ports := &mcp.Ports{
		Export:       exportService,
		Presentation: presentationService,
		Theme:        themeService,
		OwnerID:      owner,
	}

	server, err := mcp.NewServer(ports)
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
