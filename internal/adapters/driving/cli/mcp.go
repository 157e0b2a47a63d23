package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lionweb-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the deserialize and measure tools, the configured
languages and the recorded measurements. By default it communicates over
stdio using JSON-RPC.

Examples:
  # Stdio mode (default)
  lionweb mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  lionweb mcp serve --port 8080`,
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

	server, err := mcp.NewServer(mcpPorts())
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

// mcpPorts adapts the command engine to the MCP server ports.
func mcpPorts() *mcp.Ports {
	ports := &mcp.Ports{
		Engine: func(languageFiles []string) (*mcp.Engine, error) {
			eng, err := newEngine(languageFiles)
			if err != nil {
				return nil, err
			}
			return &mcp.Engine{Deserialize: eng.deserialize, Measure: eng.measure}, nil
		},
	}
	if history, err := historyService(); err == nil {
		ports.History = history
	}
	return ports
}
