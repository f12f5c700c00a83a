package cli

import (
	"fmt"
	"strings"

	inframcp "github.com/felixgeelhaar/ricemill/internal/infrastructure/mcp"
	"github.com/spf13/cobra"
)

var (
	mcpTransport string
	mcpAddr      string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Ricemill MCP server",
	Long:  `Exposes the workspace to MCP clients over stdio, HTTP or WebSocket: the ranked backlog, planning views, natural language questions and what-if simulation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getProjectRoot()
		if err != nil {
			return err
		}
		server, err := inframcp.NewServer(root)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		switch strings.ToLower(mcpTransport) {
		case "stdio", "":
			return server.ServeStdio(ctx)
		case "http":
			return server.ServeHTTP(ctx, mcpAddr)
		case "ws", "websocket":
			return server.ServeWebSocket(ctx, mcpAddr)
		default:
			return fmt.Errorf("unsupported transport: %s", mcpTransport)
		}
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport to use (stdio, http, ws)")
	mcpCmd.Flags().StringVar(&mcpAddr, "addr", ":8080", "Address for http/ws transports")
	RootCmd.AddCommand(mcpCmd)
}
