package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/tessera/internal/config"
	"github.com/aretw0/tessera/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the layout editor as an MCP Server.
This allows AI agents to build layouts through tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := newManager(nil)
		if err != nil {
			return err
		}
		defer cleanup()

		srv := mcp.NewServer(mgr, logger)

		switch cfg.MCP.Transport {
		case config.TransportStdio:
			// Logs go to stderr; stdout carries JSON-RPC.
			logger.Info("Starting Tessera MCP Server (Stdio)")
			return srv.ServeStdio()
		case config.TransportSSE:
			logger.Info("Starting Tessera MCP Server (SSE)", "port", cfg.MCP.Port)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, cfg.MCP.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("MCP server execution failed: %w", err)
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", cfg.MCP.Transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("mcp-transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("mcp-port", 8081, "Port to listen on (only for SSE)")
	mcpCmd.Flags().String("events-backend", "memory", "Layout event bus: memory or redis")
	mcpCmd.Flags().String("redis-addr", "localhost:6379", "Redis address for the redis event bus")
}
