package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gwork-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/gwork-cli/internal/logger"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gateway operations as MCP tools",
	Long: `Expose sheets_append, sheets_read, drive_upload and
gmail_create_draft as MCP tools. Serves over stdio by default; pass
--port for streamable HTTP. Config file edits take effect without a
restart while the server runs.`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVar(&mcpPort, "port", 0, "serve over HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if err := ensureStores(); err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Tabular:   newTabular,
		Storage:   newStorage,
		Messaging: newMessaging,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		if err := configStore.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("config watch stopped: %v", err)
		}
	}()

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		logger.Info("MCP server listening on %s", addr)
		return server.RunHTTP(ctx, addr)
	}
	return server.Run(ctx)
}
