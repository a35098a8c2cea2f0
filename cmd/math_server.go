package cmd

import (
	"context"
	"os/signal"
	"syscall"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/crystaldolphin/toolchat/internal/mathserver"
)

var mathServerCmd = &cobra.Command{
	Use:   "math-server",
	Short: "Serve the arithmetic tools over stdio",
	Long:  "Runs the bundled arithmetic MCP server on stdin/stdout. The default config spawns it as the \"math\" backend.",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return mathserver.Serve(ctx, version, &mcpsdk.StdioTransport{})
	},
}
