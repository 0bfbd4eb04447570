package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bryanchriswhite/WindowScout/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve window discovery as MCP tools over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout exposing the
list_windows and find_window tools. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	configMgr, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := configMgr.Get()
	applyLogging(cfg)

	windowMgr, err := openWindowManager(cfg)
	if err != nil {
		return err
	}
	defer windowMgr.System().Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcp.NewServer(windowMgr).Run(ctx)
}
