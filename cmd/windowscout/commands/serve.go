package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bryanchriswhite/WindowScout/internal/api"
	"github.com/bryanchriswhite/WindowScout/internal/config"
	"github.com/bryanchriswhite/WindowScout/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the WindowScout API server",
	Long: `Start the WindowScout HTTP server.

The server polls the window list and exposes it over a REST API and a
WebSocket stream. Edits to the config file's search mode and log level are
applied without a restart.`,
	Example: `  # Start server on default port (8080)
  windowscout serve

  # Start server on custom port
  windowscout serve --port 9090

  # Start with debug logging
  windowscout serve --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "server port (default is 8080)")
	viper.BindPFlag(config.KeyServerPort, serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	configMgr, err := loadConfig()
	if err != nil {
		return err
	}

	// Override port from flag if provided
	if port := viper.GetInt(config.KeyServerPort); port > 0 {
		if err := configMgr.Set(config.KeyServerPort, fmt.Sprint(port)); err != nil {
			return err
		}
	}

	cfg := configMgr.Get()
	applyLogging(cfg)
	log.Info().
		Str("path", configMgr.GetConfigPath()).
		Str("log_level", cfg.LogLevel).
		Msg("Configuration loaded")

	windowMgr, err := openWindowManager(cfg)
	if err != nil {
		return err
	}
	defer windowMgr.System().Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := windowMgr.Start(ctx, cfg.PollInterval()); err != nil {
		return fmt.Errorf("failed to start window manager: %w", err)
	}

	configMgr.Watch(func(updated *config.Config) {
		applyLogging(updated)
		if mode, err := updated.Mode(); err == nil && mode != windowMgr.Mode() {
			log.Info().Str("mode", mode.String()).Msg("Search mode changed")
			windowMgr.SetMode(mode)
			windowMgr.Refresh()
		}
	})

	server := api.NewServer(windowMgr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.ServerPort)
	}()

	log.Info().
		Int("port", cfg.ServerPort).
		Str("backend", windowMgr.System().Name()).
		Str("mode", windowMgr.Mode().String()).
		Msgf("WindowScout is running at http://localhost:%d/api", cfg.ServerPort)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down gracefully...")
	return nil
}
