package commands

import (
	"fmt"
	"os"

	"github.com/bryanchriswhite/WindowScout/internal/config"
	"github.com/bryanchriswhite/WindowScout/internal/logger"
	"github.com/bryanchriswhite/WindowScout/internal/window"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "windowscout",
		Short: "WindowScout - discover the windows a user would call open applications",
		Long: `WindowScout walks the desktop's top-level windows and reports the ones a
user would recognize as open applications.

Features:
  • Two traversal strategies with automatic fallback
  • Skips tool, child, cloaked and (optionally) minimized windows
  • Resolves shell-hosted apps to their real content window
  • Never reports its own console window
  • REST + WebSocket API and an MCP server for integration`,
		SilenceUsage:      true,
		PersistentPreRunE: initLogging,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/windowscout/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("mode", "", "search mode (exclude-minimized or include-minimized)")

	// Bind flags to viper
	viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag(config.KeySearchMode, rootCmd.PersistentFlags().Lookup("mode"))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// loadConfig opens the config file and applies command-line overrides.
func loadConfig() (*config.Manager, error) {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if level := viper.GetString(config.KeyLogLevel); level != "" {
		if err := configMgr.Set(config.KeyLogLevel, level); err != nil {
			return nil, err
		}
	}
	if mode := viper.GetString(config.KeySearchMode); mode != "" {
		if err := configMgr.Set(config.KeySearchMode, mode); err != nil {
			return nil, err
		}
	}
	return configMgr, nil
}

func initLogging(cmd *cobra.Command, args []string) error {
	level := viper.GetString(config.KeyLogLevel)
	if level == "" {
		level = config.Defaults().LogLevel
	}
	if !logger.ValidLevel(level) {
		return fmt.Errorf("invalid log level: %s (use: debug, info, warn, error)", level)
	}
	logger.Init(level, logger.IsTerminal())
	return nil
}

// applyLogging re-initializes the logger from the loaded configuration.
func applyLogging(cfg *config.Config) {
	logger.Init(cfg.LogLevel, cfg.LogPretty || logger.IsTerminal())
}

// openWindowManager connects to the platform window system.
func openWindowManager(cfg *config.Config) (*window.Manager, error) {
	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}

	sys, err := window.NewSystem()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to window system: %w", err)
	}

	logger.WithComponent("cli").Debug().
		Str("backend", sys.Name()).
		Str("mode", mode.String()).
		Msg("Window system connected")

	return window.NewManager(sys, mode), nil
}
