package commands

import (
	"fmt"

	"github.com/bryanchriswhite/WindowScout/internal/window"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find TITLE",
	Short: "Find the first window whose title contains TITLE",
	Long: `Find the first listed window whose title contains TITLE, compared
case-insensitively. Exits with an error when nothing matches.`,
	Example: `  # Find a browser window
  windowscout find firefox

  # Print the match as JSON
  windowscout find "notes.txt" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

var findFormat string

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().StringVarP(&findFormat, "format", "f", "table", "output format (table, json or yaml)")
}

func runFind(cmd *cobra.Command, args []string) error {
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

	info, err := windowMgr.FindByTitle(windowMgr.Mode(), args[0])
	if err != nil {
		return fmt.Errorf("find %q: %w", args[0], err)
	}

	return writeWindows(cmd.OutOrStdout(), findFormat, windowMgr.DescribeAll([]window.WindowInfo{info}))
}
