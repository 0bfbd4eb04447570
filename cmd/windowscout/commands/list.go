package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bryanchriswhite/WindowScout/internal/window"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List open application windows",
	Long: `List every top-level window a user would recognize as an open application,
in window-system order.

Minimized windows are omitted unless --mode include-minimized is given.`,
	Example: `  # List windows in table format (default)
  windowscout list

  # Include minimized windows
  windowscout list --mode include-minimized

  # List windows in JSON format
  windowscout list --format json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listFormat string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json or yaml)")
}

func runList(cmd *cobra.Command, args []string) error {
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

	windows := windowMgr.DescribeAll(windowMgr.Snapshot(windowMgr.Mode()))
	return writeWindows(cmd.OutOrStdout(), listFormat, windows)
}

func writeWindows(out io.Writer, format string, windows []window.Details) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(windows)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(windows)
	case "table":
		return printWindowsTable(out, windows)
	default:
		return fmt.Errorf("unsupported format: %s (use 'table', 'json' or 'yaml')", format)
	}
}

func printWindowsTable(out io.Writer, windows []window.Details) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "HANDLE\tPID\tPROCESS\tCLASS\tTITLE")
	fmt.Fprintln(w, "------\t---\t-------\t-----\t-----")

	for _, d := range windows {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", d.Handle, d.PID, d.Process, d.Class, d.Title)
	}

	return w.Flush()
}
