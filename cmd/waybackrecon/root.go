package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/waybackrecon/internal/config"
)

// errReported is returned by commands that already printed their own
// failure line. Execute exits with status 1 without printing it again.
var errReported = errors.New("error already reported")

// Persistent flag names shared by all subcommands.
const (
	flagVerbose   = "verbose"
	flagNoColor   = "no-color"
	flagConfig    = "config"
	flagDBDir     = "db-dir"
	flagNoHistory = "no-history"
	flagLogJSON   = "log-json"
)

// NewRootCmd creates the root command for waybackrecon.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waybackrecon",
		Short: "Collect and mine archived URLs from the Wayback Machine",
		Long: `waybackrecon collects historical URLs for a list of domains from the
Wayback Machine CDX index and writes, per domain, categorized URL lists,
unique endpoints and unique query parameter names.

Run 'collect' first; 'endpoints' and 'params' work on the URL list that
collect stored for each domain.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP(flagVerbose, "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool(flagNoColor, false, "Disable colored output")
	cmd.PersistentFlags().StringP(flagConfig, "c", "",
		"Configuration file path (default: .waybackrecon in current or home directory)")
	cmd.PersistentFlags().StringP(config.FlagOutputDir, "o", config.DefaultOutputDir,
		"Directory that holds the per-domain output directories")
	cmd.PersistentFlags().String(flagDBDir, config.XDGDataDir(),
		"Directory of the run history database")
	cmd.PersistentFlags().Bool(flagNoHistory, false, "Do not record runs in the history database")
	cmd.PersistentFlags().Bool(flagLogJSON, false, "Emit diagnostic logs as JSON")

	// Add subcommands
	cmd.AddCommand(NewCollectCmd())
	cmd.AddCommand(NewEndpointsCmd())
	cmd.AddCommand(NewParamsCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// exactArgs is cobra.ExactArgs with the command's usage line appended to
// the error, since usage output is otherwise silenced.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w\nUsage: %s", err, cmd.UseLine())
		}
		return nil
	}
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
