package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig   string
	flagCache    string
	flagInterval string
	flagOpen     bool
)

var rootCmd = &cobra.Command{
	Use:   "eowatch",
	Short: "Watch the Federal Register for new executive orders",
	Long: `eowatch polls the Federal Register for executive orders, prints each one it
has not seen before and remembers it in a local seen-set file.

The poll interval slows down after failed checks and speeds back up one step
at a time once checks succeed again. Stop with Ctrl+C.`,
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagCache, "cache", "", "path to the seen-set file (overrides cache_file)")
	rootCmd.Flags().StringVar(&flagInterval, "interval", "", "comma-separated poll schedule, fastest first (e.g., 1s,5s,1m)")
	rootCmd.PersistentFlags().BoolVar(&flagOpen, "open", false, "open each new order in the browser")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(seenCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "eowatch %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// Execute runs the root command. An interrupt cancels the command context,
// which the monitor treats as a clean stop.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
