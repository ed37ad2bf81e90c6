package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// AddLoggingFlags registers the global verbosity flags on the root command.
func AddLoggingFlags(root *cobra.Command) {
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
}

// newLogger builds a command-scoped logger honoring the verbosity flags.
// Quiet wins over verbose.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
