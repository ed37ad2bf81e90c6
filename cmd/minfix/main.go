// Package main provides the entry point for the minfix CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/cmd/minfix/commands"
	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "minfix",
		Short: "Minfix - minimal bug-fix curation pipeline",
		Long: `Minfix curates bug-fixing commits down to their minimal form and counts
the meaningful changes per commit.

Commands:
  count     Process a curated before/after dataset
  mine      Mine a commit straight from a git repository
  validate  Check dataset metadata files against the schema
  annotate  Check an annotation table against the label taxonomy`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	commands.AddLoggingFlags(rootCmd)

	rootCmd.AddCommand(commands.NewCountCommand())
	rootCmd.AddCommand(commands.NewMineCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewAnnotateCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "minfix %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
