package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/internal/config"
	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/dataset"
	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/gitsource"
	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/minimize"
	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/report"
)

// shortHashLen is the abbreviated hash length used in human identifiers.
const shortHashLen = 8

// MineCommand holds configuration for the mine command.
type MineCommand struct {
	configPath string
	repoName   string
	bugInTests bool
	showDiffs  bool
}

// NewMineCommand creates the "mine" subcommand: mine one commit straight
// from a git repository and count its minimal changes.
func NewMineCommand() *cobra.Command {
	mc := &MineCommand{}

	cmd := &cobra.Command{
		Use:   "mine <repo-path> <commit-hash>",
		Short: "Mine a commit from a git repository and count its changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mc.run(cmd, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&mc.configPath, "config", "c", "", "config file path")
	cmd.Flags().StringVar(&mc.repoName, "name", "", "repository name (defaults to the directory name)")
	cmd.Flags().BoolVar(&mc.bugInTests, "bug-in-tests", false, "the bug under study resides in test code")
	cmd.Flags().BoolVar(&mc.showDiffs, "show-diffs", false, "render a unified diff per emitted record")

	return cmd
}

func (mc *MineCommand) run(cmd *cobra.Command, repoPath, hash string) error {
	cfg, err := config.LoadConfig(mc.configPath)
	if err != nil {
		return err
	}

	name := mc.repoName
	if name == "" {
		name = filepath.Base(repoPath)
	}

	rules := cfg.PathRules()
	if err := rules.Validate(); err != nil {
		return err
	}

	source, err := gitsource.Open(repoPath, name, rules)
	if err != nil {
		return err
	}

	commit, err := source.Mine(hash, mc.bugInTests)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	pipe := minimize.NewPipeline(rules, cfg.Pipeline.Workers, logger, nil)

	result, err := pipe.Run(cmd.Context(), commit)
	if err != nil {
		return err
	}

	meta := &dataset.Metadata{
		HumanID:     fmt.Sprintf("%s@%s", name, shortHash(hash)),
		ProjectName: name,
		CommitHash:  hash,
		IsMerge:     commit.IsMerge,
	}

	report.RenderSummary(cmd.OutOrStdout(), []report.BugRow{report.BugRowOf(meta, result)})

	if mc.showDiffs {
		return renderDiffs(cmd, commit, result)
	}

	return nil
}

func shortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}

	return hash
}
