// Package commands implements CLI command handlers for minfix.
package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/internal/config"
	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/internal/observability"
	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/dataset"
	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/minimize"
	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/report"
)

// CountCommand holds configuration and dependencies for the count command.
type CountCommand struct {
	configPath  string
	workers     int
	outputPath  string
	showDiffs   bool
	metricsAddr string
}

// NewCountCommand creates the "count" subcommand: process a curated
// before/after dataset and report change counts per bug.
func NewCountCommand() *cobra.Command {
	cc := &CountCommand{}

	cmd := &cobra.Command{
		Use:   "count <dataset-dir>",
		Short: "Count minimal changes across a curated bug dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cc.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&cc.configPath, "config", "c", "", "config file path")
	cmd.Flags().IntVarP(&cc.workers, "workers", "w", 0, "file-level parallelism (0 = CPU count)")
	cmd.Flags().StringVarP(&cc.outputPath, "output", "o", "", "per-file report CSV path (.lz4 compresses)")
	cmd.Flags().BoolVar(&cc.showDiffs, "show-diffs", false, "render a unified diff per emitted record")
	cmd.Flags().StringVar(&cc.metricsAddr, "metrics-addr", "", "expose /metrics and /healthz at this address")

	return cmd
}

func (cc *CountCommand) run(cmd *cobra.Command, root string) error {
	cfg, err := config.LoadConfig(cc.configPath)
	if err != nil {
		return err
	}

	cc.applyOverrides(cfg)

	rules := cfg.PathRules()
	if err := rules.Validate(); err != nil {
		return err
	}

	logger := newLogger(cmd)

	metrics, closeDiag, err := setupMetrics(cfg.Metrics.Addr, logger)
	if err != nil {
		return err
	}
	defer closeDiag()

	source := dataset.NewSource(rules)

	bugs, err := source.LoadDataset(root)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	pipe := minimize.NewPipeline(rules, cfg.Pipeline.Workers, logger, metrics)

	var (
		fileRows []report.FileRow
		bugRows  []report.BugRow
		failed   int
	)

	for _, bug := range bugs {
		result, runErr := pipe.Run(cmd.Context(), bug.Commit)
		if runErr != nil {
			if errors.Is(runErr, minimize.ErrZeroFileCommit) {
				logger.Error("bug failed, re-mine required", "bug", bug.Meta.HumanID, "error", runErr)

				failed++
				bugRows = append(bugRows, report.BugRowOf(bug.Meta, result))

				continue
			}

			return runErr
		}

		fileRows = append(fileRows, report.FileRows(bug.Meta, result)...)
		bugRows = append(bugRows, report.BugRowOf(bug.Meta, result))

		if cfg.Output.ShowDiffs || cc.showDiffs {
			if err := renderDiffs(cmd, bug.Commit, result); err != nil {
				return err
			}
		}
	}

	report.SortBugRows(bugRows)
	report.RenderSummary(cmd.OutOrStdout(), bugRows)

	if path := cfg.Output.Path; path != "" {
		if err := report.SaveFileRows(path, fileRows); err != nil {
			return err
		}

		logger.Info("report written", "path", path, "rows", len(fileRows))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d bugs failed processing", failed, len(bugs)) //nolint:err113 // summary error for exit status.
	}

	return nil
}

func (cc *CountCommand) applyOverrides(cfg *config.Config) {
	if cc.workers > 0 {
		cfg.Pipeline.Workers = cc.workers
	}

	if cc.outputPath != "" {
		cfg.Output.Path = cc.outputPath
	}

	if cc.metricsAddr != "" {
		cfg.Metrics.Addr = cc.metricsAddr
	}
}

// setupMetrics wires Prometheus counters and the diagnostics server when an
// address is configured. The returned closer is always safe to call.
func setupMetrics(addr string, logger *slog.Logger) (minimize.Metrics, func(), error) {
	if addr == "" {
		return nil, func() {}, nil
	}

	registry := prometheus.NewRegistry()

	metrics, err := observability.NewPipelineMetrics(registry)
	if err != nil {
		return nil, func() {}, err
	}

	diag, err := observability.NewDiagnosticsServer(addr, registry)
	if err != nil {
		return nil, func() {}, err
	}

	logger.Info("diagnostics server listening", "addr", diag.Addr())

	return metrics, func() {
		if closeErr := diag.Close(); closeErr != nil {
			logger.Warn("diagnostics shutdown failed", "error", closeErr)
		}
	}, nil
}

func renderDiffs(cmd *cobra.Command, commit *minimize.Commit, result *minimize.CommitResult) error {
	byPath := make(map[string]minimize.FilePair, len(commit.Pairs))
	for _, pair := range commit.Pairs {
		byPath[pair.Path] = pair
	}

	for _, record := range result.Records {
		pair := byPath[record.Path]

		text, err := report.RenderUnifiedDiff(record.Path, pair.Before, pair.After)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
	}

	return nil
}
