package commands

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/annotate"
)

// ErrAnnotationInvalid indicates at least one annotation row carries a
// label outside the taxonomy.
var ErrAnnotationInvalid = errors.New("annotation labels outside taxonomy")

// AnnotateCommand holds configuration for the annotate command.
type AnnotateCommand struct {
	taxonomyPath string
}

// NewAnnotateCommand creates the "annotate" subcommand: check an annotation
// table against the label taxonomy and summarize the confirmed bugs per
// component.
func NewAnnotateCommand() *cobra.Command {
	ac := &AnnotateCommand{}

	cmd := &cobra.Command{
		Use:   "annotate <table.csv>",
		Short: "Check an annotation table against the label taxonomy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ac.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&ac.taxonomyPath, "taxonomy", "t", "", "YAML taxonomy file (default: built-in vocabulary)")

	return cmd
}

func (ac *AnnotateCommand) run(cmd *cobra.Command, tablePath string) error {
	in, err := os.Open(tablePath)
	if err != nil {
		return fmt.Errorf("open annotation table: %w", err)
	}
	defer in.Close()

	rows, err := annotate.ReadTable(in)
	if err != nil {
		return err
	}

	taxonomy, err := ac.loadTaxonomy()
	if err != nil {
		return err
	}

	bugs := annotate.FilterBugs(rows)
	invalid := 0

	for _, row := range bugs {
		if annotate.IsCrossReferenced(row.HumanID) {
			fmt.Fprintf(cmd.OutOrStdout(), "note: %s is tracked as %s\n",
				row.HumanID, annotate.ResolveCrossReference(row.HumanID))
		}

		problems := taxonomy.Check(row)
		if len(problems) == 0 {
			continue
		}

		invalid++

		for _, problem := range problems {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", color.RedString("FAIL"), row.HumanID, problem)
		}
	}

	renderComponentCounts(cmd, bugs)

	fmt.Fprintf(cmd.OutOrStdout(), "%d rows, %d confirmed bugs, %d with labels outside the taxonomy\n",
		len(rows), len(bugs), invalid)

	if invalid > 0 {
		return fmt.Errorf("%w: %d rows", ErrAnnotationInvalid, invalid)
	}

	return nil
}

func (ac *AnnotateCommand) loadTaxonomy() (*annotate.Taxonomy, error) {
	if ac.taxonomyPath == "" {
		return annotate.DefaultTaxonomy(), nil
	}

	data, err := os.ReadFile(ac.taxonomyPath)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}

	return annotate.ParseTaxonomy(data)
}

// renderComponentCounts prints how many confirmed bugs touch each
// component. Multi-label cells count once per component.
func renderComponentCounts(cmd *cobra.Command, bugs []annotate.Row) {
	expanded := annotate.ExpandLabels(bugs,
		func(r annotate.Row) string { return r.Component },
		func(r *annotate.Row, label string) { r.Component = label })

	counts := make(map[string]int)

	for _, row := range expanded {
		if row.Component != "" {
			counts[row.Component]++
		}
	}

	components := make([]string, 0, len(counts))
	for component := range counts {
		components = append(components, component)
	}

	sort.Strings(components)

	for _, component := range components {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d\n", component, counts[component])
	}
}
