package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/dataset"
)

// ErrValidationFailed indicates at least one metadata file violated the
// schema.
var ErrValidationFailed = errors.New("metadata validation failed")

// NewValidateCommand creates the "validate" subcommand: check every
// metadata.json under a dataset root against the schema.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <dataset-dir>",
		Short: "Validate dataset metadata files against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, root string) error {
	invalid := 0
	checked := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || d.Name() != "metadata.json" {
			return nil
		}

		checked++

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}

		if validateErr := dataset.ValidateMetadata(data); validateErr != nil {
			invalid++

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n", color.RedString("FAIL"), path, validateErr)

			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("ok"), path)

		return nil
	})
	if err != nil {
		return fmt.Errorf("walk dataset: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d metadata files checked, %d invalid\n", checked, invalid)

	if invalid > 0 {
		return fmt.Errorf("%w: %d files", ErrValidationFailed, invalid)
	}

	return nil
}
