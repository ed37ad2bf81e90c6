// Package report aggregates pipeline results into the per-file and per-bug
// tables consumed by the downstream analysis stage, and renders operator
// summaries.
package report

import (
	"sort"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/dataset"
	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/minimize"
)

// FileRow is one per-file measurement: the hunk and line counts of a single
// emitted change record, joined with the bug's metadata.
type FileRow struct {
	ID          int
	HumanID     string
	ProjectName string
	CommitHash  string

	Filename string
	Hunks    int
	Lines    int
	Files    int
	Repeated bool
}

// BugRow is the per-bug aggregation: sums over the bug's file rows, keyed
// by the "human_id (id)" comprehensive identifier.
type BugRow struct {
	ComprehensiveID string
	ID              int
	HumanID         string
	ProjectName     string
	CommitHash      string

	Hunks int
	Lines int
	Files int

	Status   minimize.Status
	Warnings int
}

// FileRows flattens one processed bug into per-file rows, one per change
// record.
func FileRows(meta *dataset.Metadata, result *minimize.CommitResult) []FileRow {
	rows := make([]FileRow, 0, len(result.Records))

	for _, record := range result.Records {
		rows = append(rows, FileRow{
			ID:          meta.ID,
			HumanID:     meta.HumanID,
			ProjectName: meta.ProjectName,
			CommitHash:  meta.CommitHash,
			Filename:    record.Path,
			Hunks:       record.ChangeUnits,
			Lines:       record.ModifiedLines,
			Files:       1,
			Repeated:    record.RepeatedElsewhere,
		})
	}

	return rows
}

// BugRowOf sums a processed bug into its aggregate row.
func BugRowOf(meta *dataset.Metadata, result *minimize.CommitResult) BugRow {
	row := BugRow{
		ComprehensiveID: meta.ComprehensiveID(),
		ID:              meta.ID,
		HumanID:         meta.HumanID,
		ProjectName:     meta.ProjectName,
		CommitHash:      meta.CommitHash,
		Status:          result.Status,
		Warnings:        len(result.Warnings),
	}

	for _, record := range result.Records {
		row.Hunks += record.ChangeUnits
		row.Lines += record.ModifiedLines
		row.Files++
	}

	return row
}

// SortBugRows orders rows by project, then id, for stable output.
func SortBugRows(rows []BugRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProjectName != rows[j].ProjectName {
			return rows[i].ProjectName < rows[j].ProjectName
		}

		return rows[i].ID < rows[j].ID
	})
}
