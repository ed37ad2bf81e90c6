// Package annotate models the downstream annotation table: one row per
// inspected commit with the manually assigned bug labels. The table is
// maintained externally (a spreadsheet dump); this package only reads,
// filters, and writes it.
package annotate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row is one annotation table entry.
type Row struct {
	ID         string
	HumanID    string
	Repo       string
	CommitHash string

	// Real separates confirmed bugs from false positives; only rows with
	// Real == "bug" enter the analysis.
	Real string

	// Type is "Quantum" or "Classical" after canonicalization.
	Type string

	Component  string
	Symptom    string
	BugPattern string
	Complexity string
	Comment    string

	// Localization links the row to the file/line of the fix.
	Localization string
}

// header is the canonical CSV column order.
var header = []string{
	"id", "human_id", "repo", "commit_hash", "real", "type",
	"component", "symptom", "bug_pattern", "complexity", "comment",
	"localization",
}

// typeAliases canonicalize the free-form type labels of the spreadsheet.
var typeAliases = map[string]string{
	"classical": "Classical",
	"quantum":   "Quantum",
}

// ReadTable parses an annotation CSV with the canonical header.
func ReadTable(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read annotation table: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]Row, 0, len(records)-1)

	for _, record := range records[1:] {
		rows = append(rows, Row{
			ID:           record[0],
			HumanID:      record[1],
			Repo:         record[2],
			CommitHash:   record[3],
			Real:         record[4],
			Type:         canonicalType(record[5]),
			Component:    record[6],
			Symptom:      record[7],
			BugPattern:   record[8],
			Complexity:   record[9],
			Comment:      record[10],
			Localization: record[11],
		})
	}

	return rows, nil
}

// WriteTable writes rows as CSV with the canonical header.
func WriteTable(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write annotation header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.ID, row.HumanID, row.Repo, row.CommitHash, row.Real,
			row.Type, row.Component, row.Symptom, row.BugPattern,
			row.Complexity, row.Comment, row.Localization,
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write annotation row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush annotation table: %w", err)
	}

	return nil
}

// FilterBugs keeps only rows annotated as confirmed bugs.
func FilterBugs(rows []Row) []Row {
	var bugs []Row

	for _, row := range rows {
		if row.Real == "bug" {
			bugs = append(bugs, row)
		}
	}

	return bugs
}

// ExpandLabels splits comma-separated multi-label cells into one row per
// label, for the named column accessor/setter pair. Used when a single bug
// carries several component or pattern annotations.
func ExpandLabels(rows []Row, get func(Row) string, set func(*Row, string)) []Row {
	var expanded []Row

	for _, row := range rows {
		labels := strings.Split(get(row), ",")

		for _, label := range labels {
			clone := row
			set(&clone, strings.TrimSpace(label))
			expanded = append(expanded, clone)
		}
	}

	return expanded
}

func canonicalType(value string) string {
	if canonical, ok := typeAliases[strings.ToLower(strings.TrimSpace(value))]; ok {
		return canonical
	}

	return value
}
