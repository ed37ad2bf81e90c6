package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// lz4Extension marks output files that get transparent compression.
const lz4Extension = ".lz4"

// fileRowHeader is the CSV column order of the per-file table, matching
// the columns the analysis stage expects.
var fileRowHeader = []string{
	"id", "human_id", "project_name", "commit_hash",
	"filename", "n_hunks", "n_lines", "n_files", "repeated_elsewhere",
}

// WriteFileRows writes the per-file table as CSV.
func WriteFileRows(w io.Writer, rows []FileRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(fileRowHeader); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.ID),
			row.HumanID,
			row.ProjectName,
			row.CommitHash,
			row.Filename,
			strconv.Itoa(row.Hunks),
			strconv.Itoa(row.Lines),
			strconv.Itoa(row.Files),
			strconv.FormatBool(row.Repeated),
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}

	return nil
}

// writeFileRowsTo writes rows to w, wrapping it in an lz4 frame writer when
// compressed is set. The frame trailer is flushed on Close, so a Close
// failure means a truncated table and must surface as a write error.
func writeFileRowsTo(w io.Writer, compressed bool, rows []FileRow) (err error) {
	if compressed {
		zw := lz4.NewWriter(w)

		defer func() {
			if closeErr := zw.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("flush compressed report: %w", closeErr)
			}
		}()

		w = zw
	}

	return WriteFileRows(w, rows)
}

// SaveFileRows writes the per-file table to path. A ".lz4" suffix enables
// transparent frame compression.
func SaveFileRows(path string, rows []FileRow) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close report file: %w", closeErr)
		}
	}()

	return writeFileRowsTo(out, strings.HasSuffix(path, lz4Extension), rows)
}

// LoadFileRowsReader wraps r with lz4 decompression when compressed is
// true and parses the per-file CSV table.
func LoadFileRowsReader(r io.Reader, compressed bool) ([]FileRow, error) {
	if compressed {
		r = lz4.NewReader(r)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(fileRowHeader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]FileRow, 0, len(records)-1)

	for _, record := range records[1:] {
		id, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("parse report id %q: %w", record[0], err)
		}

		hunks, err := strconv.Atoi(record[5])
		if err != nil {
			return nil, fmt.Errorf("parse hunk count %q: %w", record[5], err)
		}

		lines, err := strconv.Atoi(record[6])
		if err != nil {
			return nil, fmt.Errorf("parse line count %q: %w", record[6], err)
		}

		files, err := strconv.Atoi(record[7])
		if err != nil {
			return nil, fmt.Errorf("parse file count %q: %w", record[7], err)
		}

		repeated, err := strconv.ParseBool(record[8])
		if err != nil {
			return nil, fmt.Errorf("parse repeat flag %q: %w", record[8], err)
		}

		rows = append(rows, FileRow{
			ID:          id,
			HumanID:     record[1],
			ProjectName: record[2],
			CommitHash:  record[3],
			Filename:    record[4],
			Hunks:       hunks,
			Lines:       lines,
			Files:       files,
			Repeated:    repeated,
		})
	}

	return rows, nil
}

// LoadFileRows reads a per-file table from path, decompressing when the
// path carries the ".lz4" suffix.
func LoadFileRows(path string) ([]FileRow, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report file: %w", err)
	}
	defer in.Close()

	return LoadFileRowsReader(in, strings.HasSuffix(path, lz4Extension))
}
