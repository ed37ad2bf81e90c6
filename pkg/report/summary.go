package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/minimize"
)

const msgNoBugs = "No bugs processed"

// RenderSummary writes a per-bug table of change counts plus dataset-wide
// totals to w.
func RenderSummary(w io.Writer, rows []BugRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, msgNoBugs)

		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Bug", "Project", "Files", "Hunks", "Lines", "Status"})

	totalFiles, totalHunks, totalLines := 0, 0, 0

	for _, row := range rows {
		tw.AppendRow(table.Row{
			row.ComprehensiveID,
			row.ProjectName,
			row.Files,
			row.Hunks,
			row.Lines,
			statusLabel(row),
		})

		totalFiles += row.Files
		totalHunks += row.Hunks
		totalLines += row.Lines
	}

	tw.AppendFooter(table.Row{
		"TOTAL",
		fmt.Sprintf("%s bugs", humanize.Comma(int64(len(rows)))),
		totalFiles,
		totalHunks,
		totalLines,
		"",
	})

	tw.Render()
}

func statusLabel(row BugRow) string {
	switch row.Status {
	case minimize.StatusOk:
		return color.GreenString("ok")
	case minimize.StatusPartial:
		return color.YellowString("partial (%d warnings)", row.Warnings)
	case minimize.StatusFailed:
		return color.RedString("failed")
	default:
		return string(row.Status)
	}
}
