package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/minimize"
)

func TestRenderSummary_EmptyRows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	RenderSummary(&buf, nil)

	assert.Contains(t, buf.String(), "No bugs processed")
}

func TestRenderSummary_RowsAndTotals(t *testing.T) {
	t.Parallel()

	rows := []BugRow{
		{ComprehensiveID: "Cirq#691 (7)", ProjectName: "Cirq", Files: 2, Hunks: 3, Lines: 6, Status: minimize.StatusOk},
		{ComprehensiveID: "qiskit#9 (8)", ProjectName: "qiskit-terra", Files: 1, Hunks: 1, Lines: 1, Status: minimize.StatusPartial, Warnings: 1},
	}

	var buf bytes.Buffer

	RenderSummary(&buf, rows)

	out := buf.String()
	assert.Contains(t, out, "Cirq#691 (7)")
	assert.Contains(t, out, "qiskit#9 (8)")

	// The footer row is rendered with the default upper-case formatting.
	lower := strings.ToLower(out)
	assert.Contains(t, lower, "total")
	assert.Contains(t, lower, "2 bugs")
}
