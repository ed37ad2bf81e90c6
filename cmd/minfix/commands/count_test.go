package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/report"
)

func writeCountDataset(t *testing.T, root string) {
	t.Helper()

	bug := filepath.Join(root, "Cirq", "Cirq#691")
	writeTestFile(t, filepath.Join(bug, "metadata.json"), validMetadata)
	writeTestFile(t, filepath.Join(bug, "before", "cirq", "sim.py"), "def f(x):\n    return x + 1\n")
	writeTestFile(t, filepath.Join(bug, "after", "cirq", "sim.py"), "def f(x):\n    # off-by-one\n    return x + 2\n")
	writeTestFile(t, filepath.Join(bug, "after", "cirq", "sim_test.py"), "def test_f():\n    assert f(1) == 3\n")
}

func TestCountCommand_WritesReport(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeCountDataset(t, root)

	output := filepath.Join(t.TempDir(), "report.csv")

	cmd := NewCountCommand()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{root, "-o", output, "-w", "2"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Cirq#691 (1)")

	rows, err := report.LoadFileRows(output)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "cirq/sim.py", rows[0].Filename)
	assert.Equal(t, 1, rows[0].Hunks)
	assert.Equal(t, 1, rows[0].Lines)
}

func TestCountCommand_ShowDiffs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeCountDataset(t, root)

	cmd := NewCountCommand()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{root, "--show-diffs"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "--- before/cirq/sim.py")
	assert.Contains(t, out.String(), "+++ after/cirq/sim.py")
}

func TestCountCommand_MissingDataset(t *testing.T) {
	t.Parallel()

	cmd := NewCountCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent")})

	assert.Error(t, cmd.Execute())
}
