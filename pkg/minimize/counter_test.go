package minimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distinctVerdict(path string, hunks ...Hunk) FileVerdict {
	modified := 0
	for i := range hunks {
		modified += hunks[i].ModifiedLines()
	}

	return FileVerdict{
		Path: path,
		Verdict: Verdict{
			ChangeUnits:   len(hunks),
			ModifiedLines: modified,
			Hunks:         hunks,
		},
	}
}

func TestCount_EquivalentVerdictsDropped(t *testing.T) {
	t.Parallel()

	commit := &Commit{Repo: "qiskit-terra", Hash: "abc123"}
	c := NewCounter()

	records := c.Count(commit, []FileVerdict{
		{Path: "a.py", Verdict: Verdict{Equivalent: true}},
	})

	assert.Empty(t, records)
}

func TestCount_EmitsOneRecordPerDistinctFile(t *testing.T) {
	t.Parallel()

	commit := &Commit{Repo: "qiskit-terra", Hash: "abc123"}
	c := NewCounter()

	records := c.Count(commit, []FileVerdict{
		distinctVerdict("a.py", Hunk{Deleted: []string{"x = 1"}, Added: []string{"x = 2"}}),
		{Path: "b.py", Verdict: Verdict{Equivalent: true}},
		distinctVerdict("c.py", Hunk{Deleted: []string{"y = 1"}, Added: []string{"y = 2"}}),
	})

	require.Len(t, records, 2)
	assert.Equal(t, "a.py", records[0].Path)
	assert.Equal(t, "c.py", records[1].Path)
	assert.Equal(t, "qiskit-terra@abc123", records[0].CommitID)
}

func TestCount_SameGuardCloneTaggedRepeated(t *testing.T) {
	t.Parallel()

	commit := &Commit{Repo: "cirq", Hash: "def456"}
	c := NewCounter()

	guard := Hunk{
		Deleted: []string{"    if qubits:"},
		Added:   []string{"    if qubits is not None:"},
	}

	records := c.Count(commit, []FileVerdict{
		distinctVerdict("gates.py", guard),
		distinctVerdict("moments.py", guard),
	})

	require.Len(t, records, 2)
	assert.False(t, records[0].RepeatedElsewhere)
	assert.True(t, records[1].RepeatedElsewhere)
	assert.Equal(t, 2, Total(records))
}

func TestCount_RepeatIgnoresIndentation(t *testing.T) {
	t.Parallel()

	commit := &Commit{Repo: "cirq", Hash: "def456"}
	c := NewCounter()

	records := c.Count(commit, []FileVerdict{
		distinctVerdict("a.py", Hunk{Deleted: []string{"if x:"}, Added: []string{"if x is not None:"}}),
		distinctVerdict("b.py", Hunk{Deleted: []string{"        if x:"}, Added: []string{"        if x is not None:"}}),
	})

	require.Len(t, records, 2)
	assert.True(t, records[1].RepeatedElsewhere)
}

func TestCount_PartialOverlapNotRepeated(t *testing.T) {
	t.Parallel()

	commit := &Commit{Repo: "cirq", Hash: "def456"}
	c := NewCounter()

	shared := Hunk{Deleted: []string{"old()"}, Added: []string{"new()"}}
	unique := Hunk{Deleted: []string{"a = 1"}, Added: []string{"a = 2"}}

	records := c.Count(commit, []FileVerdict{
		distinctVerdict("a.py", shared),
		distinctVerdict("b.py", shared, unique),
	})

	require.Len(t, records, 2)
	assert.False(t, records[1].RepeatedElsewhere)
}

func TestCount_TotalsSumChangeUnits(t *testing.T) {
	t.Parallel()

	commit := &Commit{Repo: "r", Hash: "h"}
	c := NewCounter()

	records := c.Count(commit, []FileVerdict{
		distinctVerdict("a.py",
			Hunk{Deleted: []string{"a"}, Added: []string{"b"}},
			Hunk{Deleted: []string{"c"}, Added: []string{"d"}}),
		distinctVerdict("b.py",
			Hunk{Added: []string{"x", "y", "z"}}),
	})

	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].ChangeUnits)
	assert.Equal(t, 2, records[0].ModifiedLines)
	assert.Equal(t, 1, records[1].ChangeUnits)
	assert.Equal(t, 3, records[1].ModifiedLines)
	assert.Equal(t, 3, Total(records))
}
