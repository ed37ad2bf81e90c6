package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderUnifiedDiff(t *testing.T) {
	t.Parallel()

	text, err := RenderUnifiedDiff("cirq/sim.py", "x = 1\ny = 2\n", "x = 1\ny = 3\n")

	require.NoError(t, err)
	assert.Contains(t, text, "--- before/cirq/sim.py")
	assert.Contains(t, text, "+++ after/cirq/sim.py")
	assert.Contains(t, text, "-y = 2")
	assert.Contains(t, text, "+y = 3")
}

func TestRenderUnifiedDiff_IdenticalSidesEmpty(t *testing.T) {
	t.Parallel()

	text, err := RenderUnifiedDiff("a.py", "same\n", "same\n")

	require.NoError(t, err)
	assert.Empty(t, text)
}
