package minimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntaxFor_KnownLanguages(t *testing.T) {
	t.Parallel()

	python, ok := SyntaxFor("Python")
	assert.True(t, ok)
	assert.Equal(t, "python", python.Name)

	cpp, ok := SyntaxFor("C++")
	assert.True(t, ok)
	assert.Equal(t, "c", cpp.Name)
}

func TestSyntaxFor_UnknownFallsBackToConservative(t *testing.T) {
	t.Parallel()

	syntax, ok := SyntaxFor("Befunge")

	assert.False(t, ok)
	assert.False(t, syntax.Known)
}

func TestStripLine_HashComment(t *testing.T) {
	t.Parallel()

	s := NewCommentStripper(pythonSyntax)

	assert.Equal(t, "x = 1", s.StripLine("x = 1  # adjust offset"))
}

func TestStripLine_WholeLineComment(t *testing.T) {
	t.Parallel()

	s := NewCommentStripper(pythonSyntax)

	assert.Empty(t, s.StripLine("# nothing but commentary"))
}

func TestStripLine_MarkerInsideString(t *testing.T) {
	t.Parallel()

	s := NewCommentStripper(pythonSyntax)

	line := `s = "#channel"  # the real comment`

	assert.Equal(t, `s = "#channel"`, s.StripLine(line))
}

func TestStripLine_EscapedQuoteInsideString(t *testing.T) {
	t.Parallel()

	s := NewCommentStripper(pythonSyntax)

	line := `s = "say \"hi\" # here"`

	assert.Equal(t, line, s.StripLine(line))
}

func TestStripLine_DocstringOneLiner(t *testing.T) {
	t.Parallel()

	s := NewCommentStripper(pythonSyntax)

	assert.Empty(t, s.StripLine(`    """Return the qubit count."""`))
	assert.False(t, s.InBlock())
}

func TestStripLine_DocstringSpanningLines(t *testing.T) {
	t.Parallel()

	s := NewCommentStripper(pythonSyntax)

	assert.Empty(t, s.StripLine(`    """Schedule the circuit.`))
	assert.True(t, s.InBlock())
	assert.Empty(t, s.StripLine(`    Longer explanation."""`))
	assert.False(t, s.InBlock())
}

func TestStripLine_TripleQuoteMidExpressionIsData(t *testing.T) {
	t.Parallel()

	s := NewCommentStripper(pythonSyntax)

	line := `qasm = """OPENQASM 2.0;"""`

	assert.Equal(t, line, s.StripLine(line))
	assert.False(t, s.InBlock())
}

func TestStripLine_CLineComment(t *testing.T) {
	t.Parallel()

	s := NewCommentStripper(cSyntax)

	assert.Equal(t, "int n = 5;", s.StripLine("int n = 5; // qubit count"))
}

func TestStripLine_CBlockCommentWithinLine(t *testing.T) {
	t.Parallel()

	s := NewCommentStripper(cSyntax)

	got := s.StripLine("int x = 1; /* old */ int y = 2;")

	assert.Equal(t, "int x = 1;  int y = 2;", got)
	assert.False(t, s.InBlock())
}

func TestStripLine_CBlockCommentSpanningLines(t *testing.T) {
	t.Parallel()

	s := NewCommentStripper(cSyntax)

	assert.Empty(t, s.StripLine("/* disabled while the backend"))
	assert.True(t, s.InBlock())
	assert.Equal(t, " apply();", s.StripLine("   is flaky */ apply();"))
	assert.False(t, s.InBlock())
}

func TestStripLine_ConservativeLeavesCommentsAlone(t *testing.T) {
	t.Parallel()

	s := NewCommentStripper(conservativeSyntax)

	line := "# could be a comment, could be data"

	assert.Equal(t, line, s.StripLine(line))
}
