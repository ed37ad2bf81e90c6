package minimize

import (
	"strings"
)

// BlockDelim is a block comment delimiter pair.
type BlockDelim struct {
	Open  string
	Close string

	// DocOnly restricts stripping to blocks whose opener is the first
	// non-blank token on its line. Python docstrings are string literals,
	// so a triple quote appearing mid-expression must be left alone.
	DocOnly bool
}

// CommentSyntax describes the comment grammar of one language family.
type CommentSyntax struct {
	Name        string
	LineMarkers []string
	Blocks      []BlockDelim

	// Known is false for the conservative fallback used when the file
	// extension maps to no rule set: blank lines may be dropped but
	// comments are never stripped.
	Known bool
}

var (
	hashSyntax = CommentSyntax{
		Name:        "hash",
		LineMarkers: []string{"#"},
		Known:       true,
	}

	pythonSyntax = CommentSyntax{
		Name:        "python",
		LineMarkers: []string{"#"},
		Blocks: []BlockDelim{
			{Open: `"""`, Close: `"""`, DocOnly: true},
			{Open: "'''", Close: "'''", DocOnly: true},
		},
		Known: true,
	}

	cSyntax = CommentSyntax{
		Name:        "c",
		LineMarkers: []string{"//"},
		Blocks:      []BlockDelim{{Open: "/*", Close: "*/"}},
		Known:       true,
	}

	// conservativeSyntax strips nothing. Used for ambiguous languages so
	// over-aggressive stripping cannot hide genuine changes.
	conservativeSyntax = CommentSyntax{Name: "conservative"}
)

// syntaxByLanguage maps enry language names to comment grammars. The mined
// corpus is dominated by Python and C/C++ with some JS, Java, and build
// scripting.
var syntaxByLanguage = map[string]CommentSyntax{
	"Python":      pythonSyntax,
	"Ruby":        hashSyntax,
	"Shell":       hashSyntax,
	"Makefile":    hashSyntax,
	"CMake":       hashSyntax,
	"YAML":        hashSyntax,
	"C":           cSyntax,
	"C++":         cSyntax,
	"Objective-C": cSyntax,
	"C#":          cSyntax,
	"Go":          cSyntax,
	"Java":        cSyntax,
	"JavaScript":  cSyntax,
	"TypeScript":  cSyntax,
	"Rust":        cSyntax,
	"Scala":       cSyntax,
	"Kotlin":      cSyntax,
	"Swift":       cSyntax,
}

// SyntaxFor resolves the comment grammar for an enry language name. The
// second return value is false when the language is unknown and the
// conservative fallback is in effect.
func SyntaxFor(language string) (CommentSyntax, bool) {
	syntax, ok := syntaxByLanguage[language]
	if !ok {
		return conservativeSyntax, false
	}

	return syntax, true
}

// CommentStripper removes comment content from a run of lines. It is
// stateful: block comments opened on one line stay open until their closer
// appears on a later line. One stripper instance must only be fed
// consecutive lines of a single region.
type CommentStripper struct {
	syntax  CommentSyntax
	inBlock int // 1-based index into syntax.Blocks, 0 when outside.
}

// NewCommentStripper returns a stripper for the given grammar.
func NewCommentStripper(syntax CommentSyntax) *CommentStripper {
	return &CommentStripper{syntax: syntax}
}

// StripLine returns line with comment content removed, trimmed on the
// right. A line that is entirely comment comes back empty.
func (s *CommentStripper) StripLine(line string) string {
	if !s.syntax.Known {
		return line
	}

	var out strings.Builder

	i := 0

	for i < len(line) {
		if s.inBlock > 0 {
			block := s.syntax.Blocks[s.inBlock-1]

			end := strings.Index(line[i:], block.Close)
			if end < 0 {
				return strings.TrimRight(out.String(), " \t")
			}

			i += end + len(block.Close)
			s.inBlock = 0

			continue
		}

		// String literals shield comment markers.
		if line[i] == '"' || line[i] == '\'' {
			if block, idx := s.blockAt(line, i, out.String()); block != nil {
				i = idx

				continue
			}

			next := skipString(line, i)
			out.WriteString(line[i:next])
			i = next

			continue
		}

		if marker := s.lineMarkerAt(line, i); marker != "" {
			return strings.TrimRight(out.String(), " \t")
		}

		if block, idx := s.blockAt(line, i, out.String()); block != nil {
			i = idx

			continue
		}

		out.WriteByte(line[i])
		i++
	}

	return strings.TrimRight(out.String(), " \t")
}

// InBlock reports whether the stripper is inside an unclosed block comment.
func (s *CommentStripper) InBlock() bool {
	return s.inBlock > 0
}

func (s *CommentStripper) lineMarkerAt(line string, i int) string {
	for _, marker := range s.syntax.LineMarkers {
		if strings.HasPrefix(line[i:], marker) {
			return marker
		}
	}

	return ""
}

// blockAt checks for a block opener at position i. For DocOnly blocks the
// opener must be the first non-blank content of the line, i.e. everything
// written so far is whitespace. Returns the position after the block (or
// end of line with state set) when a block was consumed.
func (s *CommentStripper) blockAt(line string, i int, written string) (*BlockDelim, int) {
	for b := range s.syntax.Blocks {
		block := s.syntax.Blocks[b]

		if !strings.HasPrefix(line[i:], block.Open) {
			continue
		}

		if block.DocOnly && strings.TrimSpace(written) != "" {
			continue
		}

		rest := line[i+len(block.Open):]

		end := strings.Index(rest, block.Close)
		if end < 0 {
			s.inBlock = b + 1

			return &block, len(line)
		}

		return &block, i + len(block.Open) + end + len(block.Close)
	}

	return nil, 0
}

// skipString advances past a quoted string literal starting at i, honoring
// backslash escapes. Unterminated strings run to end of line.
func skipString(line string, i int) int {
	quote := line[i]
	j := i + 1

	for j < len(line) {
		switch line[j] {
		case '\\':
			j += 2
		case quote:
			return j + 1
		default:
			j++
		}
	}

	return len(line)
}
