package minimize

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// debugPrintPrefixes identify print/trace statements across the corpus
// languages. Used to recognize debug output that a fix merely commented
// out.
var debugPrintPrefixes = []string{
	"print(",
	"print ",
	"pprint(",
	"console.log(",
	"console.debug(",
	"std::cout",
	"std::cerr",
	"printf(",
	"fprintf(",
	"fmt.Print",
	"System.out.print",
	"logging.debug(",
	"logging.info(",
	"logger.debug(",
	"logger.info(",
}

// Normalizer strips cosmetic noise from the after side of an included file
// pair: newly added blank lines, newly added comments and docstrings,
// wholly new regression-test content, and debug prints that were only
// commented out. The before side is never altered.
type Normalizer struct{}

// NewNormalizer returns a cosmetic normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize is defined only for pairs the classifier included. When
// bugInTestCode is set the commit's defect lives in the test suite, so
// wholly new test content is kept instead of being dropped. The second
// return value is true when the language was unknown and the conservative
// blank-line-only strategy was applied; such files should be flagged for
// manual review.
func (n *Normalizer) Normalize(pair FilePair, bugInTestCode bool) (NormalizedPair, bool) {
	syntax, known := SyntaxFor(pair.Language)

	before := ""
	if pair.HasBefore {
		before = ensureTrailingNewline(pair.Before)
	}

	after := ""
	if pair.HasAfter {
		after = ensureTrailingNewline(pair.After)
	}

	// A wholly new test file is a regression guard for the fix, not part
	// of the fix: its content is dropped entirely. When the defect itself
	// is in the test suite the new file may be the fix, so it stays.
	if pair.IsTestFile && !pair.HasBefore && !bugInTestCode {
		after = ""
	}

	after = restoreDisabledDebug(before, after, syntax)
	after = stripAddedNoise(before, after, syntax)

	normalized := NormalizedPair{
		Path:     pair.Path,
		Language: pair.Language,
		Before:   before,
		After:    after,
	}

	return normalized, !known && after != before
}

// ensureTrailingNewline canonicalizes the final-newline state of a side.
// Both sides get the same treatment, so a file that merely lacks a newline
// at EOF never registers its last line as changed.
func ensureTrailingNewline(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text
	}

	return text + "\n"
}

// restoreDisabledDebug rewrites after-side lines that comment out a debug
// print statement still present in before, propagating the before text
// forward so the disabled line no longer registers as a change.
func restoreDisabledDebug(before, after string, syntax CommentSyntax) string {
	if !syntax.Known || len(syntax.LineMarkers) == 0 || before == "" || after == "" {
		return after
	}

	originals := make(map[string]string)
	for _, line := range SplitLines(before) {
		trimmed := strings.TrimSpace(line)
		if _, seen := originals[trimmed]; !seen && isDebugPrint(trimmed) {
			originals[trimmed] = line
		}
	}

	if len(originals) == 0 {
		return after
	}

	lines := SplitLines(after)
	changed := false

	for i, line := range lines {
		uncommented, ok := uncommentLine(line, syntax)
		if !ok {
			continue
		}

		if original, found := originals[strings.TrimSpace(uncommented)]; found {
			lines[i] = original
			changed = true
		}
	}

	if !changed {
		return after
	}

	return JoinLines(lines)
}

// uncommentLine strips a single leading line-comment marker, returning the
// commented-out content and whether the line was a line comment at all.
func uncommentLine(line string, syntax CommentSyntax) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")

	for _, marker := range syntax.LineMarkers {
		if rest, found := strings.CutPrefix(trimmed, marker); found {
			return strings.TrimPrefix(rest, " "), true
		}
	}

	return "", false
}

func isDebugPrint(trimmed string) bool {
	for _, prefix := range debugPrintPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}

	return false
}

// stripAddedNoise walks the line alignment of before and after and rebuilds
// the after text: unchanged regions pass through verbatim, while added
// lines lose their comments and any line left blank is dropped. Blank lines
// and comments in unchanged regions are preserved.
func stripAddedNoise(before, after string, syntax CommentSyntax) string {
	if after == "" || before == after {
		return after
	}

	diffs := lineDiff(before, after)

	var out []string

	for _, diff := range diffs {
		lines := SplitLines(diff.Text)

		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			out = append(out, lines...)
		case diffmatchpatch.DiffDelete:
			// Before-side only; not part of the after text.
		case diffmatchpatch.DiffInsert:
			// One stripper per added run: block comments opened and closed
			// within the run are tracked across its lines.
			stripper := NewCommentStripper(syntax)

			for _, line := range lines {
				stripped := stripper.StripLine(line)
				if strings.TrimSpace(stripped) == "" {
					continue
				}

				out = append(out, stripped)
			}
		}
	}

	return JoinLines(out)
}
