package minimize

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Verdict is the outcome of equivalence resolution for one normalized
// pair. Equivalent pairs always carry zero change units and are never
// emitted as records; Distinct pairs carry at least one.
type Verdict struct {
	Equivalent bool

	// ChangeUnits is the number of hunks that survived the inertness
	// patterns. Zero iff Equivalent.
	ChangeUnits int

	// ModifiedLines sums max(deleted, added) over the surviving hunks.
	ModifiedLines int

	// Hunks are the surviving, countable hunks.
	Hunks []Hunk
}

// Resolver decides whether the remaining difference of a normalized pair is
// semantically inert under the closed pattern set: reordered import
// declarations, incidental spacing around operators and punctuation, and
// reindentation inside multi-line literals. Inert differences collapse to
// the before text; the before side always wins, so ambiguous edits bias
// toward undercounting.
type Resolver struct{}

// NewResolver returns an equivalence resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve classifies the pair's hunks and returns the verdict. The pattern
// set is deliberately closed: anything it does not recognize counts as a
// genuine change.
func (r *Resolver) Resolve(pair NormalizedPair) Verdict {
	hunks := ExtractHunks(pair.Before, pair.After)
	if len(hunks) == 0 {
		return Verdict{Equivalent: true}
	}

	literal := literalLineSet(pair.Language, pair.Before)

	inert := make([]bool, len(hunks))

	for i := range hunks {
		if spacingInert(&hunks[i]) || reindentInert(&hunks[i], literal) {
			inert[i] = true
		}
	}

	markImportReorderInert(pair.Language, hunks, inert)

	var surviving []Hunk

	modified := 0

	for i := range hunks {
		if inert[i] {
			continue
		}

		surviving = append(surviving, hunks[i])
		modified += hunks[i].ModifiedLines()
	}

	if len(surviving) == 0 {
		return Verdict{Equivalent: true}
	}

	return Verdict{
		ChangeUnits:   len(surviving),
		ModifiedLines: modified,
		Hunks:         surviving,
	}
}

// spacingInert reports whether the hunk only reshuffles incidental
// whitespace: the deleted and added lines pair up one-to-one and are equal
// once interior spacing around non-word characters is canonicalized.
// Leading indentation is significant and must match exactly.
func spacingInert(hunk *Hunk) bool {
	if len(hunk.Deleted) != len(hunk.Added) {
		return false
	}

	for i := range hunk.Deleted {
		if canonicalSpacing(hunk.Deleted[i]) != canonicalSpacing(hunk.Added[i]) {
			return false
		}
	}

	return true
}

// canonicalSpacing keeps the leading indentation verbatim, collapses
// interior whitespace runs to a single space, and removes spaces adjacent
// to non-word characters. Two lines that tokenize identically under
// style-guide spacing rules map to the same canonical form; spacing between
// two word tokens is preserved so identifiers can never merge. Quoted
// string literals are copied verbatim: whitespace inside a literal is data,
// and collapsing it would equate two different runtime values.
func canonicalSpacing(line string) string {
	trimmed := strings.TrimRight(line, " \t")
	indent := trimmed[:len(trimmed)-len(strings.TrimLeft(trimmed, " \t"))]
	body := trimmed[len(indent):]

	var out strings.Builder

	out.WriteString(indent)

	pending := false

	i := 0

	for i < len(body) {
		ch := body[i]

		if ch == ' ' || ch == '\t' {
			pending = true
			i++

			continue
		}

		if ch == '"' || ch == '\'' || ch == '`' {
			pending = false

			end := skipString(body, i)
			out.WriteString(body[i:end])
			i = end

			continue
		}

		r, size := utf8.DecodeRuneInString(body[i:])

		if pending {
			if out.Len() > len(indent) && isWordByte(lastByte(&out)) && isWordRune(r) {
				out.WriteByte(' ')
			}

			pending = false
		}

		out.WriteString(body[i : i+size])
		i += size
	}

	return out.String()
}

func lastByte(b *strings.Builder) byte {
	s := b.String()

	return s[len(s)-1]
}

func isWordByte(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}

func isWordRune(ch rune) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch > 127
}

// reindentInert reports whether the hunk only changes leading whitespace of
// lines that sit inside a multi-line literal of the before text, where
// indentation carries no tokenization meaning.
func reindentInert(hunk *Hunk, literal map[int]bool) bool {
	if len(literal) == 0 || len(hunk.Deleted) != len(hunk.Added) || len(hunk.Deleted) == 0 {
		return false
	}

	for i := range hunk.Deleted {
		if !literal[hunk.BeforeStart+i] {
			return false
		}

		deleted := strings.TrimRight(hunk.Deleted[i], " \t")
		added := strings.TrimRight(hunk.Added[i], " \t")

		if strings.TrimLeft(deleted, " \t") != strings.TrimLeft(added, " \t") {
			return false
		}
	}

	return true
}

// markImportReorderInert flags hunks that together form a pure reordering
// of import declarations: every line of every candidate hunk is an import
// statement and the deleted and added lines agree as multisets, so the set
// of declared symbols is unchanged.
func markImportReorderInert(language string, hunks []Hunk, inert []bool) {
	var (
		candidates []int
		deleted    []string
		added      []string
	)

	for i := range hunks {
		if inert[i] {
			continue
		}

		allImports := true

		for _, line := range append(append([]string{}, hunks[i].Deleted...), hunks[i].Added...) {
			if !isImportLine(language, line) {
				allImports = false

				break
			}
		}

		if !allImports || (len(hunks[i].Deleted) == 0 && len(hunks[i].Added) == 0) {
			continue
		}

		candidates = append(candidates, i)

		for _, line := range hunks[i].Deleted {
			deleted = append(deleted, strings.TrimSpace(line))
		}

		for _, line := range hunks[i].Added {
			added = append(added, strings.TrimSpace(line))
		}
	}

	if len(candidates) == 0 || !sameMultiset(deleted, added) {
		return
	}

	for _, i := range candidates {
		inert[i] = true
	}
}

func sameMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	as := append([]string{}, a...)
	bs := append([]string{}, b...)

	sort.Strings(as)
	sort.Strings(bs)

	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}

	return len(as) > 0
}

// isImportLine recognizes import/include declarations for the closed set
// of corpus languages.
func isImportLine(language, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	switch language {
	case "Python":
		return strings.HasPrefix(trimmed, "import ") ||
			strings.HasPrefix(trimmed, "from ") && strings.Contains(trimmed, " import ")
	case "C", "C++", "Objective-C":
		return strings.HasPrefix(trimmed, "#include")
	case "Go":
		return strings.HasPrefix(trimmed, "import ") ||
			strings.HasPrefix(trimmed, "\"") && strings.HasSuffix(trimmed, "\"")
	case "Java", "Scala", "Kotlin":
		return strings.HasPrefix(trimmed, "import ")
	case "JavaScript", "TypeScript":
		return strings.HasPrefix(trimmed, "import ") ||
			strings.HasPrefix(trimmed, "const ") && strings.Contains(trimmed, "require(")
	default:
		return false
	}
}

// literalLineSet returns the 1-based line numbers of text that lie inside a
// multi-line string literal. Only languages with unambiguous multi-line
// literal delimiters are scanned; for the rest the set is empty and the
// reindentation pattern never fires.
func literalLineSet(language, text string) map[int]bool {
	set := make(map[int]bool)

	switch language {
	case "Python":
		scanDelimited(text, `"""`, set)
		scanDelimited(text, "'''", set)
	case "Go", "JavaScript", "TypeScript":
		scanDelimited(text, "`", set)
	default:
		return nil
	}

	return set
}

// scanDelimited marks lines strictly inside regions toggled by delim.
// Delimiter occurrences are counted per line; an odd count toggles the
// region state.
func scanDelimited(text, delim string, set map[int]bool) {
	inside := false

	for i, line := range SplitLines(text) {
		count := strings.Count(line, delim)

		if inside {
			set[i+1] = true
		}

		if count%2 == 1 {
			inside = !inside
		}
	}
}
