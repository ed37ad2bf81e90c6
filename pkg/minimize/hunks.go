package minimize

import (
	"hash/fnv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Hunk is one maximal contiguous differing region between two line
// sequences: a run of deleted and/or added lines bounded by unchanged
// context. Hunks are the atomic change units of the pipeline.
type Hunk struct {
	// BeforeStart and AfterStart are the 1-based line numbers at which the
	// region begins on each side.
	BeforeStart int
	AfterStart  int

	Deleted []string
	Added   []string
}

// ModifiedLines is the line metric of the hunk: the larger of the deleted
// and added line counts.
func (h *Hunk) ModifiedLines() int {
	return max(len(h.Deleted), len(h.Added))
}

// Signature fingerprints the edit pattern of the hunk, ignoring leading and
// trailing whitespace, so that the same fix applied at different positions
// or indentation levels compares equal.
func (h *Hunk) Signature() uint64 {
	hasher := fnv.New64a()

	for _, line := range h.Deleted {
		hasher.Write([]byte("-" + strings.TrimSpace(line) + "\n"))
	}

	for _, line := range h.Added {
		hasher.Write([]byte("+" + strings.TrimSpace(line) + "\n"))
	}

	return hasher.Sum64()
}

// SplitLines breaks text into lines without trailing newlines. Empty text
// yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// JoinLines is the inverse of SplitLines: every line gets a trailing
// newline. No lines yields empty text.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	return strings.Join(lines, "\n") + "\n"
}

// lineDiff computes a line-level LCS alignment of the two texts. Each line
// is mapped to a rune so the diff operates on whole lines rather than
// characters.
func lineDiff(before, after string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()

	src, dst, lineArray := dmp.DiffLinesToRunes(before, after)
	diffs := dmp.DiffMainRunes(src, dst, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	return dmp.DiffCharsToLines(diffs, lineArray)
}

// ExtractHunks aligns before and after line-by-line and groups the
// differing runs into maximal contiguous hunks.
func ExtractHunks(before, after string) []Hunk {
	if before == after {
		return nil
	}

	diffs := lineDiff(before, after)

	var (
		hunks   []Hunk
		current *Hunk
	)

	beforeLine, afterLine := 1, 1

	for _, diff := range diffs {
		lines := SplitLines(diff.Text)

		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			current = nil
			beforeLine += len(lines)
			afterLine += len(lines)
		case diffmatchpatch.DiffDelete:
			if current == nil {
				hunks = append(hunks, Hunk{BeforeStart: beforeLine, AfterStart: afterLine})
				current = &hunks[len(hunks)-1]
			}

			current.Deleted = append(current.Deleted, lines...)
			beforeLine += len(lines)
		case diffmatchpatch.DiffInsert:
			if current == nil {
				hunks = append(hunks, Hunk{BeforeStart: beforeLine, AfterStart: afterLine})
				current = &hunks[len(hunks)-1]
			}

			current.Added = append(current.Added, lines...)
			afterLine += len(lines)
		}
	}

	return hunks
}
