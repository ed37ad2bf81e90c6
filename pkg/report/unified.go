package report

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContextLines is the unchanged-context width of rendered diffs.
const diffContextLines = 3

// RenderUnifiedDiff renders a unified diff of one file pair for manual
// review, labelled with the dataset's before/after tree convention.
func RenderUnifiedDiff(path, before, after string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "before/" + path,
		ToFile:   "after/" + path,
		Context:  diffContextLines,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("render diff for %s: %w", path, err)
	}

	return text, nil
}
