// Package minimize implements the minimal bug-fix curation pipeline: file
// pair classification, cosmetic normalization, semantic-equivalence
// resolution, and change counting for curated bug-fixing commits.
package minimize

import (
	"fmt"
	"sort"
)

// FilePair is one file touched by a commit, with its content on both sides
// of the change. A missing side is represented by the corresponding Has flag
// being false; PureAddition and PureDeletion record whether the absence is
// legitimate (the file was created or removed by the commit).
type FilePair struct {
	Path     string
	Language string
	Before   string
	After    string

	HasBefore bool
	HasAfter  bool

	// PureAddition / PureDeletion are set by the source when the file was
	// created or deleted by the commit. A missing side without the matching
	// flag indicates a mining defect.
	PureAddition bool
	PureDeletion bool

	IsTestFile        bool
	IsDerivedArtifact bool
}

// Commit is an immutable snapshot of one mined commit: its identity, the
// ordered set of touched file pairs, and the per-commit annotation flags
// the classifier needs.
type Commit struct {
	Repo string
	Hash string

	// BugInTestCode marks commits whose defect lives in the test suite
	// itself; test files are then not excluded from counting.
	BugInTestCode bool

	// IsMerge marks multi-parent commits mined through the first-parent
	// fallback. An empty pair set is legal only for merges.
	IsMerge bool

	Pairs []FilePair
}

// ID returns the commit identity in "repo@hash" form.
func (c *Commit) ID() string {
	return fmt.Sprintf("%s@%s", c.Repo, c.Hash)
}

// SortedPairs returns the commit's file pairs ordered by path. Processing
// order is fixed up front so that record emission is deterministic under
// any parallelism degree.
func (c *Commit) SortedPairs() []FilePair {
	pairs := make([]FilePair, len(c.Pairs))
	copy(pairs, c.Pairs)

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Path < pairs[j].Path })

	return pairs
}

// NormalizedPair is the cosmetic-noise-free view of an included file pair.
// Before is always the original before text; only the after side is
// rewritten.
type NormalizedPair struct {
	Path     string
	Language string
	Before   string
	After    string
}

// ChangeRecord is the terminal artifact of the pipeline: one emitted record
// per file pair that survives classification, normalization, and
// equivalence resolution.
type ChangeRecord struct {
	CommitID    string
	Path        string
	ChangeUnits int

	// ModifiedLines is the per-file line metric: for each hunk, the larger
	// of its deleted and added line counts, summed.
	ModifiedLines int

	// RepeatedElsewhere is true when every hunk of this record already
	// occurred verbatim earlier in the same commit, at another path or
	// position. Repeats stay in the count; the flag is reporting-only.
	RepeatedElsewhere bool
}
