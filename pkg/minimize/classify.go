package minimize

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExclusionReason identifies why a file pair was dropped before counting.
type ExclusionReason string

// Exclusion reasons, in classification rule order. ReasonEncoding is kept
// distinct from ReasonEmpty so undecodable files remain visible to the
// dataset curator.
const (
	ReasonEmpty       ExclusionReason = "empty"
	ReasonIdentical   ExclusionReason = "identical"
	ReasonTestNotBug  ExclusionReason = "test-not-bug"
	ReasonDerivedMock ExclusionReason = "derived-mock"
	ReasonEncoding    ExclusionReason = "encoding"
)

// Outcome is the result of classifying a file pair. Excluded pairs never
// reach the normalization or counting stages.
type Outcome struct {
	Included bool
	Reason   ExclusionReason
}

// Included is the outcome for pairs that proceed to normalization.
var Included = Outcome{Included: true}

// Excluded builds an exclusion outcome for the given reason.
func Excluded(reason ExclusionReason) Outcome {
	return Outcome{Reason: reason}
}

// DefaultTestPatterns match the test-file layout conventions of the mined
// quantum-computing codebases (pytest, googletest, and plain test dirs).
var DefaultTestPatterns = []string{
	"**/test/**",
	"**/tests/**",
	"**/test_*.py",
	"**/*_test.py",
	"**/*_test.go",
	"**/*Test.java",
	"**/*_test.cpp",
	"**/*_test.cc",
	"**/test_*.cpp",
}

// DefaultMockPatterns match fixture files mechanically regenerated from the
// source under test. Mock detection is name-based; repositories with other
// conventions override these via configuration.
var DefaultMockPatterns = []string{
	"**/*_mock.json",
	"**/mock_*.json",
	"**/mocks/**",
	"**/fixtures/**/*.json",
}

// PathRules holds the per-repository glob patterns used to label test files
// and derived mock artifacts.
type PathRules struct {
	TestPatterns []string
	MockPatterns []string
}

// DefaultPathRules returns the built-in pattern set.
func DefaultPathRules() *PathRules {
	return &PathRules{
		TestPatterns: DefaultTestPatterns,
		MockPatterns: DefaultMockPatterns,
	}
}

// Validate checks every glob pattern for syntax errors.
func (r *PathRules) Validate() error {
	for _, pattern := range append(append([]string{}, r.TestPatterns...), r.MockPatterns...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: %q", ErrBadPattern, pattern)
		}
	}

	return nil
}

// IsTestPath reports whether the relative path matches a test convention.
func (r *PathRules) IsTestPath(relPath string) bool {
	return r.matchAny(r.TestPatterns, relPath)
}

// IsMockPath reports whether the relative path names a derived mock artifact.
func (r *PathRules) IsMockPath(relPath string) bool {
	return r.matchAny(r.MockPatterns, relPath)
}

func (r *PathRules) matchAny(patterns []string, relPath string) bool {
	normalized := path.Clean(strings.ReplaceAll(relPath, "\\", "/"))

	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, normalized)
		if err == nil && ok {
			return true
		}
	}

	return false
}

// Classifier decides, per file pair, whether the pair takes part in change
// counting. It is a pure function of the pair plus the per-commit
// bug-in-test-code flag.
type Classifier struct {
	Rules *PathRules
}

// NewClassifier returns a classifier using rules, or the defaults when
// rules is nil.
func NewClassifier(rules *PathRules) *Classifier {
	if rules == nil {
		rules = DefaultPathRules()
	}

	return &Classifier{Rules: rules}
}

// Classify applies the exclusion rules in order; the first match wins.
// bugInTestCode suspends the test-file exclusion for commits whose defect
// is located in the test suite itself.
func (c *Classifier) Classify(pair FilePair, bugInTestCode bool) Outcome {
	beforeEmpty := !pair.HasBefore || pair.Before == ""
	afterEmpty := !pair.HasAfter || pair.After == ""

	if beforeEmpty && afterEmpty {
		return Excluded(ReasonEmpty)
	}

	if pair.HasBefore && pair.HasAfter && pair.Before == pair.After {
		return Excluded(ReasonIdentical)
	}

	if (pair.IsTestFile || c.Rules.IsTestPath(pair.Path)) && !bugInTestCode {
		return Excluded(ReasonTestNotBug)
	}

	if pair.IsDerivedArtifact || c.Rules.IsMockPath(pair.Path) {
		return Excluded(ReasonDerivedMock)
	}

	return Included
}
