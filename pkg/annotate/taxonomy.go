package annotate

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Taxonomy is the closed label vocabulary of the annotation table. Rows
// whose labels fall outside it indicate a spreadsheet typo or a vocabulary
// extension that was never agreed on.
type Taxonomy struct {
	Types       []string `yaml:"types"`
	Components  []string `yaml:"components"`
	Symptoms    []string `yaml:"symptoms"`
	BugPatterns []string `yaml:"bug_patterns"`
}

// ParseTaxonomy decodes a YAML taxonomy document.
func ParseTaxonomy(data []byte) (*Taxonomy, error) {
	var t Taxonomy

	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}

	return &t, nil
}

// DefaultTaxonomy returns the vocabulary used by the curation spreadsheet.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		Types: []string{"Quantum", "Classical"},
		Components: []string{
			"simulator", "transpiler", "compiler", "circuit construction",
			"gate operations", "measurement", "noise model", "scheduler",
			"visualization", "optimization", "machine learning", "docs",
			"infrastructure",
		},
		Symptoms: []string{
			"crash", "wrong output", "incorrect final measurement",
			"performance degradation", "hang", "build failure",
		},
		BugPatterns: []string{
			"off-by-one", "wrong operator", "missing condition",
			"incorrect qubit ordering", "phase drop", "unitary mismatch",
			"api misuse", "type confusion", "wrong constant",
		},
	}
}

// Check reports every label of row that is missing from the vocabulary.
// Empty cells are tolerated; multi-label cells are checked per label.
func (t *Taxonomy) Check(row Row) []string {
	var problems []string

	if row.Type != "" && !contains(t.Types, row.Type) {
		problems = append(problems, fmt.Sprintf("unknown type %q", row.Type))
	}

	problems = append(problems, checkLabels(t.Components, "component", row.Component)...)
	problems = append(problems, checkLabels(t.Symptoms, "symptom", row.Symptom)...)
	problems = append(problems, checkLabels(t.BugPatterns, "bug_pattern", row.BugPattern)...)

	return problems
}

func checkLabels(vocabulary []string, column, cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}

	var problems []string

	for _, label := range strings.Split(cell, ",") {
		label = strings.TrimSpace(label)
		if label != "" && !contains(vocabulary, label) {
			problems = append(problems, fmt.Sprintf("unknown %s %q", column, label))
		}
	}

	return problems
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if strings.EqualFold(v, value) {
			return true
		}
	}

	return false
}
