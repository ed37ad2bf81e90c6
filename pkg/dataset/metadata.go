// Package dataset loads curated bug folders laid out as before/after
// directory pairs, one folder per bug, grouped by repository:
//
//	<root>/<repo>/<repo>#<issue>/before/...
//	<root>/<repo>/<repo>#<issue>/after/...
//	<root>/<repo>/<repo>#<issue>/metadata.json
//
// Only files touched by the commit are present under before/ and after/.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Metadata describes one curated bug folder. The human-readable identifier
// combines the repository name and the referenced issue, e.g. "Cirq#691".
type Metadata struct {
	ID          int    `json:"id"`
	HumanID     string `json:"human_id"`
	ProjectName string `json:"project_name"`
	CommitHash  string `json:"commit_hash"`

	// BugInTestCode marks bugs located in the test suite; test files are
	// then counted instead of excluded.
	BugInTestCode bool `json:"bug_in_test_code,omitempty"`

	// IsMerge marks multi-parent commits mined through the first-parent
	// fallback.
	IsMerge bool `json:"is_merge,omitempty"`
}

// ComprehensiveID returns the "human_id (id)" form used by the downstream
// annotation table.
func (m *Metadata) ComprehensiveID() string {
	return fmt.Sprintf("%s (%d)", m.HumanID, m.ID)
}

// ReadMetadata loads and validates a metadata.json file.
func ReadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	if err := ValidateMetadata(data); err != nil {
		return nil, err
	}

	var meta Metadata

	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	return &meta, nil
}

// metadataFromFolder derives best-effort metadata from a "<repo>#<issue>"
// folder name when no metadata.json is present.
func metadataFromFolder(name string) *Metadata {
	meta := &Metadata{HumanID: name, ProjectName: name}

	if idx := strings.LastIndex(name, "#"); idx > 0 {
		meta.ProjectName = name[:idx]
	}

	return meta
}
