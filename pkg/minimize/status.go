package minimize

// Status summarizes how processing of one commit went. Partial results are
// never silently presented as complete.
type Status string

// Per-commit statuses.
const (
	StatusOk      Status = "ok"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// Warning records a recoverable per-file problem: an undecodable file, an
// ambiguous language, or a skipped pair with a missing side.
type Warning struct {
	Path    string
	Message string
}

// CommitResult is the caller-facing outcome of running the pipeline on one
// commit: the emitted records, the per-commit totals, and the status with
// any warnings.
type CommitResult struct {
	CommitID string
	Repo     string
	Hash     string

	Status        Status
	FailureReason string
	Warnings      []Warning

	Records            []ChangeRecord
	TotalChangeUnits   int
	TotalModifiedLines int

	FilesIncluded int
	FilesExcluded map[ExclusionReason]int
}
