package annotate

// issueCrossReferences records human_id entries whose issue number refers
// to an issue tracker of a different, related project. The mapping is
// dataset bookkeeping carried over verbatim from the curation spreadsheet;
// it must never be reinterpreted or "fixed" by the pipeline.
var issueCrossReferences = map[string]string{
	// The aqua issue is tracked in the terra repository.
	"qiskit-aqua#1324": "qiskit-terra#1324",
}

// ResolveCrossReference returns the canonical human_id for entries whose
// issue number lives in a related project's tracker, and the input
// unchanged otherwise.
func ResolveCrossReference(humanID string) string {
	if canonical, ok := issueCrossReferences[humanID]; ok {
		return canonical
	}

	return humanID
}

// IsCrossReferenced reports whether the human_id carries a known
// cross-project issue reference.
func IsCrossReferenced(humanID string) bool {
	_, ok := issueCrossReferences[humanID]

	return ok
}
