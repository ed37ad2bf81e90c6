package minimize

// FileVerdict couples a path with its resolution result, in the commit's
// deterministic path order.
type FileVerdict struct {
	Path    string
	Verdict Verdict
}

// Counter turns Distinct verdicts into change records. Equivalent verdicts
// are dropped silently: they carry no change units by construction.
type Counter struct{}

// NewCounter returns a change counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Count emits one ChangeRecord per Distinct verdict, preserving input
// order. A record whose every hunk signature already appeared earlier in
// the commit is tagged RepeatedElsewhere; repeats are reported but never
// deduplicated out of the count.
func (c *Counter) Count(commit *Commit, verdicts []FileVerdict) []ChangeRecord {
	seen := make(map[uint64]bool)

	var records []ChangeRecord

	for _, fv := range verdicts {
		if fv.Verdict.Equivalent || fv.Verdict.ChangeUnits == 0 {
			continue
		}

		repeated := len(fv.Verdict.Hunks) > 0

		for i := range fv.Verdict.Hunks {
			if !seen[fv.Verdict.Hunks[i].Signature()] {
				repeated = false
			}
		}

		for i := range fv.Verdict.Hunks {
			seen[fv.Verdict.Hunks[i].Signature()] = true
		}

		records = append(records, ChangeRecord{
			CommitID:          commit.ID(),
			Path:              fv.Path,
			ChangeUnits:       fv.Verdict.ChangeUnits,
			ModifiedLines:     fv.Verdict.ModifiedLines,
			RepeatedElsewhere: repeated,
		})
	}

	return records
}

// Total sums change units over the emitted records.
func Total(records []ChangeRecord) int {
	total := 0
	for _, record := range records {
		total += record.ChangeUnits
	}

	return total
}
