package minimize

import "errors"

// Sentinel errors for pipeline defects.
var (
	// ErrMissingSide indicates a file pair lost one side without being a
	// pure addition or deletion. This is a mining defect: counting such a
	// pair would corrupt the change metric, so it is surfaced instead of
	// silently recovered.
	ErrMissingSide = errors.New("file pair is missing a side that is not a pure addition or deletion")

	// ErrZeroFileCommit indicates a non-merge commit yielded no file pairs.
	// Every counted commit touches at least one file; an empty mined set
	// means the source must re-mine the commit.
	ErrZeroFileCommit = errors.New("non-merge commit produced no file pairs")

	// ErrBadPattern indicates an invalid path-rule glob pattern.
	ErrBadPattern = errors.New("invalid path pattern")
)
