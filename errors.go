package hll

import "errors"

var (
	// ErrInvalidErrorRate is returned from New/NewWithCounters when error_rate
	// is not in (0, 1), or when the derived precision falls outside [4, 16].
	ErrInvalidErrorRate = errors.New("hll: error rate must be in (0, 1) and yield a precision in [4, 16]")

	// ErrDeleteUnsupported is returned from Delete when the sketch was
	// constructed without deletion counters.
	ErrDeleteUnsupported = errors.New("hll: delete requires a sketch created with NewWithCounters")

	// ErrIncompatibleSketch is returned from Union/Intersect when the two
	// sketches do not agree on alpha, p, m, or counter presence.
	ErrIncompatibleSketch = errors.New("hll: sketches are not compatible for union/intersect")
)
