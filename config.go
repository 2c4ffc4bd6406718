package hll

import "math"

// Config describes how a Sketch should be constructed.
type Config struct {
	// ErrorRate is the target relative standard error, in (0, 1). Precision
	// is derived as p = ceil(2 * log2(1.04 / ErrorRate).
	ErrorRate float64

	// Deletion, when true, allocates the per-register deletion-counter
	// array so Delete is supported (at 64-p+2 bytes of extra storage per
	// register; see counterWidth).
	Deletion bool
}

// NewFromConfig creates a Sketch from a Config. Equivalent to calling New
// or NewWithCounters directly based on cfg.Deletion.
func NewFromConfig(cfg Config) (Sketch, error) {
	if cfg.Deletion {
		return NewWithCounters(cfg.ErrorRate)
	}
	return New(cfg.ErrorRate)
}

// precisionFor derives the register-address width p from a target relative
// error rate.
func precisionFor(errorRate float64) (uint8, error) {
	if !(errorRate > 0 && errorRate < 1) {
		return 0, ErrInvalidErrorRate
	}

	p := int(math.Ceil(2 * math.Log2(1.04/errorRate)))
	if p < minP || p > maxP {
		return 0, ErrInvalidErrorRate
	}

	return uint8(p), nil
}
