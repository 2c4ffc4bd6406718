package hll

import (
	"math/rand"
	"sync"
)

// source64 is the subset of math/rand.Source64 this package needs. Tests
// inject a deterministic source; production sketches default to a
// process-global, lock-protected generator. The random source used for
// saturation sampling is this module's only ambient dependency, and must be
// injectable for deterministic testing.
type source64 interface {
	Uint64() uint64
}

type lockedSource64 struct {
	mu  sync.Mutex
	src rand.Source64
}

func (l *lockedSource64) Uint64() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Uint64()
}

var defaultRandSource source64 = &lockedSource64{src: rand.NewSource(1).(rand.Source64)}

// SetRandSource overrides the package-wide random source used for the
// probabilistic deletion-counter saturation rule. Intended for
// deterministic tests; not safe to call concurrently with in-flight
// Push/Delete/Union/Intersect calls.
func SetRandSource(src rand.Source64) {
	defaultRandSource = &lockedSource64{src: src}
}

// shouldStep implements the saturation sampling rule: draw a uniform 64-bit
// integer and succeed iff rand mod (2 << (k-1)) == 0, where k is in [1, 127].
// k must be >= 1.
//
// For k >= 64 the modulus would no longer fit in a uint64 (2 << 63 wraps to
// 0); at that point the counter has already saturated past roughly 2^64
// observations, which is unreachable in practice, so this simply reports no
// further step rather than dividing by zero.
func shouldStep(k uint8) bool {
	if k >= 64 {
		return false
	}

	modulus := uint64(2) << (k - 1)
	return defaultRandSource.Uint64()%modulus == 0
}
