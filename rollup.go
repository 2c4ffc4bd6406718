package hll

import "fmt"

// Rollup merges sketches into a single new Sketch. It is equivalent to
// successively unioning each sketch into a common base, but only allocates
// the one result sketch. Delegates to Union so compatibility checks and
// deletion-counter merging are inherited rather than re-implemented over
// raw registers.
func Rollup(sketches []Sketch) (Sketch, error) {
	if len(sketches) == 0 {
		return nil, fmt.Errorf("hll: rollup requires a non-empty list of sketches")
	}

	base := NewFrom(sketches[0])

	for i, sk := range sketches {
		if err := base.Union(sk); err != nil {
			return nil, fmt.Errorf("hll: rollup: sketch %d: %w", i, err)
		}
	}

	return base, nil
}
