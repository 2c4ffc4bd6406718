package hll

// Sketch is a fixed-memory cardinality estimator over a stream of hashable
// values. Implementations follow the HyperLogLog family with bias-corrected
// small-range estimation. A Sketch is single-owner and not safe for
// concurrent mutation; concurrent reads of an otherwise-idle Sketch are
// safe.
type Sketch interface {
	// Push visits value, updating the sketch's registers.
	Push(value []byte)

	// Delete approximately removes a previously-pushed value. It returns
	// ErrDeleteUnsupported if the sketch was not created with counters.
	Delete(value []byte) error

	// Union merges other into this sketch (register-wise max). Returns
	// ErrIncompatibleSketch if the two sketches do not share alpha, p, m,
	// and counter presence.
	Union(other Sketch) error

	// Intersect folds other into this sketch (register-wise min). This is a
	// sketch primitive, not an unbiased estimator of set intersection size
	// Same compatibility requirements as Union.
	Intersect(other Sketch) error

	// Clear resets the sketch to its just-constructed state.
	Clear()

	// Len returns the estimated cardinality of everything pushed (minus
	// anything subsequently deleted).
	Len() float64

	// IsEmpty reports whether every register is still at its zero value.
	IsEmpty() bool

	// Equal reports whether two sketches are equal. Defined only when both
	// sketches carry deletion counters; a counter-less sketch is never
	// equal to anything, even itself by value.
	Equal(other Sketch) bool

	// Marshal encodes the sketch for persistence.
	Marshal() ([]byte, error)

	precision() uint8
	alphaValue() float64
	registerCount() int
	hasCounters() bool
	registerSlice() []uint8
	counterSlice() [][]uint8
	zeroCount() int
	sumValue() float64
}

// sketch is the concrete implementation behind Sketch.
type sketch struct {
	p     uint8
	alpha float64

	registers []uint8
	zero      int
	sum       float64

	counters [][]uint8 // nil when the sketch was created without deletion support
}

// New creates an empty Sketch with the given relative error rate and no
// deletion support.
func New(errorRate float64) (Sketch, error) {
	return newSketch(errorRate, false)
}

// NewWithCounters creates an empty Sketch with the given relative error
// rate, allocating per-register deletion counters so Delete is supported.
func NewWithCounters(errorRate float64) (Sketch, error) {
	return newSketch(errorRate, true)
}

// NewFrom creates an empty Sketch with the same precision and
// counter-presence as other.
func NewFrom(other Sketch) Sketch {
	m := other.registerCount()
	s := &sketch{
		p:         other.precision(),
		alpha:     other.alphaValue(),
		registers: make([]uint8, m),
		zero:      m,
		sum:       float64(m),
	}

	if other.hasCounters() {
		width := counterWidth(s.p)
		s.counters = make([][]uint8, m)
		for i := range s.counters {
			s.counters[i] = make([]uint8, width)
		}
	}

	return s
}

func newSketch(errorRate float64, withCounters bool) (Sketch, error) {
	p, err := precisionFor(errorRate)
	if err != nil {
		return nil, err
	}

	m := int(uint64(1) << p)
	s := &sketch{
		p:         p,
		alpha:     alpha(p),
		registers: make([]uint8, m),
		zero:      m,
		sum:       float64(m),
	}

	if withCounters {
		width := counterWidth(p)
		s.counters = make([][]uint8, m)
		for i := range s.counters {
			s.counters[i] = make([]uint8, width)
		}
	}

	return s, nil
}

func (s *sketch) Clear() {
	for i := range s.registers {
		s.registers[i] = 0
	}
	s.zero = len(s.registers)
	s.sum = float64(len(s.registers))

	for i := range s.counters {
		row := s.counters[i]
		for j := range row {
			row[j] = 0
		}
	}
}

func (s *sketch) IsEmpty() bool {
	return s.zero == len(s.registers)
}

func (s *sketch) precision() uint8        { return s.p }
func (s *sketch) alphaValue() float64     { return s.alpha }
func (s *sketch) registerCount() int      { return len(s.registers) }
func (s *sketch) hasCounters() bool       { return s.counters != nil }
func (s *sketch) registerSlice() []uint8  { return s.registers }
func (s *sketch) counterSlice() [][]uint8 { return s.counters }
func (s *sketch) zeroCount() int          { return s.zero }
func (s *sketch) sumValue() float64       { return s.sum }

// Equal reports equality: only defined when both sketches carry counters,
// in which case it is Len() equality plus byte-identical counter arrays. A
// counter-less sketch is never equal to anything, including another
// counter-less sketch with identical registers -- equality is deliberately
// bound to delete-supporting histories.
func (s *sketch) Equal(other Sketch) bool {
	if !s.hasCounters() || !other.hasCounters() {
		return false
	}

	if s.Len() != other.Len() {
		return false
	}

	oc := other.counterSlice()
	if len(oc) != len(s.counters) {
		return false
	}

	for i, row := range s.counters {
		orow := oc[i]
		if len(row) != len(orow) {
			return false
		}
		for j, v := range row {
			if orow[j] != v {
				return false
			}
		}
	}

	return true
}

func compatible(a, b Sketch) bool {
	return a.alphaValue() == b.alphaValue() &&
		a.precision() == b.precision() &&
		a.registerCount() == b.registerCount() &&
		a.hasCounters() == b.hasCounters()
}
