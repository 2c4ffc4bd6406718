package hll

import (
	"math/bits"

	"github.com/zeebo/xxh3"
)

// rhoAndIndex computes the register index and rho value for a hash, per
// the hash's register index and leading-zero run.
func rhoAndIndex(x uint64, p uint8) (index uint64, rho uint8) {
	m := uint64(1) << p
	j := x & (m - 1)
	w := x >> p
	return j, rho64(w, 64-p)
}

// rho64 computes rho = maxWidth - bitlen(w) + 1, where bitlen is the
// position of the most significant 1-bit (0 if w is 0). Equivalently, one
// plus the number of leading zeros of w within its top maxWidth bits.
func rho64(w uint64, maxWidth uint8) uint8 {
	leading := uint8(bits.LeadingZeros64(w))
	return maxWidth - (64 - leading) + 1
}

// Push hashes value with a 64-bit xxHash3 digest and updates the register it
// maps to.
func (s *sketch) Push(value []byte) {
	x := xxh3.Hash(value)
	s.pushHash(x)
}

func (s *sketch) pushHash(x uint64) {
	index, rho := rhoAndIndex(x, s.p)

	old := s.registers[index]
	newVal := old
	if rho > old {
		newVal = rho
	}

	if old == 0 {
		s.zero--
	}
	s.sum -= pow2neg(old) - pow2neg(newVal)

	if s.counters != nil {
		counterStep(&s.counters[index][newVal], +1)
	}

	s.registers[index] = newVal
}
