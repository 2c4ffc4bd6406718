package hll

import "github.com/zeebo/xxh3"

// Delete approximately removes value from the sketch. It fails with
// ErrDeleteUnsupported if the sketch was not created with deletion
// counters.
func (s *sketch) Delete(value []byte) error {
	if s.counters == nil {
		return ErrDeleteUnsupported
	}

	x := xxh3.Hash(value)
	index, rho := rhoAndIndex(x, s.p)

	row := s.counters[index]
	if row[rho] < 1 {
		return nil
	}

	counterStep(&row[rho], -1)

	if row[rho] != 0 {
		return nil
	}

	// The counter backing the register's current maximum reached zero;
	// downshift to the next-highest rho that still has observations.
	if s.registers[index] != rho {
		return nil
	}

	if rho != 0 {
		s.zero++
	}
	s.sum -= pow2neg(rho)

	for i := int(rho) - 1; i >= 1; i-- {
		if row[i] > 0 {
			if i != 0 {
				s.zero--
			}
			s.sum += pow2neg(uint8(i))
			s.registers[index] = uint8(i)
			return nil
		}
	}

	s.sum += pow2neg(0)
	s.registers[index] = 0
	return nil
}
