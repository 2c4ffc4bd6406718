package hll

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers for the by-field wire encoding. alpha and zero are written
// for forward-compatible inspection but may be recomputed on load;
// registers and sum must round-trip bit-exact.
const (
	fieldPrecision = protowire.Number(1)
	fieldAlpha     = protowire.Number(2)
	fieldZero      = protowire.Number(3)
	fieldSum       = protowire.Number(4)
	fieldRegisters = protowire.Number(5)
	fieldCounters  = protowire.Number(6)
)

// Marshal encodes the sketch using protobuf wire primitives
// (google.golang.org/protobuf/encoding/protowire), field-by-field.
func (s *sketch) Marshal() ([]byte, error) {
	var buf []byte

	buf = protowire.AppendTag(buf, fieldPrecision, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(s.p))

	buf = protowire.AppendTag(buf, fieldAlpha, protowire.Fixed64Type)
	buf = protowire.AppendFixed64(buf, math.Float64bits(s.alpha))

	buf = protowire.AppendTag(buf, fieldZero, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(s.zero))

	buf = protowire.AppendTag(buf, fieldSum, protowire.Fixed64Type)
	buf = protowire.AppendFixed64(buf, math.Float64bits(s.sum))

	buf = protowire.AppendTag(buf, fieldRegisters, protowire.BytesType)
	buf = protowire.AppendBytes(buf, s.registers)

	for _, row := range s.counters {
		buf = protowire.AppendTag(buf, fieldCounters, protowire.BytesType)
		buf = protowire.AppendBytes(buf, row)
	}

	return buf, nil
}

// Unmarshal decodes a sketch previously produced by Marshal. alpha is
// recomputed from p rather than trusted from the wire.
func Unmarshal(data []byte) (Sketch, error) {
	if data == nil {
		return nil, fmt.Errorf("hll: cannot unmarshal nil data")
	}

	s := &sketch{}
	var gotP bool
	var counterRows [][]byte

	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("hll: malformed wire data: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch num {
		case fieldPrecision:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("hll: malformed precision field: %w", protowire.ParseError(n))
			}
			b = b[n:]
			s.p = uint8(v)
			gotP = true

		case fieldAlpha:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return nil, fmt.Errorf("hll: malformed alpha field: %w", protowire.ParseError(n))
			}
			b = b[n:]
			s.alpha = math.Float64frombits(v)

		case fieldZero:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("hll: malformed zero field: %w", protowire.ParseError(n))
			}
			b = b[n:]
			s.zero = int(v)

		case fieldSum:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return nil, fmt.Errorf("hll: malformed sum field: %w", protowire.ParseError(n))
			}
			b = b[n:]
			s.sum = math.Float64frombits(v)

		case fieldRegisters:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("hll: malformed registers field: %w", protowire.ParseError(n))
			}
			b = b[n:]
			s.registers = append([]uint8(nil), v...)

		case fieldCounters:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("hll: malformed counters field: %w", protowire.ParseError(n))
			}
			b = b[n:]
			counterRows = append(counterRows, append([]byte(nil), v...))

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("hll: malformed unknown field: %w", protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if !gotP {
		return nil, fmt.Errorf("hll: missing precision field")
	}
	if p := s.p; p < minP || p > maxP {
		return nil, ErrInvalidErrorRate
	}

	// alpha/zero may be recomputed rather than trusted from the wire
	// both are cheap to derive from p and registers.
	s.alpha = alpha(s.p)
	zero := 0
	for _, r := range s.registers {
		if r == 0 {
			zero++
		}
	}
	s.zero = zero

	if len(counterRows) > 0 {
		s.counters = make([][]uint8, len(counterRows))
		for i, row := range counterRows {
			s.counters[i] = []uint8(row)
		}
	}

	return s, nil
}
