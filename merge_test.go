package hll

import (
	"fmt"
	"testing"
)

func pushN(s Sketch, prefix string, n int) {
	for i := 0; i < n; i++ {
		s.Push([]byte(fmt.Sprintf("%s-%d", prefix, i)))
	}
}

func TestUnion_Commutative(t *testing.T) {
	a, _ := New(0.05)
	b, _ := New(0.05)
	pushN(a, "a", 500)
	pushN(b, "b", 500)

	ab := NewFrom(a)
	if err := ab.Union(a); err != nil {
		t.Fatal(err)
	}
	if err := ab.Union(b); err != nil {
		t.Fatal(err)
	}

	ba := NewFrom(a)
	if err := ba.Union(b); err != nil {
		t.Fatal(err)
	}
	if err := ba.Union(a); err != nil {
		t.Fatal(err)
	}

	abSketch, baSketch := ab.(*sketch), ba.(*sketch)
	for i := range abSketch.registers {
		if abSketch.registers[i] != baSketch.registers[i] {
			t.Fatalf("register %d differs: union(a,b)=%d union(b,a)=%d", i, abSketch.registers[i], baSketch.registers[i])
		}
	}
}

func TestUnion_Absorbs(t *testing.T) {
	a, _ := New(0.05)
	pushN(a, "a", 500)

	before := append([]uint8(nil), a.(*sketch).registers...)

	if err := a.Union(a); err != nil {
		t.Fatal(err)
	}

	after := a.(*sketch).registers
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("register %d changed after self-union: %d -> %d", i, before[i], after[i])
		}
	}
}

func TestUnion_IncompatiblePrecision(t *testing.T) {
	a, _ := New(0.05)
	b, _ := New(0.01)

	if err := a.Union(b); err != ErrIncompatibleSketch {
		t.Errorf("Union err = %v, want ErrIncompatibleSketch", err)
	}
}

func TestUnion_IncompatibleCounterPresence(t *testing.T) {
	a, _ := New(0.05)
	b, _ := NewWithCounters(0.05)

	if err := a.Union(b); err != ErrIncompatibleSketch {
		t.Errorf("Union err = %v, want ErrIncompatibleSketch", err)
	}
}

func TestIntersect_IncompatibleFails(t *testing.T) {
	a, _ := New(0.05)
	b, _ := New(0.01)

	if err := a.Intersect(b); err != ErrIncompatibleSketch {
		t.Errorf("Intersect err = %v, want ErrIncompatibleSketch", err)
	}
}

func TestIntersect_RegisterWiseMin(t *testing.T) {
	a, _ := New(0.05)
	b, _ := New(0.05)

	sa := a.(*sketch)
	sb := b.(*sketch)
	sa.registers[0] = 5
	sb.registers[0] = 3
	sa.registers[1] = 2
	sb.registers[1] = 7

	if err := a.Intersect(b); err != nil {
		t.Fatal(err)
	}

	if sa.registers[0] != 3 {
		t.Errorf("registers[0] = %d, want 3 (min of 5,3)", sa.registers[0])
	}
	if sa.registers[1] != 2 {
		t.Errorf("registers[1] = %d, want 2 (min of 2,7)", sa.registers[1])
	}
}

func TestUnion_RegisterWiseMax(t *testing.T) {
	a, _ := New(0.05)
	b, _ := New(0.05)

	sa := a.(*sketch)
	sb := b.(*sketch)
	sa.registers[0] = 5
	sb.registers[0] = 3
	sa.registers[1] = 2
	sb.registers[1] = 7

	if err := a.Union(b); err != nil {
		t.Fatal(err)
	}

	if sa.registers[0] != 5 {
		t.Errorf("registers[0] = %d, want 5 (max of 5,3)", sa.registers[0])
	}
	if sa.registers[1] != 7 {
		t.Errorf("registers[1] = %d, want 7 (max of 2,7)", sa.registers[1])
	}
}

func TestUnion_WithCounters_MergesDeletionState(t *testing.T) {
	actual := 1000
	p := 0.05

	a, _ := NewWithCounters(p)
	pushN(a, "union-a", actual)

	b, _ := NewWithCounters(p)
	pushN(b, "union-b", actual)

	if err := a.Union(b); err != nil {
		t.Fatal(err)
	}

	sa := a.(*sketch)
	for i, reg := range sa.registers {
		top := 0
		for j, c := range sa.counters[i] {
			if c > 0 {
				top = j
			}
		}
		if int(reg) != top {
			t.Fatalf("register %d = %d, but highest non-zero deletion counter is at %d", i, reg, top)
		}
	}
}
