package hll

import "testing"

func TestEqual_RequiresCounters(t *testing.T) {
	a, err := NewWithCounters(0.00408)
	if err != nil {
		t.Fatalf("NewWithCounters: %v", err)
	}
	b, err := NewWithCounters(0.00408)
	if err != nil {
		t.Fatalf("NewWithCounters: %v", err)
	}

	a.Push([]byte("test"))
	b.Push([]byte("test"))

	if !a.Equal(b) {
		t.Error("expected equal sketches after identical pushes")
	}

	b.Push([]byte("test"))

	if a.Equal(b) {
		t.Error("expected unequal sketches after diverging pushes")
	}
}

func TestEqual_WithoutCountersNeverEqual(t *testing.T) {
	a, _ := New(0.05)
	b, _ := New(0.05)

	if a.Equal(b) {
		t.Error("counter-less sketches must never compare equal")
	}
	if a.Equal(a) {
		t.Error("a counter-less sketch must not even equal itself")
	}
}

func TestEqual_OneSidedCountersNeverEqual(t *testing.T) {
	a, _ := NewWithCounters(0.05)
	b, _ := New(0.05)

	a.Push([]byte("x"))
	b.Push([]byte("x"))

	if a.Equal(b) || b.Equal(a) {
		t.Error("sketches must not compare equal when only one carries counters")
	}
}
