package dice

import (
	"math/rand"
	"testing"
)

// TestSeededRollerDeterminism ensures the same seed yields the same sequence.
func TestSeededRollerDeterminism(t *testing.T) {
	a := NewRoller(42)
	b := NewRoller(42)

	for i := 0; i < 100; i++ {
		if got, want := a.TwoD6(), b.TwoD6(); got != want {
			t.Fatalf("roll %d diverged: %d != %d", i, got, want)
		}
	}
}

// TestSeededRollerMatchesSource ensures rolls come from the seeded source.
func TestSeededRollerMatchesSource(t *testing.T) {
	seed := int64(7)
	rng := rand.New(rand.NewSource(seed))
	want := rng.Intn(6) + 1

	r := NewRoller(seed)
	if got := r.D6(); got != want {
		t.Fatalf("D6() = %d, want %d", got, want)
	}
}

func TestSeededRollerRanges(t *testing.T) {
	r := NewRoller(1)
	for i := 0; i < 1000; i++ {
		if v := r.D6(); v < 1 || v > 6 {
			t.Fatalf("D6() = %d, out of range", v)
		}
		if v := r.TwoD6(); v < 2 || v > 12 {
			t.Fatalf("TwoD6() = %d, out of range", v)
		}
		if v := r.Pick(5); v < 0 || v >= 5 {
			t.Fatalf("Pick(5) = %d, out of range", v)
		}
	}
}

func TestScriptReplaysValues(t *testing.T) {
	s := NewScript(8, 5, 3)

	if got := s.TwoD6(); got != 8 {
		t.Fatalf("TwoD6() = %d, want 8", got)
	}
	if got := s.TwoD6(); got != 5 {
		t.Fatalf("TwoD6() = %d, want 5", got)
	}
	if got := s.Pick(2); got != 1 {
		t.Fatalf("Pick(2) = %d, want 1", got)
	}
	if got := s.Remaining(); got != 0 {
		t.Fatalf("Remaining() = %d, want 0", got)
	}
}

func TestScriptPanicsWhenExhausted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on exhausted script")
		}
	}()
	s := NewScript(4)
	s.D6()
	s.D6()
}
