package phase

import "testing"

// TestPhaseCycle walks the full cycle and checks End wraps to Initiative.
func TestPhaseCycle(t *testing.T) {
	want := []Phase{Initiative, Movement, WeaponAttack, PhysicalAttack, Heat, End}

	p := Initiative
	for i := 1; i < len(want)*3; i++ {
		next, wraps := p.Next()
		expected := want[i%len(want)]
		if next != expected {
			t.Fatalf("step %d: %s.Next() = %s, want %s", i, p, next, expected)
		}
		if wantWrap := expected == Initiative; wraps != wantWrap {
			t.Fatalf("step %d: %s.Next() wraps = %v, want %v", i, p, wraps, wantWrap)
		}
		p = next
	}
}

func TestRequiresLocks(t *testing.T) {
	tests := []struct {
		phase Phase
		want  bool
	}{
		{Initiative, false},
		{Movement, true},
		{WeaponAttack, true},
		{PhysicalAttack, true},
		{Heat, false},
		{End, false},
	}
	for _, tt := range tests {
		if got := tt.phase.RequiresLocks(); got != tt.want {
			t.Fatalf("%s.RequiresLocks() = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !Heat.IsValid() {
		t.Fatal("expected heat phase to be valid")
	}
	if Phase("cooldown").IsValid() {
		t.Fatal("expected unknown phase to be invalid")
	}
}
