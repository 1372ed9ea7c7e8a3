package board

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Coord
		want int
	}{
		{"same hex", Coord{3, 3}, Coord{3, 3}, 0},
		{"adjacent south", Coord{3, 3}, Coord{3, 4}, 1},
		{"adjacent column", Coord{3, 3}, Coord{4, 3}, 1},
		{"straight line", Coord{1, 1}, Coord{1, 7}, 6},
		{"diagonal", Coord{1, 1}, Coord{5, 5}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Fatalf("Distance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := Distance(tt.b, tt.a); got != tt.want {
				t.Fatalf("Distance(%v, %v) = %d, want %d (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestFacingNormalizeAndTurn(t *testing.T) {
	if got := Facing(7).Normalize(); got != FacingNE {
		t.Fatalf("Facing(7).Normalize() = %v, want NE", got)
	}
	if got := Facing(-1).Normalize(); got != FacingNW {
		t.Fatalf("Facing(-1).Normalize() = %v, want NW", got)
	}
	if got := FacingN.Turn(3); got != FacingS {
		t.Fatalf("N.Turn(3) = %v, want S", got)
	}
	if got := FacingN.Turn(-2); got != FacingSW {
		t.Fatalf("N.Turn(-2) = %v, want SW", got)
	}
}

func TestParseFacing(t *testing.T) {
	for _, name := range []string{"SE", "se", "Se"} {
		got, ok := ParseFacing(name)
		if !ok || got != FacingSE {
			t.Fatalf("ParseFacing(%q) = %v, %v, want SE", name, got, ok)
		}
	}
	if _, ok := ParseFacing("east"); ok {
		t.Fatal("ParseFacing should reject unknown names")
	}
}

func TestDetermineArc(t *testing.T) {
	from := Coord{5, 5}

	tests := []struct {
		name   string
		facing Facing
		target Coord
		want   Arc
	}{
		{"target north, facing north", FacingN, Coord{5, 1}, ArcFront},
		{"target south, facing north", FacingN, Coord{5, 9}, ArcRear},
		{"target south, facing south", FacingS, Coord{5, 9}, ArcFront},
		{"target north, facing south", FacingS, Coord{5, 1}, ArcRear},
		{"target east, facing north", FacingN, Coord{9, 5}, ArcFront},
		{"target east, facing south", FacingS, Coord{9, 5}, ArcLeft},
		{"target west, facing northeast", FacingNE, Coord{1, 5}, ArcRear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineArc(from, tt.facing, tt.target); got != tt.want {
				t.Fatalf("DetermineArc(%v, %v, %v) = %v, want %v", from, tt.facing, tt.target, got, tt.want)
			}
		})
	}
}

func TestMapInBounds(t *testing.T) {
	m := Map{Width: 15, Height: 17}

	if !m.InBounds(Coord{1, 1}) {
		t.Fatal("expected (1,1) in bounds")
	}
	if !m.InBounds(Coord{15, 17}) {
		t.Fatal("expected (15,17) in bounds")
	}
	if m.InBounds(Coord{0, 5}) {
		t.Fatal("expected (0,5) out of bounds")
	}
	if m.InBounds(Coord{16, 5}) {
		t.Fatal("expected (16,5) out of bounds")
	}
}
