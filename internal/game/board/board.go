// Package board provides hex-grid coordinates, facings, and firing arcs.
//
// Hexes use offset coordinates (col, row) with odd-column offset, converted
// to cube coordinates for distance and bearing math. Facings run 0-5
// clockwise from north.
package board

import (
	"fmt"
	"strings"
)

// Coord is a 1-indexed offset hex coordinate.
type Coord struct {
	Col int `json:"col" yaml:"col"`
	Row int `json:"row" yaml:"row"`
}

// Facing is a hexside direction, 0-5 clockwise from north.
type Facing int

const (
	FacingN Facing = iota
	FacingNE
	FacingSE
	FacingS
	FacingSW
	FacingNW
)

// Normalize wraps a facing into the 0-5 range.
func (f Facing) Normalize() Facing {
	return Facing(((int(f) % 6) + 6) % 6)
}

// Turn rotates the facing by the provided number of hexsides (clockwise
// for positive values).
func (f Facing) Turn(hexsides int) Facing {
	return Facing(int(f) + hexsides).Normalize()
}

var facingNames = [6]string{"N", "NE", "SE", "S", "SW", "NW"}

func (f Facing) String() string {
	return facingNames[f.Normalize()]
}

// ParseFacing resolves a facing from its compass name, case-insensitively.
func ParseFacing(name string) (Facing, bool) {
	for i, candidate := range facingNames {
		if strings.EqualFold(name, candidate) {
			return Facing(i), true
		}
	}
	return FacingN, false
}

// UnmarshalYAML accepts a facing as either a compass name ("SE") or a raw
// hexside number, so scenario files stay readable.
func (f *Facing) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		parsed, ok := ParseFacing(name)
		if !ok {
			return fmt.Errorf("unknown facing %q", name)
		}
		*f = parsed
		return nil
	}
	var n int
	if err := unmarshal(&n); err != nil {
		return err
	}
	*f = Facing(n).Normalize()
	return nil
}

type cube struct {
	q, r, s int
}

func toCube(h Coord) cube {
	q := h.Col - 1
	z := (h.Row - 1) - (q-(q&1))/2
	return cube{q: q, r: -q - z, s: z}
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b Coord) int {
	ac := toCube(a)
	bc := toCube(b)
	return (abs(ac.q-bc.q) + abs(ac.r-bc.r) + abs(ac.s-bc.s)) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Arc identifies which firing arc a target occupies relative to a unit's
// facing. The front arc spans three hexsides; left, right, and rear span
// one each.
type Arc int

const (
	ArcFront Arc = iota
	ArcLeft
	ArcRight
	ArcRear
)

var arcNames = [4]string{"front", "left", "right", "rear"}

func (a Arc) String() string {
	if a < ArcFront || a > ArcRear {
		return "front"
	}
	return arcNames[a]
}

// DetermineArc returns which arc target occupies relative to a unit at from
// with the given facing. Front covers facing-1, facing, facing+1; right is
// facing+2; rear facing+3; left facing+4.
func DetermineArc(from Coord, facing Facing, target Coord) Arc {
	dir := bearing(from, target)
	diff := ((dir - int(facing.Normalize())) + 6) % 6
	switch diff {
	case 0, 1, 5:
		return ArcFront
	case 2:
		return ArcRight
	case 4:
		return ArcLeft
	default:
		return ArcRear
	}
}

// FacingToward returns the facing that puts target most directly ahead of a
// unit standing at from. A zero-distance pair faces north.
func FacingToward(from, to Coord) Facing {
	return Facing(bearing(from, to))
}

// bearing returns which of the six hex directions target lies in from
// source, using integer dot products against the cube direction vectors.
func bearing(from, to Coord) int {
	if from == to {
		return 0
	}
	fc := toCube(from)
	tc := toCube(to)
	dq := tc.q - fc.q
	dr := tc.r - fc.r
	ds := tc.s - fc.s

	dirs := [6]cube{
		{0, 1, -1},  // N
		{1, 0, -1},  // NE
		{1, -1, 0},  // SE
		{0, -1, 1},  // S
		{-1, 0, 1},  // SW
		{-1, 1, 0},  // NW
	}

	best := 0
	bestDot := -(1 << 30)
	for i, d := range dirs {
		dot := dq*d.q + dr*d.r + ds*d.s
		if dot > bestDot {
			bestDot = dot
			best = i
		}
	}
	return best
}

// Map describes the playable grid.
type Map struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// InBounds reports whether the coordinate lies on the map.
func (m Map) InBounds(c Coord) bool {
	return c.Col >= 1 && c.Col <= m.Width && c.Row >= 1 && c.Row <= m.Height
}
