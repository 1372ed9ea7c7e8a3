// Package phase defines the six-phase turn cycle and its legal transitions.
package phase

// Phase identifies one segment of the turn cycle.
type Phase string

const (
	Initiative     Phase = "initiative"
	Movement       Phase = "movement"
	WeaponAttack   Phase = "weapon_attack"
	PhysicalAttack Phase = "physical_attack"
	Heat           Phase = "heat"
	End            Phase = "end"
)

// order holds the cyclic phase sequence.
var order = [6]Phase{Initiative, Movement, WeaponAttack, PhysicalAttack, Heat, End}

// IsValid reports whether the phase is one of the six turn phases.
func (p Phase) IsValid() bool {
	for _, candidate := range order {
		if p == candidate {
			return true
		}
	}
	return false
}

// Next returns the phase following p and whether the transition wraps the
// cycle (End back to Initiative), which increments the turn counter.
func (p Phase) Next() (next Phase, turnWraps bool) {
	for i, candidate := range order {
		if p == candidate {
			if i == len(order)-1 {
				return order[0], true
			}
			return order[i+1], false
		}
	}
	return Initiative, false
}

// RequiresLocks reports whether advancing out of the phase requires every
// non-destroyed unit to have locked in its declaration. Initiative, Heat,
// and End are always advanceable.
func (p Phase) RequiresLocks() bool {
	switch p {
	case Movement, WeaponAttack, PhysicalAttack:
		return true
	}
	return false
}

func (p Phase) String() string { return string(p) }
