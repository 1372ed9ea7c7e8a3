package engine

import (
	"fmt"
	"time"

	"github.com/hexmek/hexmek/internal/game/board"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// MovementInput is a movement declaration for one unit.
type MovementInput struct {
	UnitID string
	Mode   MoveMode
	To     board.Coord
	Facing board.Facing
}

// movementHeat is the heat a movement class generates: walking 1, running 2,
// jumping the greater of 3 and the hexes jumped.
func movementHeat(mode MoveMode, hexes int) int {
	switch mode {
	case MoveWalk:
		return 1
	case MoveRun:
		return 2
	case MoveJump:
		if hexes < 3 {
			return 3
		}
		return hexes
	default:
		return 0
	}
}

// DeclareMovement records a unit's move for the turn. A unit may redeclare
// until it locks. A prone unit stands by declaring any moving class; a
// shut-down or unconscious unit can only hold position through the phase.
func DeclareMovement(s Session, in MovementInput, now func() time.Time) (Session, error) {
	if s.Current.Status != StatusActive {
		return s, fmt.Errorf("declare movement: status %s: %w", s.Current.Status, ErrLifecycleViolation)
	}
	if s.Current.Phase != phase.Movement {
		return s, fmt.Errorf("declare movement: phase %s: %w", s.Current.Phase, ErrPhaseMismatch)
	}
	u, ok := s.Current.Units[in.UnitID]
	if !ok {
		return s, fmt.Errorf("declare movement: unit %q: %w", in.UnitID, ErrUnknownUnit)
	}
	if u.Destroyed {
		return s, fmt.Errorf("declare movement: unit %s destroyed: %w", in.UnitID, ErrUnitIncapacitated)
	}
	if u.MovementLocked {
		return s, fmt.Errorf("declare movement: unit %s: %w", in.UnitID, ErrAlreadyLocked)
	}
	if !in.Mode.IsValid() {
		return s, fmt.Errorf("declare movement: mode %q: %w", in.Mode, ErrInvalidInput)
	}
	if !u.CanAct() && in.Mode != MoveStationary {
		return s, fmt.Errorf("declare movement: unit %s cannot move: %w", in.UnitID, ErrUnitIncapacitated)
	}
	if !s.Current.Map.InBounds(in.To) {
		return s, fmt.Errorf("declare movement: destination %v off map: %w", in.To, ErrInvalidInput)
	}

	// Movement is measured from where the unit started the turn, which is
	// its current position: redeclarations replace, they do not chain.
	from := u.Position
	if prev := movementStart(s, in.UnitID); prev != nil {
		from = *prev
	}
	hexes := board.Distance(from, in.To)
	if err := checkMoveAllowance(u, in.Mode, hexes); err != nil {
		return s, err
	}

	b := s.begin(now().UTC())
	b.emit(event.MovementDeclared{
		UnitID:     in.UnitID,
		Mode:       string(in.Mode),
		From:       from,
		To:         in.To,
		Facing:     in.Facing.Normalize(),
		HexesMoved: hexes,
		Heat:       movementHeat(in.Mode, hexes),
	})
	return b.done(), nil
}

// movementStart finds where the unit stood before any declaration this
// phase, so a redeclaration measures from the original hex.
func movementStart(s Session, unitID string) *board.Coord {
	for i := len(s.Events) - 1; i >= 0; i-- {
		e := s.Events[i]
		if e.Turn != s.Current.Turn {
			break
		}
		if p, ok := e.Payload.(event.MovementDeclared); ok && p.UnitID == unitID {
			from := p.From
			return &from
		}
	}
	return nil
}

func checkMoveAllowance(u *UnitState, mode MoveMode, hexes int) error {
	var allowance int
	switch mode {
	case MoveStationary:
		if hexes != 0 {
			return fmt.Errorf("declare movement: unit %s stationary but moved %d: %w", u.Spec.ID, hexes, ErrInvalidInput)
		}
		return nil
	case MoveWalk:
		allowance = u.Spec.WalkMP
	case MoveRun:
		allowance = u.RunMP()
	case MoveJump:
		allowance = u.JumpMP()
	}
	if hexes > allowance {
		return fmt.Errorf("declare movement: unit %s %s %d hexes exceeds %d MP: %w",
			u.Spec.ID, mode, hexes, allowance, ErrInvalidInput)
	}
	return nil
}

// LockMovement finalizes a unit's movement for the phase. Locking an
// already-locked unit is a no-op, not an error.
func LockMovement(s Session, unitID string, now func() time.Time) (Session, error) {
	if s.Current.Status != StatusActive {
		return s, fmt.Errorf("lock movement: status %s: %w", s.Current.Status, ErrLifecycleViolation)
	}
	if s.Current.Phase != phase.Movement {
		return s, fmt.Errorf("lock movement: phase %s: %w", s.Current.Phase, ErrPhaseMismatch)
	}
	u, ok := s.Current.Units[unitID]
	if !ok {
		return s, fmt.Errorf("lock movement: unit %q: %w", unitID, ErrUnknownUnit)
	}
	if u.Destroyed {
		return s, fmt.Errorf("lock movement: unit %s destroyed: %w", unitID, ErrUnitIncapacitated)
	}
	if u.MovementLocked {
		return s, nil
	}
	b := s.begin(now().UTC())
	b.emit(event.MovementLocked{UnitID: unitID})

	// A destroyed hip makes every hex walked a balance check. The checks
	// queue here and roll at the head of weapon-attack resolution.
	hipGone := u.ComponentDestroyed(unit.LocLeftLeg, unit.ComponentHip) ||
		u.ComponentDestroyed(unit.LocRightLeg, unit.ComponentHip)
	if hipGone && u.HexesMoved > 0 && u.Mode != MoveJump {
		for i := 0; i < u.HexesMoved; i++ {
			queuePSR(b, unitID, psrReasonHipDamage, 2)
		}
	}
	return b.done(), nil
}
