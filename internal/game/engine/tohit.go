package engine

import (
	"fmt"

	"github.com/hexmek/hexmek/internal/game/board"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// attackerMoveModifier is the to-hit penalty for the attacker's own movement.
func attackerMoveModifier(mode MoveMode) int {
	switch mode {
	case MoveWalk:
		return 1
	case MoveRun:
		return 2
	case MoveJump:
		return 3
	default:
		return 0
	}
}

// targetMovementModifier maps hexes moved to the target movement modifier.
func targetMovementModifier(hexes int) int {
	switch {
	case hexes <= 2:
		return 0
	case hexes <= 4:
		return 1
	case hexes <= 6:
		return 2
	case hexes <= 9:
		return 3
	case hexes <= 17:
		return 4
	case hexes <= 24:
		return 5
	default:
		return 6
	}
}

// heatModifier is the to-hit penalty from the attacker's heat scale.
func heatModifier(heat int) int {
	switch {
	case heat >= 24:
		return 4
	case heat >= 17:
		return 3
	case heat >= 13:
		return 2
	case heat >= 8:
		return 1
	default:
		return 0
	}
}

// rangeModifier returns the range-bracket penalty, or an error when the
// target sits beyond long range. Inside minimum range, each hex of shortfall
// adds one plus one.
func rangeModifier(w unit.Weapon, distance int) (int, error) {
	if distance > w.LongRange {
		return 0, fmt.Errorf("%s at %d hexes: %w", w.Name, distance, ErrOutOfRange)
	}
	mod := 0
	switch {
	case distance <= w.ShortRange:
		mod = 0
	case distance <= w.MedRange:
		mod = 2
	default:
		mod = 4
	}
	if w.MinRange > 0 && distance <= w.MinRange {
		mod += w.MinRange - distance + 1
	}
	return mod, nil
}

// secondaryTargetModifier is the penalty for firing on a target other than
// the primary: +1 when the extra target is in the attacker's front arc, +2
// elsewhere.
func secondaryTargetModifier(attacker, target *UnitState) int {
	arc := board.DetermineArc(attacker.Position, attacker.Facing, target.Position)
	if arc == board.ArcFront {
		return 1
	}
	return 2
}

// proneTargetModifier: a prone target is easier to hit up close and harder
// at range.
func proneTargetModifier(attacker, target *UnitState) int {
	if !target.Prone {
		return 0
	}
	if board.Distance(attacker.Position, target.Position) <= 1 {
		return -2
	}
	return 1
}

// weaponToHit computes the full to-hit number for one weapon at declaration
// time: gunnery, attacker movement and heat, target movement, range bracket,
// sensors, prone states, and the secondary-target penalty when the target is
// not the attacker's primary this turn.
func weaponToHit(attacker, target *UnitState, w unit.Weapon) (int, error) {
	distance := board.Distance(attacker.Position, target.Position)
	rangeMod, err := rangeModifier(w, distance)
	if err != nil {
		return 0, err
	}
	tn := attacker.Spec.Gunnery +
		attackerMoveModifier(attacker.Mode) +
		heatModifier(attacker.Heat) +
		targetMovementModifier(target.HexesMoved) +
		rangeMod +
		attacker.SensorHits +
		proneTargetModifier(attacker, target)
	if attacker.Prone {
		tn += 2
	}
	if !isPrimaryTarget(attacker, target.Spec.ID) {
		tn += secondaryTargetModifier(attacker, target)
	}
	return tn, nil
}

// isPrimaryTarget reports whether the target is the attacker's first (or
// only) target this turn. An unfired attacker treats any target as primary.
func isPrimaryTarget(attacker *UnitState, targetID string) bool {
	if len(attacker.TargetsThisTurn) == 0 {
		return true
	}
	return attacker.TargetsThisTurn[0] == targetID
}

// attackArc is the arc of the attacker as seen from the target, recorded on
// each shot for hit-table side selection and audit.
func attackArc(attacker, target *UnitState) board.Arc {
	return board.DetermineArc(target.Position, target.Facing, attacker.Position)
}
