package engine

import (
	"fmt"
	"time"

	"github.com/hexmek/hexmek/internal/game/board"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// PhysicalInput declares a punch or kick from one unit at an adjacent target.
type PhysicalInput struct {
	AttackerID string
	TargetID   string
	Kind       event.ShotKind
	// Limb is the attacking arm for a punch or leg for a kick.
	Limb unit.Location
}

// punchDamage is tonnage divided by ten, rounded up.
func punchDamage(tonnage int) int { return (tonnage + 9) / 10 }

// kickDamage is tonnage divided by five, rounded up.
func kickDamage(tonnage int) int { return (tonnage + 4) / 5 }

// DeclarePhysical validates a physical attack and appends the declaration
// with its target number fixed. Punches need an intact shoulder and reach
// any adjacent hex; kicks need an intact hip and a target in the front arc.
func DeclarePhysical(s Session, in PhysicalInput, now func() time.Time) (Session, error) {
	if s.Current.Status != StatusActive {
		return s, fmt.Errorf("declare physical: status %s: %w", s.Current.Status, ErrLifecycleViolation)
	}
	if s.Current.Phase != phase.PhysicalAttack {
		return s, fmt.Errorf("declare physical: phase %s: %w", s.Current.Phase, ErrPhaseMismatch)
	}
	attacker, ok := s.Current.Units[in.AttackerID]
	if !ok {
		return s, fmt.Errorf("declare physical: attacker %q: %w", in.AttackerID, ErrUnknownUnit)
	}
	target, ok := s.Current.Units[in.TargetID]
	if !ok {
		return s, fmt.Errorf("declare physical: target %q: %w", in.TargetID, ErrUnknownUnit)
	}
	if in.AttackerID == in.TargetID {
		return s, fmt.Errorf("declare physical: unit %s targeting itself: %w", in.AttackerID, ErrInvalidInput)
	}
	if !attacker.CanAct() {
		return s, fmt.Errorf("declare physical: attacker %s: %w", in.AttackerID, ErrUnitIncapacitated)
	}
	if attacker.Prone {
		return s, fmt.Errorf("declare physical: attacker %s prone: %w", in.AttackerID, ErrUnitIncapacitated)
	}
	if attacker.AttackLocked {
		return s, fmt.Errorf("declare physical: attacker %s: %w", in.AttackerID, ErrAlreadyLocked)
	}
	if target.Destroyed {
		return s, fmt.Errorf("declare physical: target %s destroyed: %w", in.TargetID, ErrInvalidInput)
	}
	if board.Distance(attacker.Position, target.Position) != 1 {
		return s, fmt.Errorf("declare physical: target %s not adjacent: %w", in.TargetID, ErrInvalidInput)
	}

	tn := attacker.Spec.Piloting +
		attackerMoveModifier(attacker.Mode) +
		targetMovementModifier(target.HexesMoved) +
		proneTargetModifier(attacker, target)

	switch in.Kind {
	case event.ShotPunch:
		if !in.Limb.IsArm() {
			return s, fmt.Errorf("declare physical: punch with %s: %w", in.Limb, ErrInvalidInput)
		}
		if attacker.LocationDestroyed[in.Limb] {
			return s, fmt.Errorf("declare physical: %s destroyed: %w", in.Limb, ErrInvalidInput)
		}
		if attacker.ComponentDestroyed(in.Limb, unit.ComponentShoulder) {
			return s, fmt.Errorf("declare physical: %s shoulder destroyed: %w", in.Limb, ErrInvalidInput)
		}
		if attacker.ComponentDestroyed(in.Limb, unit.ComponentUpperArm) {
			tn += 2
		}
		if attacker.ComponentDestroyed(in.Limb, unit.ComponentLowerArm) {
			tn += 2
		}
		if attacker.ComponentDestroyed(in.Limb, unit.ComponentHand) {
			tn++
		}
	case event.ShotKick:
		if !in.Limb.IsLeg() {
			return s, fmt.Errorf("declare physical: kick with %s: %w", in.Limb, ErrInvalidInput)
		}
		if attacker.LocationDestroyed[in.Limb] {
			return s, fmt.Errorf("declare physical: %s destroyed: %w", in.Limb, ErrInvalidInput)
		}
		if attacker.ComponentDestroyed(unit.LocLeftLeg, unit.ComponentHip) ||
			attacker.ComponentDestroyed(unit.LocRightLeg, unit.ComponentHip) {
			return s, fmt.Errorf("declare physical: hip destroyed: %w", ErrInvalidInput)
		}
		if board.DetermineArc(attacker.Position, attacker.Facing, target.Position) != board.ArcFront {
			return s, fmt.Errorf("declare physical: kick target outside front arc: %w", ErrInvalidInput)
		}
		if attacker.ComponentDestroyed(in.Limb, unit.ComponentUpperLeg) {
			tn += 2
		}
		if attacker.ComponentDestroyed(in.Limb, unit.ComponentLowerLeg) {
			tn += 2
		}
		if attacker.ComponentDestroyed(in.Limb, unit.ComponentFoot) {
			tn++
		}
	default:
		return s, fmt.Errorf("declare physical: kind %q: %w", in.Kind, ErrInvalidInput)
	}

	b := s.begin(now().UTC())
	b.emit(event.AttackDeclared{
		AttackerID: in.AttackerID,
		TargetID:   in.TargetID,
		Shots: []event.Shot{{
			Kind:        in.Kind,
			Limb:        in.Limb,
			ToHitNumber: tn,
			Arc:         attackArc(attacker, target),
		}},
	})
	return b.done(), nil
}
