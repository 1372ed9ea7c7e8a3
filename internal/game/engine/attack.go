package engine

import (
	"fmt"
	"time"

	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// AttackInput declares weapon fire from one unit at one target.
type AttackInput struct {
	AttackerID string
	TargetID   string
	// MountIDs lists the firing weapon mounts.
	MountIDs []string
}

// DeclareAttack validates a weapon attack and appends a declaration carrying
// a to-hit number per weapon, fixed now so resolution only rolls dice. A unit
// may declare against several targets with separate calls; the first target
// of the turn is primary and later distinct targets take the secondary
// penalty.
func DeclareAttack(s Session, in AttackInput, now func() time.Time) (Session, error) {
	if s.Current.Status != StatusActive {
		return s, fmt.Errorf("declare attack: status %s: %w", s.Current.Status, ErrLifecycleViolation)
	}
	if s.Current.Phase != phase.WeaponAttack {
		return s, fmt.Errorf("declare attack: phase %s: %w", s.Current.Phase, ErrPhaseMismatch)
	}
	attacker, ok := s.Current.Units[in.AttackerID]
	if !ok {
		return s, fmt.Errorf("declare attack: attacker %q: %w", in.AttackerID, ErrUnknownUnit)
	}
	target, ok := s.Current.Units[in.TargetID]
	if !ok {
		return s, fmt.Errorf("declare attack: target %q: %w", in.TargetID, ErrUnknownUnit)
	}
	if in.AttackerID == in.TargetID {
		return s, fmt.Errorf("declare attack: unit %s targeting itself: %w", in.AttackerID, ErrInvalidInput)
	}
	if !attacker.CanAct() {
		return s, fmt.Errorf("declare attack: attacker %s: %w", in.AttackerID, ErrUnitIncapacitated)
	}
	if attacker.AttackLocked {
		return s, fmt.Errorf("declare attack: attacker %s: %w", in.AttackerID, ErrAlreadyLocked)
	}
	if target.Destroyed {
		return s, fmt.Errorf("declare attack: target %s destroyed: %w", in.TargetID, ErrInvalidInput)
	}
	if len(in.MountIDs) == 0 {
		return s, fmt.Errorf("declare attack: no weapons: %w", ErrInvalidInput)
	}

	shots := make([]event.Shot, 0, len(in.MountIDs))
	arc := attackArc(attacker, target)
	for _, mountID := range in.MountIDs {
		m, ok := attacker.Spec.MountByID(mountID)
		if !ok {
			return s, fmt.Errorf("declare attack: unit %s mount %q: %w", in.AttackerID, mountID, ErrInvalidInput)
		}
		if !attacker.MountUsable(mountID) {
			return s, fmt.Errorf("declare attack: mount %s destroyed: %w", mountID, ErrInvalidInput)
		}
		w, err := unit.LookupWeapon(m.Weapon)
		if err != nil {
			return s, fmt.Errorf("declare attack: %w: %w", err, ErrInvalidInput)
		}
		if w.UsesAmmo() {
			if _, ok := attacker.AmmoBinForWeapon(w.Name); !ok {
				return s, fmt.Errorf("declare attack: mount %s out of ammo: %w", mountID, ErrInvalidInput)
			}
		}
		tn, err := weaponToHit(attacker, target, w)
		if err != nil {
			return s, fmt.Errorf("declare attack: %w", err)
		}
		shots = append(shots, event.Shot{
			Kind:        event.ShotWeapon,
			MountID:     mountID,
			Weapon:      w.Name,
			ToHitNumber: tn,
			Arc:         arc,
		})
	}

	b := s.begin(now().UTC())
	b.emit(event.AttackDeclared{
		AttackerID: in.AttackerID,
		TargetID:   in.TargetID,
		Shots:      shots,
	})
	return b.done(), nil
}

// LockAttack finalizes a unit's declarations for the current attack phase.
// Valid during both weapon and physical attack phases; locking twice is a
// no-op.
func LockAttack(s Session, unitID string, now func() time.Time) (Session, error) {
	if s.Current.Status != StatusActive {
		return s, fmt.Errorf("lock attack: status %s: %w", s.Current.Status, ErrLifecycleViolation)
	}
	if p := s.Current.Phase; p != phase.WeaponAttack && p != phase.PhysicalAttack {
		return s, fmt.Errorf("lock attack: phase %s: %w", p, ErrPhaseMismatch)
	}
	u, ok := s.Current.Units[unitID]
	if !ok {
		return s, fmt.Errorf("lock attack: unit %q: %w", unitID, ErrUnknownUnit)
	}
	if u.Destroyed {
		return s, fmt.Errorf("lock attack: unit %s destroyed: %w", unitID, ErrUnitIncapacitated)
	}
	if u.AttackLocked {
		return s, nil
	}
	b := s.begin(now().UTC())
	b.emit(event.AttackLocked{UnitID: unitID})
	return b.done(), nil
}
