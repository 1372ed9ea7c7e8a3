package engine

import (
	"fmt"
	"time"

	"github.com/hexmek/hexmek/internal/game/dice"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// punchTable maps a d6 to the location struck by a punch.
var punchTable = [6]unit.Location{
	unit.LocLeftArm,
	unit.LocLeftTorso,
	unit.LocCenterTorso,
	unit.LocRightTorso,
	unit.LocRightArm,
	unit.LocHead,
}

// ResolveAttacks processes every declaration pending in the current attack
// phase, strictly in declaration order. Each attack's full cascade (ammo
// consumption, the to-hit roll, damage, criticals, and any piloting checks
// it triggered) lands before the next attack begins. Piloting checks queued
// during earlier phases (hip damage during movement) resolve first.
func ResolveAttacks(s Session, now func() time.Time, r dice.Roller) (Session, error) {
	if s.Current.Status != StatusActive {
		return s, fmt.Errorf("resolve attacks: status %s: %w", s.Current.Status, ErrLifecycleViolation)
	}
	if p := s.Current.Phase; p != phase.WeaponAttack && p != phase.PhysicalAttack {
		return s, fmt.Errorf("resolve attacks: phase %s: %w", p, ErrPhaseMismatch)
	}
	if s.Current.AttacksResolved {
		return s, fmt.Errorf("resolve attacks: phase %s: %w", s.Current.Phase, ErrAlreadyResolved)
	}

	b := s.begin(now().UTC())

	for _, id := range s.Current.UnitIDs() {
		resolvePSRBatch(b, id, r)
	}

	pending := append([]event.AttackDeclared(nil), b.state().PendingAttacks...)
	for _, decl := range pending {
		if b.state().Status != StatusActive {
			break
		}
		resolveDeclaration(b, decl, r)
		resolvePSRBatch(b, decl.TargetID, r)
		resolvePSRBatch(b, decl.AttackerID, r)
		checkElimination(b)
	}
	return b.done(), nil
}

// resolveDeclaration rolls out one declaration, shot by shot. Shots from an
// attacker that has since been destroyed, knocked out, or shut down, or at
// a target already destroyed, void as automatic misses without dice or heat.
func resolveDeclaration(b *builder, decl event.AttackDeclared, r dice.Roller) {
	for _, shot := range decl.Shots {
		attacker, ok := b.unitFor(decl.AttackerID)
		if !ok {
			return
		}
		target, targetOK := b.unitFor(decl.TargetID)

		if !attacker.CanAct() || !targetOK || target.Destroyed {
			b.emit(event.AttackResolved{
				AttackerID:  decl.AttackerID,
				TargetID:    decl.TargetID,
				Kind:        shot.Kind,
				Weapon:      shot.Weapon,
				Limb:        shot.Limb,
				ToHitNumber: shot.ToHitNumber,
				Hit:         false,
				AutoMiss:    true,
			})
			continue
		}

		switch shot.Kind {
		case event.ShotWeapon:
			resolveWeaponShot(b, decl, shot, r)
		case event.ShotPunch, event.ShotKick:
			resolvePhysicalShot(b, decl, shot, r)
		}
	}
}

func resolveWeaponShot(b *builder, decl event.AttackDeclared, shot event.Shot, r dice.Roller) {
	attacker, _ := b.unitFor(decl.AttackerID)
	w, err := unit.LookupWeapon(shot.Weapon)
	if err != nil {
		return
	}

	// A mount destroyed earlier in the batch can no longer fire.
	if !attacker.MountUsable(shot.MountID) {
		b.emit(event.AttackResolved{
			AttackerID:  decl.AttackerID,
			TargetID:    decl.TargetID,
			Kind:        shot.Kind,
			Weapon:      shot.Weapon,
			ToHitNumber: shot.ToHitNumber,
			Hit:         false,
			AutoMiss:    true,
		})
		return
	}

	// Non-energy weapons feed from a bin before the trigger pulls; a dry
	// bin voids the shot.
	if w.UsesAmmo() {
		binID, ok := attacker.AmmoBinForWeapon(w.Name)
		if !ok {
			b.emit(event.AttackResolved{
				AttackerID:  decl.AttackerID,
				TargetID:    decl.TargetID,
				Kind:        shot.Kind,
				Weapon:      shot.Weapon,
				ToHitNumber: shot.ToHitNumber,
				Hit:         false,
				AutoMiss:    true,
			})
			return
		}
		b.emit(event.AmmoConsumed{
			UnitID:          decl.AttackerID,
			BinID:           binID,
			Weapon:          w.Name,
			Rounds:          1,
			RoundsRemaining: attacker.Ammo[binID] - 1,
		})
	}

	roll := r.TwoD6()
	hit := roll >= shot.ToHitNumber
	b.emit(event.AttackResolved{
		AttackerID:  decl.AttackerID,
		TargetID:    decl.TargetID,
		Kind:        shot.Kind,
		Weapon:      shot.Weapon,
		ToHitNumber: shot.ToHitNumber,
		Roll:        roll,
		Hit:         hit,
		Heat:        w.Heat,
	})
	if !hit {
		return
	}

	locRoll := r.TwoD6()
	applyHit(b, decl.TargetID, damageSpec{
		loc:     unit.RollLocation(locRoll),
		locRoll: locRoll,
		amount:  w.Damage,
		source:  sourceWeapon,
	}, r)
}

func resolvePhysicalShot(b *builder, decl event.AttackDeclared, shot event.Shot, r dice.Roller) {
	attacker, _ := b.unitFor(decl.AttackerID)

	// The attacking limb may have been shot off since declaration.
	if attacker.LocationDestroyed[shot.Limb] {
		b.emit(event.AttackResolved{
			AttackerID:  decl.AttackerID,
			TargetID:    decl.TargetID,
			Kind:        shot.Kind,
			Limb:        shot.Limb,
			ToHitNumber: shot.ToHitNumber,
			Hit:         false,
			AutoMiss:    true,
		})
		return
	}

	roll := r.TwoD6()
	hit := roll >= shot.ToHitNumber
	b.emit(event.AttackResolved{
		AttackerID:  decl.AttackerID,
		TargetID:    decl.TargetID,
		Kind:        shot.Kind,
		Limb:        shot.Limb,
		ToHitNumber: shot.ToHitNumber,
		Roll:        roll,
		Hit:         hit,
	})

	if !hit {
		if shot.Kind == event.ShotKick {
			// A whiffed kick unbalances the kicker.
			queuePSR(b, decl.AttackerID, psrReasonMissedKick, 0)
		}
		return
	}

	switch shot.Kind {
	case event.ShotPunch:
		locRoll := r.D6()
		applyHit(b, decl.TargetID, damageSpec{
			loc:     punchTable[locRoll-1],
			locRoll: locRoll,
			amount:  punchDamage(attacker.Spec.Tonnage),
			source:  sourcePunch,
		}, r)
	case event.ShotKick:
		locRoll := r.D6()
		leg := unit.LocRightLeg
		if locRoll >= 4 {
			leg = unit.LocLeftLeg
		}
		applyHit(b, decl.TargetID, damageSpec{
			loc:     leg,
			locRoll: locRoll,
			amount:  kickDamage(attacker.Spec.Tonnage),
			source:  sourceKick,
		}, r)
		queuePSR(b, decl.TargetID, psrReasonKicked, 0)
	}
}
