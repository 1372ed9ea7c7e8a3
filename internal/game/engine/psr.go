package engine

import (
	"github.com/hexmek/hexmek/internal/game/dice"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// Piloting check reasons recorded on trigger and resolution events.
const (
	psrReasonLegDamage  = "leg_structure_damage"
	psrReasonGyroHit    = "gyro_hit"
	psrReasonKicked     = "kicked"
	psrReasonMissedKick = "missed_kick"
	psrReasonShutdown   = "shutdown"
	psrReasonHipDamage  = "hip_destroyed"
)

// queuePSR appends a pending piloting check. Destroyed, unconscious, and
// prone units never queue: they either cannot fall or cannot roll.
func queuePSR(b *builder, unitID, reason string, modifier int) {
	u, ok := b.unitFor(unitID)
	if !ok || u.Destroyed || !u.Conscious || u.Prone {
		return
	}
	b.emit(event.PSRTriggered{UnitID: unitID, Reason: reason, Modifier: modifier})
}

// queueLegPSR queues the leg-damage check, at most once per unit per phase
// however many leg hits land.
func queueLegPSR(b *builder, unitID string) {
	u, ok := b.unitFor(unitID)
	if !ok || u.LegPSRTaken {
		return
	}
	queuePSR(b, unitID, psrReasonLegDamage, 0)
}

// resolvePSRBatch rolls the unit's pending piloting checks in queue order.
// The first failure triggers exactly one fall and clears the rest of the
// batch: remaining checks resolve as failed without dice. A destroyed gyro
// fails without a roll. Destroyed and unconscious units skip processing
// entirely.
func resolvePSRBatch(b *builder, unitID string, r dice.Roller) {
	u, ok := b.unitFor(unitID)
	if !ok || len(u.PendingPSRs) == 0 {
		return
	}
	if u.Destroyed || !u.Conscious {
		return
	}

	pending := append([]event.PSRTriggered(nil), u.PendingPSRs...)
	fallen := u.Prone
	for _, p := range pending {
		if fallen {
			b.emit(event.PSRResolved{
				UnitID:  unitID,
				Reason:  p.Reason,
				Passed:  false,
				Skipped: true,
			})
			continue
		}
		u, _ = b.unitFor(unitID)
		if u.GyroDestroyed() {
			b.emit(event.PSRResolved{
				UnitID:   unitID,
				Reason:   p.Reason,
				Passed:   false,
				AutoFail: true,
			})
			fall(b, unitID, r)
			fallen = true
			continue
		}
		target := u.Spec.Piloting + 3*u.GyroHits + p.Modifier
		roll := r.TwoD6()
		passed := roll >= target
		b.emit(event.PSRResolved{
			UnitID:       unitID,
			Reason:       p.Reason,
			TargetNumber: target,
			Roll:         roll,
			Passed:       passed,
		})
		if !passed {
			fall(b, unitID, r)
			fallen = true
		}
	}
}

// fall drops the unit prone: damage is tonnage divided by ten (rounded up)
// per level of height plus one, applied in five-point groups each rolling
// its own location; a d6 spins the facing; the pilot takes one wound.
func fall(b *builder, unitID string, r dice.Roller) {
	u, ok := b.unitFor(unitID)
	if !ok || u.Destroyed {
		return
	}

	const height = 0
	damage := ((u.Spec.Tonnage + 9) / 10) * (height + 1)
	facingRoll := r.D6()
	newFacing := u.Facing.Turn(facingRoll)

	b.emit(event.UnitFell{
		UnitID:     unitID,
		Height:     height,
		Damage:     damage,
		FacingRoll: facingRoll,
		Facing:     newFacing,
	})

	remaining := damage
	for remaining > 0 {
		group := min(5, remaining)
		locRoll := r.TwoD6()
		results := cascadeDamage(b, unitID, damageSpec{
			loc:     unit.RollLocation(locRoll),
			locRoll: locRoll,
			amount:  group,
			source:  sourceFall,
		}, r)
		for _, hr := range results {
			if hr.structureDamage > 0 {
				if cur, ok := b.unitFor(unitID); ok && !cur.Destroyed {
					resolveCriticalHits(b, unitID, hr.loc, r)
				}
			}
		}
		remaining -= group
	}

	pilotWound(b, unitID, sourceFall, 1, r)
	checkUnitDestruction(b, unitID)
}
