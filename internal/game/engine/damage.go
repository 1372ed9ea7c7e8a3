package engine

import (
	"github.com/hexmek/hexmek/internal/game/dice"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// Damage source labels recorded on damage events.
const (
	sourceWeapon = "weapon"
	sourcePunch  = "punch"
	sourceKick   = "kick"
	sourceFall   = "fall"
	sourceAmmo   = "ammo_explosion"
)

// damageSpec describes one packet of damage entering the cascade.
type damageSpec struct {
	loc     unit.Location
	locRoll int
	amount  int
	source  string
	// internal damage bypasses armor (ammo explosions).
	internal bool
	// noTransfer confines the damage to the struck location (CASE).
	noTransfer bool
}

// hitResult records what one location took during a cascade.
type hitResult struct {
	loc             unit.Location
	structureDamage int
}

// cascadeDamage walks damage through armor, structure, and inward transfer,
// emitting one damage event per location touched. Damage landing on the head
// caps at three points per hit; the excess is lost, not transferred. Damage
// with nowhere left to transfer is lost.
func cascadeDamage(b *builder, unitID string, d damageSpec, r dice.Roller) []hitResult {
	var results []hitResult
	cur := d.loc
	remaining := d.amount
	locRoll := d.locRoll

	for remaining > 0 {
		u, ok := b.unitFor(unitID)
		if !ok || u.Destroyed {
			break
		}
		if u.LocationDestroyed[cur] {
			next, ok := cur.TransferTarget()
			if !ok || d.noTransfer {
				break
			}
			cur = next
			continue
		}

		apply := remaining
		if cur == unit.LocHead && apply > unit.HeadDamageCap {
			apply = unit.HeadDamageCap
			remaining = apply
		}

		armorDmg := 0
		if !d.internal {
			armorDmg = min(apply, u.Armor[cur])
		}
		structDmg := min(apply-armorDmg, u.Structure[cur])
		overflow := apply - armorDmg - structDmg
		if d.noTransfer {
			overflow = 0
		}

		newArmor := u.Armor[cur] - armorDmg
		newStruct := u.Structure[cur] - structDmg
		destroyed := newStruct == 0

		b.emit(event.DamageApplied{
			UnitID:             unitID,
			Location:           cur,
			LocationRoll:       locRoll,
			Damage:             armorDmg + structDmg,
			ArmorDamage:        armorDmg,
			StructureDamage:    structDmg,
			ArmorRemaining:     newArmor,
			StructureRemaining: newStruct,
			LocationDestroyed:  destroyed,
			Overflow:           overflow,
			Source:             d.source,
		})
		results = append(results, hitResult{loc: cur, structureDamage: structDmg})

		if armorDmg+structDmg > 0 && cur == unit.LocHead && d.source != sourceAmmo {
			pilotWound(b, unitID, "head_hit", 1, r)
		}

		remaining = overflow
		locRoll = 0
		if remaining > 0 {
			next, ok := cur.TransferTarget()
			if !ok {
				break
			}
			cur = next
		}
	}
	return results
}

// applyHit runs the full post-hit pipeline for one packet of damage: the
// cascade, critical checks for structure-damaged locations, the through-armor
// check on a location roll of 2, the one-per-phase leg piloting check, and
// the destruction check.
func applyHit(b *builder, unitID string, d damageSpec, r dice.Roller) {
	tac := d.locRoll == 2 && d.source == sourceWeapon

	results := cascadeDamage(b, unitID, d, r)

	if tac {
		resolveCriticalHits(b, unitID, d.loc, r)
	}
	for _, hr := range results {
		if hr.structureDamage == 0 {
			continue
		}
		if u, ok := b.unitFor(unitID); !ok || u.Destroyed {
			break
		}
		if d.source != sourceAmmo {
			resolveCriticalHits(b, unitID, hr.loc, r)
		}
		if hr.loc.IsLeg() {
			queueLegPSR(b, unitID)
		}
	}
	checkUnitDestruction(b, unitID)
}

// checkUnitDestruction emits a destruction event when a kill condition
// holds: center torso or head gone, three engine hits, or a dead pilot.
func checkUnitDestruction(b *builder, unitID string) {
	u, ok := b.unitFor(unitID)
	if !ok || u.Destroyed {
		return
	}
	var reason string
	switch {
	case u.LocationDestroyed[unit.LocCenterTorso]:
		reason = "center_torso_destroyed"
	case u.LocationDestroyed[unit.LocHead]:
		if !u.PilotDead {
			killPilot(b, unitID, "head_destroyed")
		}
		reason = "head_destroyed"
	case u.EngineHits >= 3:
		reason = "engine_destroyed"
	case u.PilotDead:
		reason = "pilot_killed"
	default:
		return
	}
	b.emit(event.UnitDestroyed{UnitID: unitID, Reason: reason})
}

// checkElimination ends the game when a side has no units left.
func checkElimination(b *builder) {
	state := b.state()
	if state.Status != StatusActive {
		return
	}
	survivors := state.SurvivorsBySide()
	playerOut := survivors[unit.SidePlayer] == 0
	opponentOut := survivors[unit.SideOpponent] == 0
	if !playerOut && !opponentOut {
		return
	}
	var winner unit.Side
	switch {
	case playerOut && !opponentOut:
		winner = unit.SideOpponent
	case opponentOut && !playerOut:
		winner = unit.SidePlayer
	}
	b.emit(event.GameEnded{
		GameID: b.session.ID,
		Winner: winner,
		Reason: "elimination",
		Turn:   state.Turn,
	})
}

// consciousnessTargets indexes the 2d6 number a pilot must meet to stay
// conscious, by total wounds. Six wounds kill the pilot outright.
var consciousnessTargets = [5]int{3, 5, 7, 10, 11}

// pilotWound applies wounds, rolls the consciousness check, and emits the
// pilot-hit event. A pilot reaching six wounds dies without a roll.
func pilotWound(b *builder, unitID, reason string, wounds int, r dice.Roller) {
	u, ok := b.unitFor(unitID)
	if !ok || u.PilotDead || wounds <= 0 {
		return
	}
	total := u.PilotWounds + wounds
	if total >= 6 {
		b.emit(event.PilotHit{
			UnitID:      unitID,
			Reason:      reason,
			Wounds:      wounds,
			TotalWounds: total,
			Conscious:   false,
			Dead:        true,
		})
		return
	}
	target := consciousnessTargets[total-1]
	roll := r.TwoD6()
	conscious := u.Conscious && roll >= target
	b.emit(event.PilotHit{
		UnitID:              unitID,
		Reason:              reason,
		Wounds:              wounds,
		TotalWounds:         total,
		ConsciousnessTarget: target,
		ConsciousnessRoll:   roll,
		Conscious:           conscious,
	})
}

// killPilot records an instant pilot death (cockpit hit, head destroyed).
func killPilot(b *builder, unitID, reason string) {
	u, ok := b.unitFor(unitID)
	if !ok || u.PilotDead {
		return
	}
	b.emit(event.PilotHit{
		UnitID:      unitID,
		Reason:      reason,
		Wounds:      6 - u.PilotWounds,
		TotalWounds: 6,
		Conscious:   false,
		Dead:        true,
	})
}
