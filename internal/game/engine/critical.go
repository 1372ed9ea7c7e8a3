package engine

import (
	"github.com/hexmek/hexmek/internal/game/dice"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// resolveCriticalHits runs one critical determination roll against a
// location: 2-7 nothing, 8-9 one hit, 10-11 two hits, 12 location-dependent
// severity (limb blown off, head destroyed with the pilot, or three hits to
// a torso).
func resolveCriticalHits(b *builder, unitID string, loc unit.Location, r dice.Roller) {
	u, ok := b.unitFor(unitID)
	if !ok || u.Destroyed || u.LocationDestroyed[loc] {
		return
	}

	roll := r.TwoD6()
	var count int
	switch {
	case roll <= 7:
		return
	case roll <= 9:
		count = 1
	case roll <= 11:
		count = 2
	default:
		if loc.IsLimb() || loc == unit.LocHead {
			blowOffLocation(b, unitID, loc, roll)
			return
		}
		count = 3
	}
	for i := 0; i < count; i++ {
		applyOneCriticalHit(b, unitID, loc, roll, r)
	}
}

// blowOffLocation severs a limb or destroys the head on a determination
// roll of 12. Losing the head kills the pilot; losing a leg drops the unit.
func blowOffLocation(b *builder, unitID string, loc unit.Location, checkRoll int) {
	b.emit(event.CriticalHitResolved{
		UnitID:           unitID,
		Location:         loc,
		CheckRoll:        checkRoll,
		SlotIndex:        -1,
		LocationBlownOff: true,
	})
	if loc == unit.LocHead {
		killPilot(b, unitID, "head_destroyed")
	}
	if loc.IsLeg() {
		queueLegPSR(b, unitID)
	}
}

// applyOneCriticalHit picks one occupied intact slot uniformly at random and
// destroys it. A location with no intact occupied slots absorbs the hit
// silently.
func applyOneCriticalHit(b *builder, unitID string, loc unit.Location, checkRoll int, r dice.Roller) {
	u, ok := b.unitFor(unitID)
	if !ok || u.Destroyed || u.LocationDestroyed[loc] {
		return
	}

	var manifest []int
	for i, slot := range u.Spec.Slots[loc] {
		if slot.Occupied() && !u.SlotDestroyed[loc][i] {
			manifest = append(manifest, i)
		}
	}
	if len(manifest) == 0 {
		return
	}

	idx := manifest[r.Pick(len(manifest))]
	slot := u.Spec.Slots[loc][idx]
	b.emit(event.CriticalHitResolved{
		UnitID:    unitID,
		Location:  loc,
		CheckRoll: checkRoll,
		SlotIndex: idx,
		Component: slot.Component,
		Name:      slot.Name,
	})

	switch slot.Component {
	case unit.ComponentCockpit:
		killPilot(b, unitID, "cockpit_hit")
	case unit.ComponentGyro:
		queuePSR(b, unitID, psrReasonGyroHit, 0)
	case unit.ComponentAmmo:
		explodeAmmoBin(b, unitID, slot.Name, r)
	}
}

// explodeAmmoBin detonates a bin struck by a critical hit: damage equals
// rounds remaining times damage per round. CASE confines the blast to the
// bin's location; CASE II caps what escapes at a single point; bare bins
// transfer the full overflow inward and wound the pilot.
func explodeAmmoBin(b *builder, unitID, binID string, r dice.Roller) {
	u, ok := b.unitFor(unitID)
	if !ok || u.Destroyed {
		return
	}
	var bin unit.AmmoBin
	found := false
	for _, candidate := range u.Spec.Ammo {
		if candidate.ID == binID {
			bin = candidate
			found = true
			break
		}
	}
	if !found {
		return
	}
	rounds := u.Ammo[binID]
	if rounds == 0 {
		return
	}
	w, err := unit.LookupWeapon(bin.Weapon)
	if err != nil {
		return
	}
	damage := rounds * w.Damage
	hasCASEII := u.Spec.CASEII[bin.Location]
	hasCASE := u.Spec.CASE[bin.Location]

	b.emit(event.AmmoExploded{
		UnitID:    unitID,
		BinID:     binID,
		Weapon:    bin.Weapon,
		Location:  bin.Location,
		Damage:    damage,
		Contained: hasCASEII,
		Vented:    hasCASE && !hasCASEII,
	})

	switch {
	case hasCASEII:
		// Blast vents; a single point of structure damage leaks through.
		cascadeDamage(b, unitID, damageSpec{
			loc: bin.Location, amount: 1, source: sourceAmmo,
			internal: true, noTransfer: true,
		}, r)
	case hasCASE:
		cascadeDamage(b, unitID, damageSpec{
			loc: bin.Location, amount: damage, source: sourceAmmo,
			internal: true, noTransfer: true,
		}, r)
	default:
		cascadeDamage(b, unitID, damageSpec{
			loc: bin.Location, amount: damage, source: sourceAmmo,
			internal: true,
		}, r)
		pilotWound(b, unitID, sourceAmmo, 1, r)
	}
	checkUnitDestruction(b, unitID)
}
