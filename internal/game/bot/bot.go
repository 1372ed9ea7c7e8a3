// Package bot provides decision providers that drive units through a game.
//
// A Provider is the seam where an external decision-maker plugs in: the
// batch simulator uses the seeded random provider, and anything smarter
// implements the same interface against derived state.
package bot

import (
	"math/rand"

	"github.com/hexmek/hexmek/internal/game/board"
	"github.com/hexmek/hexmek/internal/game/engine"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// Provider decides one unit's declarations from derived state. Providers
// never mutate the state they are handed; the engine validates every input,
// so a provider returning an illegal declaration costs an error, not a
// corrupted game.
type Provider interface {
	// Movement returns the unit's movement declaration for the turn.
	Movement(state *engine.GameState, unitID string) engine.MovementInput
	// Attacks returns the unit's weapon declarations, possibly empty.
	Attacks(state *engine.GameState, unitID string) []engine.AttackInput
	// Physicals returns the unit's physical declarations, possibly empty.
	Physicals(state *engine.GameState, unitID string) []engine.PhysicalInput
}

// Random is a seeded baseline provider: it closes toward the nearest enemy,
// fires every weapon that can reach it, and kicks or punches anything
// adjacent. Identical seeds make identical choices.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random provider from a seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Movement walks toward the nearest enemy, stopping inside short laser range
// when possible. Units that cannot act hold position.
func (p *Random) Movement(state *engine.GameState, unitID string) engine.MovementInput {
	u := state.Units[unitID]
	hold := engine.MovementInput{
		UnitID: unitID,
		Mode:   engine.MoveStationary,
		To:     u.Position,
		Facing: u.Facing,
	}
	if !u.CanAct() {
		return hold
	}
	enemy := nearestEnemy(state, u)
	if enemy == nil {
		return hold
	}

	const standoff = 3
	best := u.Position
	bestDist := board.Distance(u.Position, enemy.Position)
	for col := 1; col <= state.Map.Width; col++ {
		for row := 1; row <= state.Map.Height; row++ {
			to := board.Coord{Col: col, Row: row}
			if board.Distance(u.Position, to) > u.Spec.WalkMP {
				continue
			}
			if occupied(state, unitID, to) {
				continue
			}
			d := board.Distance(to, enemy.Position)
			if d < standoff {
				continue
			}
			if d < bestDist || (d == bestDist && p.rng.Intn(2) == 0 && to != best) {
				best, bestDist = to, d
			}
		}
	}
	if best == u.Position {
		hold.Facing = board.FacingToward(u.Position, enemy.Position)
		return hold
	}
	return engine.MovementInput{
		UnitID: unitID,
		Mode:   engine.MoveWalk,
		To:     best,
		Facing: board.FacingToward(best, enemy.Position),
	}
}

// Attacks fires every usable, loaded weapon that can reach the nearest enemy.
func (p *Random) Attacks(state *engine.GameState, unitID string) []engine.AttackInput {
	u := state.Units[unitID]
	if !u.CanAct() {
		return nil
	}
	enemy := nearestEnemy(state, u)
	if enemy == nil {
		return nil
	}
	distance := board.Distance(u.Position, enemy.Position)

	var mounts []string
	for _, m := range u.Spec.Mounts {
		if !u.MountUsable(m.ID) {
			continue
		}
		w, err := unit.LookupWeapon(m.Weapon)
		if err != nil || distance > w.LongRange {
			continue
		}
		if w.UsesAmmo() {
			if _, ok := u.AmmoBinForWeapon(w.Name); !ok {
				continue
			}
		}
		mounts = append(mounts, m.ID)
	}
	if len(mounts) == 0 {
		return nil
	}
	return []engine.AttackInput{{
		AttackerID: unitID,
		TargetID:   enemy.Spec.ID,
		MountIDs:   mounts,
	}}
}

// Physicals kicks an adjacent front-arc enemy when the hips allow it,
// otherwise punches with any working arm.
func (p *Random) Physicals(state *engine.GameState, unitID string) []engine.PhysicalInput {
	u := state.Units[unitID]
	if !u.CanAct() || u.Prone {
		return nil
	}
	enemy := nearestEnemy(state, u)
	if enemy == nil || board.Distance(u.Position, enemy.Position) != 1 {
		return nil
	}

	hipsIntact := !u.ComponentDestroyed(unit.LocLeftLeg, unit.ComponentHip) &&
		!u.ComponentDestroyed(unit.LocRightLeg, unit.ComponentHip)
	inFront := board.DetermineArc(u.Position, u.Facing, enemy.Position) == board.ArcFront
	if hipsIntact && inFront {
		leg := unit.LocRightLeg
		if p.rng.Intn(2) == 1 {
			leg = unit.LocLeftLeg
		}
		if u.LocationDestroyed[leg] {
			leg = otherLeg(leg)
		}
		if !u.LocationDestroyed[leg] {
			return []engine.PhysicalInput{{
				AttackerID: unitID,
				TargetID:   enemy.Spec.ID,
				Kind:       event.ShotKick,
				Limb:       leg,
			}}
		}
	}

	for _, arm := range []unit.Location{unit.LocRightArm, unit.LocLeftArm} {
		if u.LocationDestroyed[arm] || u.ComponentDestroyed(arm, unit.ComponentShoulder) {
			continue
		}
		return []engine.PhysicalInput{{
			AttackerID: unitID,
			TargetID:   enemy.Spec.ID,
			Kind:       event.ShotPunch,
			Limb:       arm,
		}}
	}
	return nil
}

func otherLeg(leg unit.Location) unit.Location {
	if leg == unit.LocRightLeg {
		return unit.LocLeftLeg
	}
	return unit.LocRightLeg
}

// nearestEnemy returns the closest surviving opposing unit, ties broken by
// unit id so choices stay deterministic across map iteration orders.
func nearestEnemy(state *engine.GameState, u *engine.UnitState) *engine.UnitState {
	var best *engine.UnitState
	bestDist := 0
	for _, id := range state.UnitIDs() {
		candidate := state.Units[id]
		if candidate.Spec.Side == u.Spec.Side || candidate.Destroyed {
			continue
		}
		d := board.Distance(u.Position, candidate.Position)
		if best == nil || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

func occupied(state *engine.GameState, selfID string, at board.Coord) bool {
	for _, other := range state.Units {
		if other.Spec.ID != selfID && !other.Destroyed && other.Position == at {
			return true
		}
	}
	return false
}
