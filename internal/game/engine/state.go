package engine

import (
	"sort"

	"github.com/hexmek/hexmek/internal/game/board"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// Status tracks the session lifecycle.
type Status string

const (
	StatusSetup     Status = "setup"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// MoveMode is a movement class declared for a unit in a turn.
type MoveMode string

const (
	MoveStationary MoveMode = "stationary"
	MoveWalk       MoveMode = "walk"
	MoveRun        MoveMode = "run"
	MoveJump       MoveMode = "jump"
)

// IsValid reports whether the mode is a known movement class.
func (m MoveMode) IsValid() bool {
	switch m {
	case MoveStationary, MoveWalk, MoveRun, MoveJump:
		return true
	}
	return false
}

// GameState is the state derived from a session's event list. It is
// disposable: any GameState can be rebuilt by folding the events from the
// start.
type GameState struct {
	GameID    string
	Status    Status
	Map       board.Map
	TurnLimit int
	Seed      int64

	Turn  int
	Phase phase.Phase

	// InitiativeWinner and MovesFirst hold the current turn's initiative
	// outcome; both are empty until the turn's roll.
	InitiativeWinner unit.Side
	MovesFirst       unit.Side

	Units map[string]*UnitState

	// PendingAttacks holds this phase's declarations awaiting resolution,
	// in declaration order.
	PendingAttacks []event.AttackDeclared
	// AttacksResolved blocks a second resolution pass in the same phase.
	AttacksResolved bool
	// HeatResolved blocks a second heat pass in the same phase.
	HeatResolved bool

	// Winner and EndReason are set once Status is completed. Winner is
	// empty on a draw.
	Winner    unit.Side
	EndReason string
}

// UnitState is the per-unit slice of derived state.
type UnitState struct {
	Spec unit.Spec

	Position board.Coord
	Facing   board.Facing

	// Per-turn movement record.
	Mode       MoveMode
	HexesMoved int
	MoveHeat   int
	WeaponHeat int

	Heat int

	Armor             [unit.NumLocations]int
	Structure         [unit.NumLocations]int
	LocationDestroyed [unit.NumLocations]bool
	// SlotDestroyed parallels Spec.Slots.
	SlotDestroyed [unit.NumLocations][]bool

	EngineHits      int
	GyroHits        int
	SensorHits      int
	LifeSupportHits int
	HeatSinkHits    int
	JumpJetHits     int

	Prone     bool
	ShutDown  bool
	Destroyed bool

	PilotWounds int
	Conscious   bool
	PilotDead   bool

	// Per-phase lock state.
	MovementLocked bool
	AttackLocked   bool

	// TargetsThisTurn lists distinct targets fired on this turn, in first-
	// declaration order. The first entry is the primary target.
	TargetsThisTurn []string

	// PendingPSRs queues piloting checks awaiting resolution. Checks queued
	// in one phase may resolve in a later one; the queue clears at turn wrap.
	PendingPSRs []event.PSRTriggered
	// LegPSRTaken caps leg-damage piloting checks at one per phase.
	LegPSRTaken bool

	// Ammo maps bin id to rounds remaining.
	Ammo map[string]int
}

// newUnitState builds the starting state for a unit entering the game.
func newUnitState(spec unit.Spec) *UnitState {
	hasSlots := false
	for _, loc := range spec.Slots {
		if len(loc) > 0 {
			hasSlots = true
			break
		}
	}
	if !hasSlots {
		spec.PopulateSlots()
	}

	u := &UnitState{
		Spec:      spec,
		Position:  spec.Position,
		Facing:    spec.Facing.Normalize(),
		Mode:      MoveStationary,
		Armor:     spec.Armor,
		Structure: spec.Structure(),
		Conscious: true,
		Ammo:      make(map[string]int, len(spec.Ammo)),
	}
	for i := range u.SlotDestroyed {
		u.SlotDestroyed[i] = make([]bool, len(spec.Slots[i]))
	}
	for _, bin := range spec.Ammo {
		u.Ammo[bin.ID] = bin.Rounds
	}
	return u
}

// Clone deep-copies the unit state.
func (u *UnitState) Clone() *UnitState {
	c := *u
	for i := range u.SlotDestroyed {
		c.SlotDestroyed[i] = append([]bool(nil), u.SlotDestroyed[i]...)
	}
	c.TargetsThisTurn = append([]string(nil), u.TargetsThisTurn...)
	c.PendingPSRs = append([]event.PSRTriggered(nil), u.PendingPSRs...)
	c.Ammo = make(map[string]int, len(u.Ammo))
	for k, v := range u.Ammo {
		c.Ammo[k] = v
	}
	return &c
}

// Clone deep-copies the game state.
func (g GameState) Clone() GameState {
	c := g
	c.Units = make(map[string]*UnitState, len(g.Units))
	for id, u := range g.Units {
		c.Units[id] = u.Clone()
	}
	c.PendingAttacks = append([]event.AttackDeclared(nil), g.PendingAttacks...)
	return c
}

// UnitIDs returns all unit ids in sorted order, for deterministic iteration.
func (g GameState) UnitIDs() []string {
	ids := make([]string, 0, len(g.Units))
	for id := range g.Units {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SurvivorsBySide counts non-destroyed units per side.
func (g GameState) SurvivorsBySide() map[unit.Side]int {
	counts := make(map[unit.Side]int, 2)
	for _, u := range g.Units {
		if !u.Destroyed {
			counts[u.Spec.Side]++
		}
	}
	return counts
}

// ComponentDestroyed reports whether any slot holding the component in the
// location is destroyed, or the whole location is gone.
func (u *UnitState) ComponentDestroyed(loc unit.Location, c unit.Component) bool {
	if u.LocationDestroyed[loc] {
		return true
	}
	for i, slot := range u.Spec.Slots[loc] {
		if slot.Component == c && u.SlotDestroyed[loc][i] {
			return true
		}
	}
	return false
}

// MountUsable reports whether the weapon mount can fire: the mount exists,
// its slot is intact, and its location still stands.
func (u *UnitState) MountUsable(mountID string) bool {
	m, ok := u.Spec.MountByID(mountID)
	if !ok {
		return false
	}
	if u.LocationDestroyed[m.Location] {
		return false
	}
	for i, slot := range u.Spec.Slots[m.Location] {
		if slot.Component == unit.ComponentWeapon && slot.Name == mountID {
			return !u.SlotDestroyed[m.Location][i]
		}
	}
	// Mount without a slot entry is usable until its location goes.
	return true
}

// AmmoBinForWeapon returns the id of the first bin feeding the weapon type
// that still holds rounds and sits in a surviving location.
func (u *UnitState) AmmoBinForWeapon(weapon string) (string, bool) {
	for _, bin := range u.Spec.Ammo {
		if bin.Weapon != weapon {
			continue
		}
		if u.LocationDestroyed[bin.Location] {
			continue
		}
		if u.Ammo[bin.ID] > 0 {
			return bin.ID, true
		}
	}
	return "", false
}

// WorkingHeatSinks returns dissipation capacity after critical damage.
func (u *UnitState) WorkingHeatSinks() int {
	n := u.Spec.HeatSinks - u.HeatSinkHits
	if n < 0 {
		return 0
	}
	return n
}

// RunMP is walking speed times 1.5, rounded up.
func (u *UnitState) RunMP() int {
	return (u.Spec.WalkMP*3 + 1) / 2
}

// JumpMP is jump capacity after jump-jet critical damage.
func (u *UnitState) JumpMP() int {
	n := u.Spec.JumpMP - u.JumpJetHits
	if n < 0 {
		return 0
	}
	return n
}

// GyroDestroyed reports two or more gyro hits; piloting checks auto-fail.
func (u *UnitState) GyroDestroyed() bool { return u.GyroHits >= 2 }

// LifeSupportDestroyed reports two or more life-support hits; the pilot is
// exposed to heat above 14.
func (u *UnitState) LifeSupportDestroyed() bool { return u.LifeSupportHits >= 2 }

// CanAct reports whether the unit may declare actions.
func (u *UnitState) CanAct() bool {
	return !u.Destroyed && !u.ShutDown && u.Conscious && !u.PilotDead
}

// RemainingPoints sums armor and structure across surviving locations, the
// tie-break metric for turn-limit adjudication.
func (u *UnitState) RemainingPoints() int {
	total := 0
	for loc := unit.Location(0); loc < unit.NumLocations; loc++ {
		if u.LocationDestroyed[loc] {
			continue
		}
		total += u.Armor[loc] + u.Structure[loc]
	}
	return total
}
