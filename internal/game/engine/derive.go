package engine

import (
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// DeriveState folds the event list into a game state. The fold is pure and
// idempotent: identical prefixes always produce identical states. Events of
// unrecognized type contribute nothing.
func DeriveState(events []event.Event) GameState {
	state := emptyState()
	for _, e := range events {
		applyEvent(&state, e)
	}
	return state
}

// EventsToSequence returns the prefix of events with Seq <= seq.
func EventsToSequence(events []event.Event, seq uint64) []event.Event {
	for i, e := range events {
		if e.Seq > seq {
			return events[:i]
		}
	}
	return events
}

// EventsToTurn returns the prefix of events up to and including the turn.
func EventsToTurn(events []event.Event, turn int) []event.Event {
	for i, e := range events {
		if e.Turn > turn {
			return events[:i]
		}
	}
	return events
}

// ReplayToSequence folds only events with Seq <= seq.
func ReplayToSequence(events []event.Event, seq uint64) GameState {
	return DeriveState(EventsToSequence(events, seq))
}

// ReplayToTurn folds events up to and including the given turn.
func ReplayToTurn(events []event.Event, turn int) GameState {
	return DeriveState(EventsToTurn(events, turn))
}

// applyEvent folds one event into the state. This is the single place state
// transitions happen: operations emit events and apply them through here, so
// the snapshot can never drift from what replay produces.
func applyEvent(s *GameState, e event.Event) {
	switch p := e.Payload.(type) {
	case event.GameCreated:
		applyGameCreated(s, p)
	case event.GameStarted:
		s.Status = StatusActive
		s.Turn = 1
		s.Phase = phase.Initiative
	case event.GameEnded:
		s.Status = StatusCompleted
		s.Winner = p.Winner
		s.EndReason = p.Reason
	case event.PhaseChanged:
		applyPhaseChanged(s, p)
	case event.InitiativeRolled:
		s.InitiativeWinner = p.Winner
		s.MovesFirst = p.MovesFirst
	case event.MovementDeclared:
		if u, ok := s.Units[p.UnitID]; ok {
			u.Position = p.To
			u.Facing = p.Facing.Normalize()
			u.Mode = MoveMode(p.Mode)
			u.HexesMoved = p.HexesMoved
			u.MoveHeat = p.Heat
			if u.Prone && u.Mode != MoveStationary {
				u.Prone = false
			}
		}
	case event.MovementLocked:
		if u, ok := s.Units[p.UnitID]; ok {
			u.MovementLocked = true
		}
	case event.AttackDeclared:
		s.PendingAttacks = append(s.PendingAttacks, p)
		if u, ok := s.Units[p.AttackerID]; ok {
			found := false
			for _, t := range u.TargetsThisTurn {
				if t == p.TargetID {
					found = true
					break
				}
			}
			if !found {
				u.TargetsThisTurn = append(u.TargetsThisTurn, p.TargetID)
			}
		}
	case event.AttackLocked:
		if u, ok := s.Units[p.UnitID]; ok {
			u.AttackLocked = true
		}
	case event.AttackResolved:
		// First resolution event of the phase retires the declarations.
		if !s.AttacksResolved {
			s.AttacksResolved = true
			s.PendingAttacks = nil
		}
		if u, ok := s.Units[p.AttackerID]; ok {
			u.WeaponHeat += p.Heat
		}
	case event.DamageApplied:
		if u, ok := s.Units[p.UnitID]; ok {
			u.Armor[p.Location] = p.ArmorRemaining
			u.Structure[p.Location] = p.StructureRemaining
			if p.LocationDestroyed {
				u.LocationDestroyed[p.Location] = true
			}
		}
	case event.CriticalHitResolved:
		applyCriticalHit(s, p)
	case event.AmmoConsumed:
		if u, ok := s.Units[p.UnitID]; ok {
			u.Ammo[p.BinID] = p.RoundsRemaining
		}
	case event.AmmoExploded:
		if u, ok := s.Units[p.UnitID]; ok {
			u.Ammo[p.BinID] = 0
		}
	case event.PSRTriggered:
		if u, ok := s.Units[p.UnitID]; ok {
			u.PendingPSRs = append(u.PendingPSRs, p)
			if p.Reason == psrReasonLegDamage {
				u.LegPSRTaken = true
			}
		}
	case event.PSRResolved:
		if u, ok := s.Units[p.UnitID]; ok {
			u.popPendingPSR(p.Reason)
		}
	case event.UnitFell:
		if u, ok := s.Units[p.UnitID]; ok {
			u.Prone = true
			u.Facing = p.Facing.Normalize()
		}
	case event.UnitDestroyed:
		if u, ok := s.Units[p.UnitID]; ok {
			u.Destroyed = true
			u.PendingPSRs = nil
		}
	case event.PilotHit:
		if u, ok := s.Units[p.UnitID]; ok {
			u.PilotWounds = p.TotalWounds
			u.Conscious = p.Conscious
			if p.Dead {
				u.PilotDead = true
				u.Conscious = false
			}
		}
	case event.HeatGenerated:
		s.HeatResolved = true
		if u, ok := s.Units[p.UnitID]; ok {
			u.Heat = p.HeatAfter
		}
	case event.HeatDissipated:
		if u, ok := s.Units[p.UnitID]; ok {
			u.Heat = p.HeatAfter
		}
	case event.ShutdownChecked:
		if u, ok := s.Units[p.UnitID]; ok {
			u.ShutDown = p.ShutDown
		}
	default:
		// Unknown event types are preserved in the log but change nothing.
	}
}

func applyGameCreated(s *GameState, p event.GameCreated) {
	s.GameID = p.GameID
	s.Map = p.Map
	s.TurnLimit = p.TurnLimit
	s.Seed = p.Seed
	s.Status = StatusSetup
	s.Turn = 0
	s.Phase = phase.Initiative
	s.Units = make(map[string]*UnitState, len(p.Units))
	for _, spec := range p.Units {
		s.Units[spec.ID] = newUnitState(spec)
	}
}

func applyPhaseChanged(s *GameState, p event.PhaseChanged) {
	s.Phase = p.To
	s.Turn = p.Turn
	s.PendingAttacks = nil
	s.AttacksResolved = false
	s.HeatResolved = false
	for _, u := range s.Units {
		u.LegPSRTaken = false
	}

	switch p.To {
	case phase.Initiative:
		// Turn wrap: reset per-turn tracking on every unit.
		s.InitiativeWinner = ""
		s.MovesFirst = ""
		for _, u := range s.Units {
			u.Mode = MoveStationary
			u.HexesMoved = 0
			u.MoveHeat = 0
			u.WeaponHeat = 0
			u.MovementLocked = false
			u.AttackLocked = false
			u.TargetsThisTurn = nil
			u.PendingPSRs = nil
		}
	case phase.WeaponAttack, phase.PhysicalAttack:
		// Each attack phase takes its own locks.
		for _, u := range s.Units {
			u.AttackLocked = false
		}
	}
}

func applyCriticalHit(s *GameState, p event.CriticalHitResolved) {
	u, ok := s.Units[p.UnitID]
	if !ok {
		return
	}
	if p.LocationBlownOff {
		u.LocationDestroyed[p.Location] = true
		u.Armor[p.Location] = 0
		u.Structure[p.Location] = 0
		for i := range u.SlotDestroyed[p.Location] {
			if u.SlotDestroyed[p.Location][i] {
				continue
			}
			u.SlotDestroyed[p.Location][i] = true
			countComponentHit(u, u.Spec.Slots[p.Location][i].Component)
		}
		return
	}
	if p.SlotIndex < 0 || p.SlotIndex >= len(u.SlotDestroyed[p.Location]) {
		return
	}
	if u.SlotDestroyed[p.Location][p.SlotIndex] {
		return
	}
	u.SlotDestroyed[p.Location][p.SlotIndex] = true
	countComponentHit(u, p.Component)
}

// countComponentHit bumps the damage counter a destroyed slot feeds.
func countComponentHit(u *UnitState, c unit.Component) {
	switch c {
	case unit.ComponentEngine:
		u.EngineHits++
	case unit.ComponentGyro:
		u.GyroHits++
	case unit.ComponentSensors:
		u.SensorHits++
	case unit.ComponentLifeSupport:
		u.LifeSupportHits++
	case unit.ComponentHeatSink:
		u.HeatSinkHits++
	case unit.ComponentJumpJet:
		u.JumpJetHits++
	}
}

// popPendingPSR removes the first queued check with the reason.
func (u *UnitState) popPendingPSR(reason string) {
	for i, p := range u.PendingPSRs {
		if p.Reason == reason {
			u.PendingPSRs = append(u.PendingPSRs[:i:i], u.PendingPSRs[i+1:]...)
			return
		}
	}
}
