package engine

import (
	"fmt"
	"time"

	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// AdvancePhase moves the session to the next phase in the cycle. Movement
// and the two attack phases require every non-destroyed unit to have locked
// in before advancing; Initiative, Heat, and End always advance. Wrapping
// End back to Initiative increments the turn, and a wrap past the turn limit
// ends the game by adjudication instead.
func AdvancePhase(s Session, now func() time.Time) (Session, error) {
	if s.Current.Status != StatusActive {
		return s, fmt.Errorf("advance phase: status %s: %w", s.Current.Status, ErrLifecycleViolation)
	}
	current := s.Current.Phase
	if current.RequiresLocks() {
		for _, id := range s.Current.UnitIDs() {
			u := s.Current.Units[id]
			if u.Destroyed {
				continue
			}
			locked := u.AttackLocked
			if current == phase.Movement {
				locked = u.MovementLocked
			}
			if !locked {
				return s, fmt.Errorf("advance phase: unit %s not locked in %s: %w", id, current, ErrPhaseMismatch)
			}
		}
	}

	next, wraps := current.Next()
	turn := s.Current.Turn
	if wraps {
		turn++
	}

	b := s.begin(now().UTC())
	if wraps && turn > s.Current.TurnLimit {
		b.emit(event.GameEnded{
			GameID: s.ID,
			Winner: adjudicate(s.Current),
			Reason: "turn limit",
			Turn:   s.Current.Turn,
		})
		return b.done(), nil
	}
	b.emit(event.PhaseChanged{From: current, To: next, Turn: turn})
	return b.done(), nil
}

// adjudicate picks a turn-limit winner: more surviving units, then more
// remaining armor plus structure. Equal on both counts is a draw.
func adjudicate(state GameState) unit.Side {
	survivors := state.SurvivorsBySide()
	if survivors[unit.SidePlayer] != survivors[unit.SideOpponent] {
		if survivors[unit.SidePlayer] > survivors[unit.SideOpponent] {
			return unit.SidePlayer
		}
		return unit.SideOpponent
	}
	points := map[unit.Side]int{}
	for _, u := range state.Units {
		if !u.Destroyed {
			points[u.Spec.Side] += u.RemainingPoints()
		}
	}
	switch {
	case points[unit.SidePlayer] > points[unit.SideOpponent]:
		return unit.SidePlayer
	case points[unit.SideOpponent] > points[unit.SidePlayer]:
		return unit.SideOpponent
	default:
		return ""
	}
}
