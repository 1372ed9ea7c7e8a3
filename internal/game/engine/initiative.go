package engine

import (
	"fmt"
	"time"

	"github.com/hexmek/hexmek/internal/game/dice"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// RollInitiative resolves the turn's initiative contest. Both sides roll 2d6;
// the higher total wins and ties go to the player side. The loser moves first
// unless firstMover overrides the order. Player dice are rolled before
// opponent dice.
func RollInitiative(s Session, firstMover unit.Side, now func() time.Time, r dice.Roller) (Session, error) {
	if s.Current.Status != StatusActive {
		return s, fmt.Errorf("roll initiative: status %s: %w", s.Current.Status, ErrLifecycleViolation)
	}
	if s.Current.Phase != phase.Initiative {
		return s, fmt.Errorf("roll initiative: phase %s: %w", s.Current.Phase, ErrPhaseMismatch)
	}
	if s.Current.InitiativeWinner != "" {
		return s, fmt.Errorf("roll initiative: turn %d: %w", s.Current.Turn, ErrAlreadyResolved)
	}
	if firstMover != "" && !firstMover.IsValid() {
		return s, fmt.Errorf("roll initiative: first mover %q: %w", firstMover, ErrInvalidInput)
	}

	playerRoll := r.TwoD6()
	opponentRoll := r.TwoD6()
	winner := unit.SidePlayer
	if opponentRoll > playerRoll {
		winner = unit.SideOpponent
	}

	movesFirst := winner.Opponent()
	override := false
	if firstMover != "" && firstMover != movesFirst {
		movesFirst = firstMover
		override = true
	}

	b := s.begin(now().UTC())
	b.emit(event.InitiativeRolled{
		Turn:         s.Current.Turn,
		PlayerRoll:   playerRoll,
		OpponentRoll: opponentRoll,
		Winner:       winner,
		MovesFirst:   movesFirst,
		Override:     override,
	})
	return b.done(), nil
}
