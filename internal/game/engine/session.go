// Package engine implements the event-sourced game session: the six-phase
// turn loop, declaration and resolution operations, and the pure fold that
// derives state from the event list.
//
// Every public operation is a pure function from (session, input, randomness)
// to a new session. The input session is never mutated; rejected operations
// return it unchanged alongside the error. All randomness flows through an
// injected dice.Roller so a seed plus a declaration sequence reproduces an
// identical event log.
package engine

import (
	"fmt"
	"time"

	"github.com/hexmek/hexmek/internal/game/board"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// Session is an event-sourced game. Events are the only source of truth;
// Current is a snapshot that always equals DeriveState(Events).
type Session struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	Events  []event.Event
	Current GameState
}

// Config is the static setup for a new session.
type Config struct {
	Name      string
	Map       board.Map
	TurnLimit int
	Seed      int64
	Units     []unit.Spec
}

// NewSession creates a session with a single game-created event holding the
// full setup. The session starts in setup status; call StartGame to begin
// turn one.
func NewSession(cfg Config, now func() time.Time, newID func() string) (Session, error) {
	if cfg.Map.Width <= 0 || cfg.Map.Height <= 0 {
		return Session{}, fmt.Errorf("create session: map %dx%d: %w", cfg.Map.Width, cfg.Map.Height, ErrInvalidInput)
	}
	if cfg.TurnLimit <= 0 {
		return Session{}, fmt.Errorf("create session: turn limit %d: %w", cfg.TurnLimit, ErrInvalidInput)
	}
	if len(cfg.Units) == 0 {
		return Session{}, fmt.Errorf("create session: no units: %w", ErrInvalidInput)
	}
	seen := make(map[string]bool, len(cfg.Units))
	sides := make(map[unit.Side]bool, 2)
	for _, spec := range cfg.Units {
		if err := spec.Validate(); err != nil {
			return Session{}, fmt.Errorf("create session: %w: %w", err, ErrInvalidInput)
		}
		if seen[spec.ID] {
			return Session{}, fmt.Errorf("create session: duplicate unit id %q: %w", spec.ID, ErrInvalidInput)
		}
		seen[spec.ID] = true
		sides[spec.Side] = true
		if !cfg.Map.InBounds(spec.Position) {
			return Session{}, fmt.Errorf("create session: unit %s at %v off map: %w", spec.ID, spec.Position, ErrInvalidInput)
		}
	}
	if len(sides) < 2 {
		return Session{}, fmt.Errorf("create session: both sides need units: %w", ErrInvalidInput)
	}

	id := newID()
	at := now().UTC()
	s := Session{
		ID:        id,
		CreatedAt: at,
		UpdatedAt: at,
		Current:   emptyState(),
	}
	b := s.begin(at)
	b.emit(event.GameCreated{
		GameID:    id,
		Name:      cfg.Name,
		Map:       cfg.Map,
		TurnLimit: cfg.TurnLimit,
		Seed:      cfg.Seed,
		Units:     cfg.Units,
	})
	return b.done(), nil
}

// StartGame transitions a setup session to active play at turn one,
// initiative phase.
func StartGame(s Session, now func() time.Time) (Session, error) {
	if s.Current.Status != StatusSetup {
		return s, fmt.Errorf("start game: status %s: %w", s.Current.Status, ErrLifecycleViolation)
	}
	b := s.begin(now().UTC())
	b.emit(event.GameStarted{GameID: s.ID})
	return b.done(), nil
}

// EndGame completes an active session by concession or external adjudication.
// Winner may be empty for a draw.
func EndGame(s Session, winner unit.Side, reason string, now func() time.Time) (Session, error) {
	if s.Current.Status != StatusActive {
		return s, fmt.Errorf("end game: status %s: %w", s.Current.Status, ErrLifecycleViolation)
	}
	if winner != "" && !winner.IsValid() {
		return s, fmt.Errorf("end game: winner %q: %w", winner, ErrInvalidInput)
	}
	if reason == "" {
		reason = "concession"
	}
	b := s.begin(now().UTC())
	b.emit(event.GameEnded{GameID: s.ID, Winner: winner, Reason: reason, Turn: s.Current.Turn})
	return b.done(), nil
}

// emptyState is the fold seed: a setup-status state with no units.
func emptyState() GameState {
	return GameState{
		Status: StatusSetup,
		Phase:  phase.Initiative,
		Units:  make(map[string]*UnitState),
	}
}

// builder accumulates events for one operation against a private copy of the
// session. The original session is untouched until done() returns the copy,
// so failed validations leave no trace and successful cascades land whole.
type builder struct {
	session Session
	at      time.Time
}

// begin copies the session for mutation. The event slice is copied so the
// original's backing array is never shared with the new session.
func (s Session) begin(at time.Time) *builder {
	events := make([]event.Event, len(s.Events), len(s.Events)+8)
	copy(events, s.Events)
	return &builder{
		session: Session{
			ID:        s.ID,
			CreatedAt: s.CreatedAt,
			UpdatedAt: at,
			Events:    events,
			Current:   s.Current.Clone(),
		},
		at: at,
	}
}

// emit appends one event and folds it into the working state. The event is
// tagged with the turn and phase in effect before it applies.
func (b *builder) emit(p event.Payload) event.Event {
	e := event.New(b.session.Current.Turn, b.session.Current.Phase, b.at, p)
	e.Seq = uint64(len(b.session.Events)) + 1
	applyEvent(&b.session.Current, e)
	b.session.Events = append(b.session.Events, e)
	return e
}

// state exposes the working snapshot mid-cascade.
func (b *builder) state() *GameState { return &b.session.Current }

func (b *builder) done() Session { return b.session }

// unitFor resolves a unit in the working state.
func (b *builder) unitFor(id string) (*UnitState, bool) {
	u, ok := b.session.Current.Units[id]
	return u, ok
}
