// Package event defines the typed event journal for game sessions.
//
// Events are immutable facts. The event list is the only source of truth for
// a session; derived state is disposable and rebuilt by folding the list from
// the start. Unknown event types are preserved in the log for audit but
// contribute no state change.
package event

import (
	"strings"
	"time"

	"github.com/hexmek/hexmek/internal/game/phase"
)

// Type identifies the kind of a game event.
type Type string

// Lifecycle events.
const (
	// TypeGameCreated records the creation of a session with its full setup.
	TypeGameCreated Type = "game.created"
	// TypeGameStarted records the transition from setup to active play.
	TypeGameStarted Type = "game.started"
	// TypeGameEnded records the terminal result of a session.
	TypeGameEnded Type = "game.ended"
	// TypePhaseChanged records a phase transition.
	TypePhaseChanged Type = "phase.changed"
)

// Turn-sequence events.
const (
	// TypeInitiativeRolled records the initiative contest for a turn.
	TypeInitiativeRolled Type = "initiative.rolled"
	// TypeMovementDeclared records a unit's movement for a turn.
	TypeMovementDeclared Type = "movement.declared"
	// TypeMovementLocked records that a unit's movement is final.
	TypeMovementLocked Type = "movement.locked"
)

// Attack events.
const (
	// TypeAttackDeclared records a declared attack with its fixed to-hit numbers.
	TypeAttackDeclared Type = "attack.declared"
	// TypeAttackLocked records that a unit's attack declarations are final.
	TypeAttackLocked Type = "attack.locked"
	// TypeAttackResolved records the to-hit roll outcome for one shot.
	TypeAttackResolved Type = "attack.resolved"
	// TypeDamageApplied records damage landing on one location.
	TypeDamageApplied Type = "damage.applied"
	// TypeCriticalHitResolved records a critical hit against a slot.
	TypeCriticalHitResolved Type = "critical.resolved"
	// TypeAmmoConsumed records ammunition spent by a shot.
	TypeAmmoConsumed Type = "ammo.consumed"
	// TypeAmmoExploded records an ammunition bin detonation.
	TypeAmmoExploded Type = "ammo.exploded"
)

// Stability and pilot events.
const (
	// TypePSRTriggered records a queued piloting skill roll.
	TypePSRTriggered Type = "psr.triggered"
	// TypePSRResolved records the outcome of a piloting skill roll.
	TypePSRResolved Type = "psr.resolved"
	// TypeUnitFell records a fall with its damage and facing change.
	TypeUnitFell Type = "unit.fell"
	// TypeUnitDestroyed records a unit leaving play.
	TypeUnitDestroyed Type = "unit.destroyed"
	// TypePilotHit records pilot wounds and the consciousness outcome.
	TypePilotHit Type = "pilot.hit"
)

// Heat events.
const (
	// TypeHeatGenerated records heat buildup for the turn.
	TypeHeatGenerated Type = "heat.generated"
	// TypeHeatDissipated records heat-sink dissipation.
	TypeHeatDissipated Type = "heat.dissipated"
	// TypeShutdownChecked records a shutdown check, shutdown, or restart.
	TypeShutdownChecked Type = "shutdown.checked"
)

// IsValid reports whether the event type is usable.
func (t Type) IsValid() bool {
	return strings.TrimSpace(string(t)) != ""
}

// Domain returns the domain prefix of the event type (e.g., "attack", "heat").
func (t Type) Domain() string {
	for i, c := range t {
		if c == '.' {
			return string(t[:i])
		}
	}
	return string(t)
}

// Payload carries the event-specific data for one event kind. Payload types
// form a tagged union: the discriminant is the Type each payload reports.
type Payload interface {
	// EventType returns the event kind this payload belongs to.
	EventType() Type
}

// Event represents an immutable event in a session's journal.
type Event struct {
	// Seq is the event sequence number within the session (starts at 1).
	// Assigned on append.
	Seq uint64
	// Turn is the game turn the event occurred in (0 before game start).
	Turn int
	// Phase tags the turn phase the event occurred in.
	Phase phase.Phase
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// Type identifies the kind of event.
	Type Type
	// Payload holds the event-specific data.
	Payload Payload
}

// New builds an event of the payload's type. Seq is assigned on append.
func New(turn int, p phase.Phase, at time.Time, payload Payload) Event {
	return Event{
		Turn:      turn,
		Phase:     p,
		Timestamp: at.UTC(),
		Type:      payload.EventType(),
		Payload:   payload,
	}
}
