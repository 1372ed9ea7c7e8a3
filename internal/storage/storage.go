// Package storage defines persistence interfaces for game sessions. The
// event log is the source of truth; session records are denormalized
// summaries so listings do not require a replay.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/hexmek/hexmek/internal/game/engine"
	"github.com/hexmek/hexmek/internal/game/event"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// SessionRecord is the stored summary of a session.
type SessionRecord struct {
	ID         string
	Name       string
	Status     string
	Winner     string
	EndReason  string
	Turn       int
	Seed       int64
	EventCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SessionStore persists session summary records.
type SessionStore interface {
	PutSession(ctx context.Context, rec SessionRecord) error
	GetSession(ctx context.Context, id string) (SessionRecord, error)
	ListSessions(ctx context.Context) ([]SessionRecord, error)
}

// EventStore persists session event logs. Appends are idempotent per
// (session, seq) so re-saving a session after new events only writes the
// tail.
type EventStore interface {
	AppendEvents(ctx context.Context, sessionID string, events []event.Event) error
	ListEvents(ctx context.Context, sessionID string) ([]event.Event, error)
}

// Store combines session and event persistence.
type Store interface {
	SessionStore
	EventStore
}

// Summarize builds the stored record for a session from its current state.
// The display name lives only in the setup event, so it is read from there.
func Summarize(s engine.Session) SessionRecord {
	rec := SessionRecord{
		ID:         s.ID,
		Status:     string(s.Current.Status),
		Winner:     string(s.Current.Winner),
		EndReason:  s.Current.EndReason,
		Turn:       s.Current.Turn,
		Seed:       s.Current.Seed,
		EventCount: len(s.Events),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	if len(s.Events) > 0 {
		if created, ok := s.Events[0].Payload.(event.GameCreated); ok {
			rec.Name = created.Name
		}
	}
	return rec
}

// Save writes a session's summary record and appends its event log.
func Save(ctx context.Context, st Store, s engine.Session) error {
	if err := st.PutSession(ctx, Summarize(s)); err != nil {
		return err
	}
	return st.AppendEvents(ctx, s.ID, s.Events)
}
