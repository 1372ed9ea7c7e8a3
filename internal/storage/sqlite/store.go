// Package sqlite provides a SQLite-backed session storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hexmek/hexmek/internal/game/event"
	sqlitemigrate "github.com/hexmek/hexmek/internal/platform/storage/sqlitemigrate"
	"github.com/hexmek/hexmek/internal/storage"
	"github.com/hexmek/hexmek/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists session records and event logs in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite session store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSession inserts or updates one session record.
func (s *Store) PutSession(ctx context.Context, rec storage.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(rec.Status) == "" {
		return fmt.Errorf("session status is required")
	}
	createdAt := rec.CreatedAt.UTC()
	updatedAt := rec.UpdatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sessions (
		   id, name, status, winner, end_reason,
		   turn, seed, event_count, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   status = excluded.status,
		   winner = excluded.winner,
		   end_reason = excluded.end_reason,
		   turn = excluded.turn,
		   event_count = excluded.event_count,
		   updated_at = excluded.updated_at`,
		id,
		rec.Name,
		rec.Status,
		rec.Winner,
		rec.EndReason,
		rec.Turn,
		rec.Seed,
		rec.EventCount,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// GetSession returns one session record by ID.
func (s *Store) GetSession(ctx context.Context, id string) (storage.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SessionRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SessionRecord{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.SessionRecord{}, fmt.Errorf("session id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, status, winner, end_reason,
		        turn, seed, event_count, created_at, updated_at
		   FROM sessions
		  WHERE id = ?`,
		id,
	)
	rec, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SessionRecord{}, storage.ErrNotFound
		}
		return storage.SessionRecord{}, fmt.Errorf("get session: %w", err)
	}
	return rec, nil
}

// ListSessions returns all session records, oldest first.
func (s *Store) ListSessions(ctx context.Context) ([]storage.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, status, winner, end_reason,
		        turn, seed, event_count, created_at, updated_at
		   FROM sessions
		  ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []storage.SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return records, nil
}

// AppendEvents stores a session's events. Rows are keyed by (session, seq),
// so appending a log that overlaps already-stored events only writes the new
// tail.
func (s *Store) AppendEvents(ctx context.Context, sessionID string, events []event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if len(events) == 0 {
		return nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append events: %w", err)
	}
	for _, e := range events {
		data, err := event.Marshal(e)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("append events: %w", err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO session_events (session_id, seq, event_type, payload)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(session_id, seq) DO NOTHING`,
			sessionID,
			e.Seq,
			string(e.Type),
			data,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("append event %d: %w", e.Seq, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append events: %w", err)
	}
	return nil
}

// ListEvents returns a session's full event log in sequence order.
func (s *Store) ListEvents(ctx context.Context, sessionID string) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT payload
		   FROM session_events
		  WHERE session_id = ?
		  ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		e, err := event.Unmarshal(data)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if len(events) == 0 {
		return nil, storage.ErrNotFound
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (storage.SessionRecord, error) {
	var rec storage.SessionRecord
	var createdAt int64
	var updatedAt int64
	if err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Status,
		&rec.Winner,
		&rec.EndReason,
		&rec.Turn,
		&rec.Seed,
		&rec.EventCount,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.SessionRecord{}, err
	}
	rec.CreatedAt = fromMillis(createdAt)
	rec.UpdatedAt = fromMillis(updatedAt)
	return rec, nil
}
