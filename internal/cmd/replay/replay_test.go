package replay

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hexmek/hexmek/internal/game/board"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
	"github.com/hexmek/hexmek/internal/storage"
	"github.com/hexmek/hexmek/internal/storage/sqlite"
)

func storedEvents() []event.Event {
	at := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	return []event.Event{
		{
			Seq: 1, Turn: 0, Phase: phase.Initiative, Timestamp: at,
			Type: event.TypeGameCreated,
			Payload: event.GameCreated{
				GameID: "session-r", Name: "Replay Duel",
				Map: board.Map{Width: 10, Height: 10}, TurnLimit: 5, Seed: 9,
				Units: []unit.Spec{
					{
						ID: "hunter", Name: "Hunter", Side: unit.SidePlayer,
						Tonnage: 50, WalkMP: 4, Gunnery: 4, Piloting: 5, HeatSinks: 10,
						Position: board.Coord{Col: 2, Row: 2}, Facing: board.FacingSE,
						Armor: [unit.NumLocations]int{5, 11, 9, 9, 7, 7, 8, 8},
						Mounts: []unit.Mount{
							{ID: "ml1", Weapon: "Medium Laser", Location: unit.LocRightArm},
						},
					},
					{
						ID: "prey", Name: "Prey", Side: unit.SideOpponent,
						Tonnage: 50, WalkMP: 4, Gunnery: 4, Piloting: 5, HeatSinks: 10,
						Position: board.Coord{Col: 8, Row: 8}, Facing: board.FacingNW,
						Armor: [unit.NumLocations]int{5, 11, 9, 9, 7, 7, 8, 8},
						Mounts: []unit.Mount{
							{ID: "ml1", Weapon: "Medium Laser", Location: unit.LocLeftArm},
						},
					},
				},
			},
		},
		{
			Seq: 2, Turn: 1, Phase: phase.Initiative, Timestamp: at.Add(time.Second),
			Type:    event.TypeGameStarted,
			Payload: event.GameStarted{GameID: "session-r"},
		},
		{
			Seq: 3, Turn: 1, Phase: phase.Initiative, Timestamp: at.Add(2 * time.Second),
			Type: event.TypeInitiativeRolled,
			Payload: event.InitiativeRolled{
				Turn: 1, PlayerRoll: 8, OpponentRoll: 5,
				Winner: unit.SidePlayer, MovesFirst: unit.SideOpponent,
			},
		},
		{
			Seq: 4, Turn: 2, Phase: phase.Initiative, Timestamp: at.Add(3 * time.Second),
			Type:    event.TypePhaseChanged,
			Payload: event.PhaseChanged{From: phase.End, To: phase.Initiative, Turn: 2},
		},
	}
}

func TestTruncateBySeqAndTurn(t *testing.T) {
	events := storedEvents()

	cut := truncate(events, Config{Seq: 2})
	if len(cut) != 2 {
		t.Fatalf("seq cut len = %d, want 2", len(cut))
	}

	cut = truncate(events, Config{Turn: 1})
	if len(cut) != 3 {
		t.Fatalf("turn cut len = %d, want 3", len(cut))
	}

	// Seq bound wins when both are set.
	cut = truncate(events, Config{Seq: 1, Turn: 2})
	if len(cut) != 1 {
		t.Fatalf("combined cut len = %d, want 1", len(cut))
	}

	cut = truncate(events, Config{})
	if len(cut) != len(events) {
		t.Fatalf("no-bound cut len = %d, want %d", len(cut), len(events))
	}
}

func TestReplaySessionRendersLogAndSummary(t *testing.T) {
	store := openTempStore(t)
	if err := store.AppendEvents(context.Background(), "session-r", storedEvents()); err != nil {
		t.Fatalf("append events: %v", err)
	}

	var out bytes.Buffer
	if err := replaySession(context.Background(), store, Config{Session: "session-r"}, &out); err != nil {
		t.Fatalf("replay session: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "[Turn 1/Initiative]") {
		t.Fatalf("output missing initiative line:\n%s", got)
	}
	if !strings.Contains(got, "status active, turn 2/5") {
		t.Fatalf("output missing state summary:\n%s", got)
	}
	if !strings.Contains(got, "Hunter [player]: standing") {
		t.Fatalf("output missing unit condition:\n%s", got)
	}
}

func TestReplaySessionUnknownID(t *testing.T) {
	store := openTempStore(t)
	var out bytes.Buffer
	err := replaySession(context.Background(), store, Config{Session: "missing"}, &out)
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestListSessionsOutput(t *testing.T) {
	store := openTempStore(t)
	var out bytes.Buffer
	if err := listSessions(context.Background(), store, &out); err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if !strings.Contains(out.String(), "no stored sessions") {
		t.Fatalf("output = %q, want empty-store notice", out.String())
	}

	rec := storage.SessionRecord{
		ID: "session-l", Name: "Listed Duel", Status: "completed",
		Winner: "player", EndReason: "elimination", Turn: 4, EventCount: 40,
		CreatedAt: time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, time.March, 14, 9, 45, 0, 0, time.UTC),
	}
	if err := store.PutSession(context.Background(), rec); err != nil {
		t.Fatalf("put session: %v", err)
	}
	out.Reset()
	if err := listSessions(context.Background(), store, &out); err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	line := out.String()
	if !strings.Contains(line, "session-l") || !strings.Contains(line, "Listed Duel") || !strings.Contains(line, "winner player") {
		t.Fatalf("listing = %q", line)
	}
}

func TestParseConfigFlagOverrides(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db", "games.db", "-session", "abc", "-turn", "3"})
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	if cfg.DBPath != "games.db" || cfg.Session != "abc" || cfg.Turn != 3 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func openTempStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "replay.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
