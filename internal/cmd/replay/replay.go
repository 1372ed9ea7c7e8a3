// Package replay renders stored event logs back into readable game logs.
package replay

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hexmek/hexmek/internal/game/engine"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/gamelog"
	"github.com/hexmek/hexmek/internal/platform/config"
	"github.com/hexmek/hexmek/internal/storage"
	"github.com/hexmek/hexmek/internal/storage/sqlite"
)

// Config holds replay command configuration.
type Config struct {
	DBPath  string `env:"HEXMEK_DB" envDefault:"hexmek.db"`
	Session string `env:"HEXMEK_SESSION"`
	Turn    int    `env:"HEXMEK_TURN"`
	Seq     uint64 `env:"HEXMEK_SEQ"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite path holding stored sessions")
	fs.StringVar(&cfg.Session, "session", cfg.Session, "Session ID to replay; empty lists stored sessions")
	fs.IntVar(&cfg.Turn, "turn", cfg.Turn, "Stop the replay after this turn; 0 replays everything")
	fs.Uint64Var(&cfg.Seq, "seq", cfg.Seq, "Stop the replay at this sequence number; 0 replays everything")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run replays one stored session, or lists sessions when none is named.
func Run(ctx context.Context, cfg Config) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := os.Stdout
	if cfg.Session == "" {
		return listSessions(ctx, store, out)
	}
	return replaySession(ctx, store, cfg, out)
}

func listSessions(ctx context.Context, store storage.Store, out io.Writer) error {
	records, err := store.ListSessions(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "no stored sessions")
		return nil
	}
	for _, rec := range records {
		name := rec.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(out, "%s  %s  %s  turn %d  winner %s  %d events\n",
			rec.ID, name, rec.Status, rec.Turn, winnerLabel(rec.Winner), rec.EventCount)
	}
	return nil
}

func replaySession(ctx context.Context, store storage.Store, cfg Config, out io.Writer) error {
	events, err := store.ListEvents(ctx, cfg.Session)
	if err != nil {
		return fmt.Errorf("session %s: %w", cfg.Session, err)
	}
	events = truncate(events, cfg)

	for _, line := range gamelog.Render(events) {
		fmt.Fprintln(out, line)
	}

	state := engine.DeriveState(events)
	fmt.Fprintf(out, "\nstatus %s, turn %d/%d", state.Status, state.Turn, state.TurnLimit)
	if state.Status == engine.StatusCompleted {
		fmt.Fprintf(out, ", winner %s (%s)", winnerLabel(string(state.Winner)), state.EndReason)
	}
	fmt.Fprintln(out)
	for _, uid := range state.UnitIDs() {
		u := state.Units[uid]
		fmt.Fprintf(out, "  %s [%s]: %s, heat %d, pilot wounds %d\n",
			u.Spec.Name, u.Spec.Side, unitCondition(u), u.Heat, u.PilotWounds)
	}
	return nil
}

// truncate cuts the event list at the configured turn or sequence bound. Seq
// wins when both are set, matching the tighter cut a caller would expect.
func truncate(events []event.Event, cfg Config) []event.Event {
	if cfg.Seq > 0 {
		return engine.EventsToSequence(events, cfg.Seq)
	}
	if cfg.Turn > 0 {
		return engine.EventsToTurn(events, cfg.Turn)
	}
	return events
}

func unitCondition(u *engine.UnitState) string {
	switch {
	case u.Destroyed:
		return "destroyed"
	case u.ShutDown:
		return "shut down"
	case u.Prone:
		return "prone"
	default:
		return "standing"
	}
}

func winnerLabel(side string) string {
	if side == "" {
		return "draw"
	}
	return side
}
