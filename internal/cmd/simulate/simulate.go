// Package simulate parses batch simulator flags and drives bot games.
package simulate

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hexmek/hexmek/internal/game/bot"
	"github.com/hexmek/hexmek/internal/game/dice"
	"github.com/hexmek/hexmek/internal/game/engine"
	"github.com/hexmek/hexmek/internal/game/gamelog"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
	"github.com/hexmek/hexmek/internal/id"
	"github.com/hexmek/hexmek/internal/platform/config"
	"github.com/hexmek/hexmek/internal/random"
	"github.com/hexmek/hexmek/internal/scenario"
	"github.com/hexmek/hexmek/internal/storage"
	"github.com/hexmek/hexmek/internal/storage/sqlite"
)

// Config holds batch simulator configuration.
type Config struct {
	Scenario string `env:"HEXMEK_SCENARIO" envDefault:"scenarios/duel.yaml"`
	Games    int    `env:"HEXMEK_GAMES" envDefault:"1"`
	Seed     int64  `env:"HEXMEK_SEED"`
	DBPath   string `env:"HEXMEK_DB"`
	Verbose  bool   `env:"HEXMEK_VERBOSE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "Path to the scenario YAML file")
	fs.IntVar(&cfg.Games, "games", cfg.Games, "Number of games to simulate")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Base seed; 0 picks a random one")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite path for persisting event logs; empty disables persistence")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Print the rendered game log after each game")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Tally accumulates batch outcomes.
type Tally struct {
	Games        int
	PlayerWins   int
	OpponentWins int
	Draws        int
}

func (t *Tally) record(winner unit.Side) {
	t.Games++
	switch winner {
	case unit.SidePlayer:
		t.PlayerWins++
	case unit.SideOpponent:
		t.OpponentWins++
	default:
		t.Draws++
	}
}

// Run simulates the configured batch and reports the tally.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Games <= 0 {
		return fmt.Errorf("games must be greater than zero")
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	scn, err := scenario.Load(cfg.Scenario)
	if err != nil {
		return err
	}

	baseSeed := cfg.Seed
	if baseSeed == 0 {
		baseSeed, err = random.NewSeed()
		if err != nil {
			return err
		}
	}

	var store storage.Store
	if cfg.DBPath != "" {
		sqlStore, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer sqlStore.Close()
		store = sqlStore
	}

	logger.Info("starting batch",
		zap.String("scenario", scn.Name),
		zap.Int("games", cfg.Games),
		zap.Int64("base_seed", baseSeed),
	)

	var tally Tally
	for i := 0; i < cfg.Games; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		seed := baseSeed + int64(i)
		sess, err := PlayGame(scn.Config(), seed)
		if err != nil {
			return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
		}
		tally.record(sess.Current.Winner)
		logger.Info("game finished",
			zap.String("session", sess.ID),
			zap.Int64("seed", seed),
			zap.String("winner", winnerLabel(sess.Current.Winner)),
			zap.String("reason", sess.Current.EndReason),
			zap.Int("turns", sess.Current.Turn),
			zap.Int("events", len(sess.Events)),
		)
		if cfg.Verbose {
			for _, line := range gamelog.Render(sess.Events) {
				fmt.Fprintln(os.Stdout, line)
			}
		}
		if store != nil {
			if err := storage.Save(ctx, store, sess); err != nil {
				return fmt.Errorf("persist game %d: %w", i+1, err)
			}
		}
	}

	logger.Info("batch complete",
		zap.Int("games", tally.Games),
		zap.Int("player_wins", tally.PlayerWins),
		zap.Int("opponent_wins", tally.OpponentWins),
		zap.Int("draws", tally.Draws),
	)
	return nil
}

func winnerLabel(side unit.Side) string {
	if side == "" {
		return "draw"
	}
	return string(side)
}

// PlayGame runs one full bot-driven game from the given config and seed.
// All randomness derives from the seed, so replays of the same scenario and
// seed produce identical event logs.
func PlayGame(cfg engine.Config, seed int64) (engine.Session, error) {
	cfg.Seed = seed
	gameID, err := id.NewID()
	if err != nil {
		return engine.Session{}, err
	}
	roller := dice.NewRoller(seed)
	bots := map[unit.Side]bot.Provider{
		unit.SidePlayer:   bot.NewRandom(seed + 1),
		unit.SideOpponent: bot.NewRandom(seed + 2),
	}

	now := time.Now
	s, err := engine.NewSession(cfg, now, func() string { return gameID })
	if err != nil {
		return engine.Session{}, err
	}
	s, err = engine.StartGame(s, now)
	if err != nil {
		return s, err
	}
	for s.Current.Status == engine.StatusActive {
		s, err = playPhase(s, bots, roller, now)
		if err != nil {
			return s, err
		}
	}
	return s, nil
}

// playPhase runs the current phase to completion and advances out of it.
func playPhase(s engine.Session, bots map[unit.Side]bot.Provider, r dice.Roller, now func() time.Time) (engine.Session, error) {
	var err error
	switch s.Current.Phase {
	case phase.Initiative:
		if s, err = engine.RollInitiative(s, "", now, r); err != nil {
			return s, err
		}

	case phase.Movement:
		for _, uid := range moveOrder(&s.Current) {
			u := s.Current.Units[uid]
			if u.Destroyed {
				continue
			}
			in := bots[u.Spec.Side].Movement(&s.Current, uid)
			if s, err = engine.DeclareMovement(s, in, now); err != nil {
				return s, err
			}
			if s, err = engine.LockMovement(s, uid, now); err != nil {
				return s, err
			}
		}

	case phase.WeaponAttack:
		for _, uid := range moveOrder(&s.Current) {
			u := s.Current.Units[uid]
			if u.Destroyed {
				continue
			}
			for _, in := range bots[u.Spec.Side].Attacks(&s.Current, uid) {
				if s, err = engine.DeclareAttack(s, in, now); err != nil {
					return s, err
				}
			}
			if s, err = engine.LockAttack(s, uid, now); err != nil {
				return s, err
			}
		}
		if s, err = engine.ResolveAttacks(s, now, r); err != nil {
			return s, err
		}

	case phase.PhysicalAttack:
		for _, uid := range moveOrder(&s.Current) {
			u := s.Current.Units[uid]
			if u.Destroyed {
				continue
			}
			for _, in := range bots[u.Spec.Side].Physicals(&s.Current, uid) {
				if s, err = engine.DeclarePhysical(s, in, now); err != nil {
					return s, err
				}
			}
			if s, err = engine.LockAttack(s, uid, now); err != nil {
				return s, err
			}
		}
		if s, err = engine.ResolveAttacks(s, now, r); err != nil {
			return s, err
		}

	case phase.Heat:
		if s, err = engine.ResolveHeat(s, now, r); err != nil {
			return s, err
		}
	}

	if s.Current.Status != engine.StatusActive {
		return s, nil
	}
	return engine.AdvancePhase(s, now)
}

// moveOrder lists unit IDs with the side that must act first ahead of the
// other, each side in stable ID order.
func moveOrder(state *engine.GameState) []string {
	first := state.MovesFirst
	ids := state.UnitIDs()
	if first == "" {
		return ids
	}
	ordered := make([]string, 0, len(ids))
	for _, uid := range ids {
		if state.Units[uid].Spec.Side == first {
			ordered = append(ordered, uid)
		}
	}
	for _, uid := range ids {
		if state.Units[uid].Spec.Side != first {
			ordered = append(ordered, uid)
		}
	}
	return ordered
}
