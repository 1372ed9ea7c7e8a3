// Package scenario loads game setups from YAML files.
//
// A scenario file carries everything a session needs except the seed: the
// map, the turn limit, and the full unit roster with weapons, ammunition,
// and positions. The engine re-validates on session creation; loading only
// rejects what cannot even parse into a config.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/hexmek/hexmek/internal/game/board"
	"github.com/hexmek/hexmek/internal/game/engine"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// Scenario is the YAML shape of a game setup.
type Scenario struct {
	Name      string      `yaml:"name"`
	Map       board.Map   `yaml:"map"`
	TurnLimit int         `yaml:"turn_limit"`
	// Seed is optional; batch runs override it per game.
	Seed  int64       `yaml:"seed,omitempty"`
	Units []unit.Spec `yaml:"units"`
}

// Config converts the scenario into an engine config.
func (s Scenario) Config() engine.Config {
	return engine.Config{
		Name:      s.Name,
		Map:       s.Map,
		TurnLimit: s.TurnLimit,
		Seed:      s.Seed,
		Units:     s.Units,
	}
}

// Load reads and parses a scenario file.
func Load(path string) (Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario %s: %w", path, err)
	}
	s, err := Parse(raw)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes scenario YAML. Unknown fields are rejected so typos in unit
// definitions fail loudly instead of silently fielding a default.
func Parse(raw []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.UnmarshalStrict(raw, &s); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if len(s.Units) == 0 {
		return Scenario{}, fmt.Errorf("parse scenario: no units")
	}
	for i, spec := range s.Units {
		if err := spec.Validate(); err != nil {
			return Scenario{}, fmt.Errorf("parse scenario: unit %d: %w", i, err)
		}
	}
	return s, nil
}
