package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hexmek/hexmek/internal/game/board"
	"github.com/hexmek/hexmek/internal/game/unit"
)

const validScenario = `
name: duel at dawn
map:
  width: 20
  height: 20
turn_limit: 12
units:
  - id: archer
    name: Archer ARC-2R
    side: player
    tonnage: 50
    walk_mp: 4
    gunnery: 4
    piloting: 5
    heat_sinks: 10
    position: {col: 5, row: 5}
    facing: se
    armor: [5, 11, 9, 9, 7, 7, 8, 8]
    mounts:
      - {id: ml1, weapon: Medium Laser, location: 5}
    ammo: []
  - id: brawler
    name: Brawler
    side: opponent
    tonnage: 50
    walk_mp: 6
    gunnery: 4
    piloting: 5
    heat_sinks: 10
    position: {col: 10, row: 8}
    facing: 4
    armor: [5, 11, 9, 9, 7, 7, 8, 8]
    mounts:
      - {id: ml1, weapon: Medium Laser, location: 4}
`

func TestParseValidScenario(t *testing.T) {
	s, err := Parse([]byte(validScenario))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if s.Name != "duel at dawn" || s.TurnLimit != 12 {
		t.Fatalf("unexpected header: %+v", s)
	}
	if len(s.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(s.Units))
	}

	archer := s.Units[0]
	if archer.Facing != board.FacingSE {
		t.Fatalf("expected SE facing from name, got %s", archer.Facing)
	}
	if s.Units[1].Facing != board.FacingSW {
		t.Fatalf("expected SW facing from hexside 4, got %s", s.Units[1].Facing)
	}
	if archer.Armor[unit.LocCenterTorso] != 11 {
		t.Fatalf("expected 11 CT armor, got %d", archer.Armor[unit.LocCenterTorso])
	}
	if archer.Mounts[0].Location != unit.LocRightArm {
		t.Fatalf("expected RA mount, got %s", archer.Mounts[0].Location)
	}

	cfg := s.Config()
	if cfg.Map.Width != 20 || len(cfg.Units) != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	bad := strings.Replace(validScenario, "turn_limit: 12", "turn_limit: 12\nweather: rain", 1)
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("expected unknown-field error")
	}
}

func TestParseRejectsBadUnits(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		fragment string
	}{
		{"no units", func(s string) string { return s[:strings.Index(s, "units:")] + "units: []\n" }, "no units"},
		{"unknown weapon", func(s string) string { return strings.ReplaceAll(s, "Medium Laser", "Death Ray") }, "unknown weapon"},
		{"bad facing", func(s string) string { return strings.Replace(s, "facing: se", "facing: up", 1) }, "unknown facing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(validScenario)))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.fragment) {
				t.Fatalf("expected %q in error, got %v", tt.fragment, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duel.yaml")
	if err := os.WriteFile(path, []byte(validScenario), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Name != "duel at dawn" {
		t.Fatalf("unexpected scenario: %+v", s)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
