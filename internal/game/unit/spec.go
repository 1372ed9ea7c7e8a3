package unit

import (
	"fmt"
	"strings"

	"github.com/hexmek/hexmek/internal/game/board"
)

// Side identifies which of the two forces a unit fights for. The first-listed
// side ("player") wins initiative ties.
type Side string

const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// IsValid reports whether the side is one of the two known forces.
func (s Side) IsValid() bool { return s == SidePlayer || s == SideOpponent }

// Opponent returns the opposing side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

// Spec is the full static description of a unit as it enters a game. It is
// carried in the game-created event payload so that derived state is a pure
// function of the event log.
type Spec struct {
	ID       string       `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Side     Side         `json:"side" yaml:"side"`
	Tonnage  int          `json:"tonnage" yaml:"tonnage"`
	WalkMP   int          `json:"walk_mp" yaml:"walk_mp"`
	JumpMP   int          `json:"jump_mp" yaml:"jump_mp"`
	Gunnery  int          `json:"gunnery" yaml:"gunnery"`
	Piloting int          `json:"piloting" yaml:"piloting"`
	// HeatSinks is the dissipation capacity before critical damage.
	HeatSinks int `json:"heat_sinks" yaml:"heat_sinks"`

	Position board.Coord  `json:"position" yaml:"position"`
	Facing   board.Facing `json:"facing" yaml:"facing"`

	// Armor holds armor points per location, indexed by Location.
	Armor [NumLocations]int `json:"armor" yaml:"armor"`

	Mounts []Mount   `json:"mounts" yaml:"mounts"`
	Ammo   []AmmoBin `json:"ammo,omitempty" yaml:"ammo,omitempty"`

	// Slots holds the critical-slot manifest per location. Rosters may leave
	// this empty and call PopulateSlots to build the standard layout.
	Slots [NumLocations][]CritSlot `json:"slots" yaml:"slots"`

	// CASE and CASEII flag ammunition containment per location.
	CASE   [NumLocations]bool `json:"case,omitempty" yaml:"case,omitempty"`
	CASEII [NumLocations]bool `json:"case_ii,omitempty" yaml:"case_ii,omitempty"`
}

// Validate checks the spec describes a playable unit.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("unit id is required")
	}
	if !s.Side.IsValid() {
		return fmt.Errorf("unit %s: invalid side %q", s.ID, s.Side)
	}
	if s.Tonnage < 20 || s.Tonnage > 100 {
		return fmt.Errorf("unit %s: tonnage %d outside 20-100", s.ID, s.Tonnage)
	}
	if s.WalkMP < 0 || s.JumpMP < 0 {
		return fmt.Errorf("unit %s: negative movement points", s.ID)
	}
	if s.Gunnery < 0 || s.Piloting < 0 {
		return fmt.Errorf("unit %s: negative pilot skills", s.ID)
	}
	mountIDs := make(map[string]bool, len(s.Mounts))
	for _, m := range s.Mounts {
		if _, err := LookupWeapon(m.Weapon); err != nil {
			return fmt.Errorf("unit %s: %w", s.ID, err)
		}
		if mountIDs[m.ID] {
			return fmt.Errorf("unit %s: duplicate mount id %q", s.ID, m.ID)
		}
		mountIDs[m.ID] = true
	}
	for _, bin := range s.Ammo {
		w, err := LookupWeapon(bin.Weapon)
		if err != nil {
			return fmt.Errorf("unit %s: ammo bin %s: %w", s.ID, bin.ID, err)
		}
		if !w.UsesAmmo() {
			return fmt.Errorf("unit %s: ammo bin %s for energy weapon %s", s.ID, bin.ID, bin.Weapon)
		}
		if bin.Rounds < 0 {
			return fmt.Errorf("unit %s: ammo bin %s has negative rounds", s.ID, bin.ID)
		}
	}
	return nil
}

// Structure returns the internal structure points per location for the
// unit's tonnage.
func (s Spec) Structure() [NumLocations]int {
	return StructureForTonnage(s.Tonnage)
}

// MountByID returns the mount with the given id.
func (s Spec) MountByID(id string) (Mount, bool) {
	for _, m := range s.Mounts {
		if m.ID == id {
			return m, true
		}
	}
	return Mount{}, false
}

// AmmoBinFor returns the first ammo bin feeding the named weapon type.
func (s Spec) AmmoBinFor(weapon string) (AmmoBin, bool) {
	for _, bin := range s.Ammo {
		if bin.Weapon == weapon {
			return bin, true
		}
	}
	return AmmoBin{}, false
}

// PopulateSlots fills the critical-slot manifest with the standard layout:
// head holds cockpit, sensors, and life support; the center torso holds
// engine and gyro; arms and legs hold their actuators; weapon mounts, ammo
// bins, jump jets, and heat sinks land in their declared locations.
func (s *Spec) PopulateSlots() {
	var slots [NumLocations][]CritSlot

	slots[LocHead] = []CritSlot{
		{Component: ComponentLifeSupport},
		{Component: ComponentSensors},
		{Component: ComponentCockpit},
		{Component: ComponentSensors},
		{Component: ComponentLifeSupport},
	}
	slots[LocCenterTorso] = []CritSlot{
		{Component: ComponentEngine},
		{Component: ComponentEngine},
		{Component: ComponentEngine},
		{Component: ComponentGyro},
		{Component: ComponentGyro},
		{Component: ComponentGyro},
		{Component: ComponentGyro},
	}
	for _, arm := range []Location{LocLeftArm, LocRightArm} {
		slots[arm] = []CritSlot{
			{Component: ComponentShoulder},
			{Component: ComponentUpperArm},
			{Component: ComponentLowerArm},
			{Component: ComponentHand},
		}
	}
	for _, leg := range []Location{LocLeftLeg, LocRightLeg} {
		slots[leg] = []CritSlot{
			{Component: ComponentHip},
			{Component: ComponentUpperLeg},
			{Component: ComponentLowerLeg},
			{Component: ComponentFoot},
		}
	}

	for _, m := range s.Mounts {
		slots[m.Location] = append(slots[m.Location], CritSlot{Component: ComponentWeapon, Name: m.ID})
	}
	for _, bin := range s.Ammo {
		slots[bin.Location] = append(slots[bin.Location], CritSlot{Component: ComponentAmmo, Name: bin.ID})
	}
	for i := 0; i < s.JumpMP; i++ {
		leg := LocLeftLeg
		if i%2 == 1 {
			leg = LocRightLeg
		}
		slots[leg] = append(slots[leg], CritSlot{Component: ComponentJumpJet})
	}
	// Heat sinks beyond the ten integral to the engine occupy torso slots.
	for i := 10; i < s.HeatSinks; i++ {
		torso := LocLeftTorso
		if i%2 == 1 {
			torso = LocRightTorso
		}
		slots[torso] = append(slots[torso], CritSlot{Component: ComponentHeatSink})
	}

	s.Slots = slots
}
