package event

import (
	"github.com/hexmek/hexmek/internal/game/board"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// GameCreated is the payload for TypeGameCreated. It carries the full setup
// needed to replay the session from nothing.
type GameCreated struct {
	GameID    string      `json:"game_id"`
	Name      string      `json:"name,omitempty"`
	Map       board.Map   `json:"map"`
	TurnLimit int         `json:"turn_limit"`
	Seed      int64       `json:"seed"`
	Units     []unit.Spec `json:"units"`
}

// EventType implements Payload.
func (GameCreated) EventType() Type { return TypeGameCreated }

// GameStarted is the payload for TypeGameStarted.
type GameStarted struct {
	GameID string `json:"game_id"`
}

// EventType implements Payload.
func (GameStarted) EventType() Type { return TypeGameStarted }

// GameEnded is the payload for TypeGameEnded.
type GameEnded struct {
	GameID string `json:"game_id"`
	// Winner is the winning side, empty on a draw.
	Winner unit.Side `json:"winner,omitempty"`
	// Reason describes why the game ended ("elimination", "turn limit", "concession").
	Reason string `json:"reason"`
	Turn   int    `json:"turn"`
}

// EventType implements Payload.
func (GameEnded) EventType() Type { return TypeGameEnded }

// PhaseChanged is the payload for TypePhaseChanged.
type PhaseChanged struct {
	From phase.Phase `json:"from"`
	To   phase.Phase `json:"to"`
	// Turn is the turn number in effect after the transition.
	Turn int `json:"turn"`
}

// EventType implements Payload.
func (PhaseChanged) EventType() Type { return TypePhaseChanged }

// InitiativeRolled is the payload for TypeInitiativeRolled.
type InitiativeRolled struct {
	Turn         int       `json:"turn"`
	PlayerRoll   int       `json:"player_roll"`
	OpponentRoll int       `json:"opponent_roll"`
	Winner       unit.Side `json:"winner"`
	// MovesFirst is the side that must declare movement first.
	MovesFirst unit.Side `json:"moves_first"`
	// Override reports whether the winner chose to move first themselves.
	Override bool `json:"override,omitempty"`
}

// EventType implements Payload.
func (InitiativeRolled) EventType() Type { return TypeInitiativeRolled }

// MovementDeclared is the payload for TypeMovementDeclared.
type MovementDeclared struct {
	UnitID string `json:"unit_id"`
	// Mode is the movement mode used ("stationary", "walk", "run", "jump").
	Mode string       `json:"mode"`
	From board.Coord  `json:"from"`
	To   board.Coord  `json:"to"`
	// Facing is the unit's facing after the move.
	Facing board.Facing `json:"facing"`
	// HexesMoved is the distance covered, used for target movement modifiers.
	HexesMoved int `json:"hexes_moved"`
	// Heat is the movement heat the move will generate this turn.
	Heat int `json:"heat"`
}

// EventType implements Payload.
func (MovementDeclared) EventType() Type { return TypeMovementDeclared }

// MovementLocked is the payload for TypeMovementLocked.
type MovementLocked struct {
	UnitID string `json:"unit_id"`
}

// EventType implements Payload.
func (MovementLocked) EventType() Type { return TypeMovementLocked }

// ShotKind distinguishes weapon fire from physical attacks within a declaration.
type ShotKind string

const (
	ShotWeapon ShotKind = "weapon"
	ShotPunch  ShotKind = "punch"
	ShotKick   ShotKind = "kick"
)

// Shot is one attack within a declaration, with its to-hit number fixed at
// declaration time.
type Shot struct {
	Kind ShotKind `json:"kind"`
	// MountID identifies the firing weapon mount for weapon shots.
	MountID string `json:"mount_id,omitempty"`
	// Weapon is the weapon name for weapon shots.
	Weapon string `json:"weapon,omitempty"`
	// Limb is the attacking limb location for punches and kicks.
	Limb unit.Location `json:"limb,omitempty"`
	// ToHitNumber is the target number computed at declaration.
	ToHitNumber int `json:"to_hit_number"`
	// Arc is the attack arc on the target, fixing the hit-location table side.
	Arc board.Arc `json:"arc"`
}

// AttackDeclared is the payload for TypeAttackDeclared.
type AttackDeclared struct {
	AttackerID string `json:"attacker_id"`
	TargetID   string `json:"target_id"`
	Shots      []Shot `json:"shots"`
}

// EventType implements Payload.
func (AttackDeclared) EventType() Type { return TypeAttackDeclared }

// AttackLocked is the payload for TypeAttackLocked.
type AttackLocked struct {
	UnitID string `json:"unit_id"`
}

// EventType implements Payload.
func (AttackLocked) EventType() Type { return TypeAttackLocked }

// AttackResolved is the payload for TypeAttackResolved. One event per shot.
type AttackResolved struct {
	AttackerID string   `json:"attacker_id"`
	TargetID   string   `json:"target_id"`
	Kind       ShotKind `json:"kind"`
	Weapon     string   `json:"weapon,omitempty"`
	Limb       unit.Location `json:"limb,omitempty"`
	ToHitNumber int `json:"to_hit_number"`
	Roll        int `json:"roll"`
	Hit         bool `json:"hit"`
	// AutoMiss reports a shot voided before rolling (e.g. shutdown attacker).
	AutoMiss bool `json:"auto_miss,omitempty"`
	// Heat is the weapon heat the shot adds to the attacker this turn.
	Heat int `json:"heat"`
}

// EventType implements Payload.
func (AttackResolved) EventType() Type { return TypeAttackResolved }

// DamageApplied is the payload for TypeDamageApplied. The payload carries the
// resulting totals so replay needs no arithmetic beyond assignment.
type DamageApplied struct {
	UnitID   string        `json:"unit_id"`
	Location unit.Location `json:"location"`
	// LocationRoll is the 2d6 hit-location roll, 0 when the location was
	// forced (transfer damage, falls, kicks).
	LocationRoll int `json:"location_roll,omitempty"`
	// Damage is the amount applied at this location after any caps.
	Damage int `json:"damage"`
	// ArmorDamage and StructureDamage split the applied amount.
	ArmorDamage     int `json:"armor_damage"`
	StructureDamage int `json:"structure_damage"`
	// ArmorRemaining and StructureRemaining are the totals after application.
	ArmorRemaining     int `json:"armor_remaining"`
	StructureRemaining int `json:"structure_remaining"`
	// LocationDestroyed reports structure reaching zero here.
	LocationDestroyed bool `json:"location_destroyed,omitempty"`
	// Overflow is damage transferring inward to the next location.
	Overflow int `json:"overflow,omitempty"`
	// Source describes the damage origin ("weapon", "punch", "kick", "fall",
	// "ammo_explosion", "transfer").
	Source string `json:"source"`
}

// EventType implements Payload.
func (DamageApplied) EventType() Type { return TypeDamageApplied }

// CriticalHitResolved is the payload for TypeCriticalHitResolved.
type CriticalHitResolved struct {
	UnitID   string        `json:"unit_id"`
	Location unit.Location `json:"location"`
	// CheckRoll is the 2d6 crit-determination roll that produced this hit,
	// repeated on each resulting crit event.
	CheckRoll int `json:"check_roll"`
	// SlotIndex is the struck slot within the location, -1 when the roll
	// destroyed the location outright or found no slots to hit.
	SlotIndex int            `json:"slot_index"`
	Component unit.Component `json:"component,omitempty"`
	// Name is the display name of the struck slot (weapon or ammo name).
	Name string `json:"name,omitempty"`
	// LocationBlownOff reports a limb severed or head destroyed by a 12.
	LocationBlownOff bool `json:"location_blown_off,omitempty"`
}

// EventType implements Payload.
func (CriticalHitResolved) EventType() Type { return TypeCriticalHitResolved }

// AmmoConsumed is the payload for TypeAmmoConsumed.
type AmmoConsumed struct {
	UnitID string `json:"unit_id"`
	BinID  string `json:"bin_id"`
	Weapon string `json:"weapon"`
	// Rounds is the count spent (always 1 per shot).
	Rounds int `json:"rounds"`
	// RoundsRemaining is the bin total after consumption.
	RoundsRemaining int `json:"rounds_remaining"`
}

// EventType implements Payload.
func (AmmoConsumed) EventType() Type { return TypeAmmoConsumed }

// AmmoExploded is the payload for TypeAmmoExploded.
type AmmoExploded struct {
	UnitID   string        `json:"unit_id"`
	BinID    string        `json:"bin_id"`
	Weapon   string        `json:"weapon"`
	Location unit.Location `json:"location"`
	// Damage is rounds remaining times damage per round.
	Damage int `json:"damage"`
	// Contained reports CASE II absorbing the blast entirely.
	Contained bool `json:"contained,omitempty"`
	// Vented reports CASE venting the blast out the rear torso.
	Vented bool `json:"vented,omitempty"`
}

// EventType implements Payload.
func (AmmoExploded) EventType() Type { return TypeAmmoExploded }

// PSRTriggered is the payload for TypePSRTriggered.
type PSRTriggered struct {
	UnitID string `json:"unit_id"`
	// Reason describes the trigger ("leg_structure_damage", "gyro_hit",
	// "kicked", "missed_kick", "shutdown", "heavy_damage").
	Reason string `json:"reason"`
	// Modifier is the situational modifier the trigger adds.
	Modifier int `json:"modifier"`
}

// EventType implements Payload.
func (PSRTriggered) EventType() Type { return TypePSRTriggered }

// PSRResolved is the payload for TypePSRResolved.
type PSRResolved struct {
	UnitID string `json:"unit_id"`
	Reason string `json:"reason"`
	// TargetNumber is piloting skill plus all modifiers.
	TargetNumber int `json:"target_number"`
	Roll         int `json:"roll"`
	Passed       bool `json:"passed"`
	// AutoFail marks a roll skipped because failure was certain (destroyed gyro).
	AutoFail bool `json:"auto_fail,omitempty"`
	// Skipped marks checks cleared because an earlier check in the batch
	// already dropped the unit.
	Skipped bool `json:"skipped,omitempty"`
}

// EventType implements Payload.
func (PSRResolved) EventType() Type { return TypePSRResolved }

// UnitFell is the payload for TypeUnitFell.
type UnitFell struct {
	UnitID string `json:"unit_id"`
	// Height is the fall height in levels (0 for a same-level fall).
	Height int `json:"height"`
	// Damage is the total fall damage before grouping.
	Damage int `json:"damage"`
	// FacingRoll is the d6 deciding the facing after the fall.
	FacingRoll int          `json:"facing_roll"`
	Facing     board.Facing `json:"facing"`
}

// EventType implements Payload.
func (UnitFell) EventType() Type { return TypeUnitFell }

// UnitDestroyed is the payload for TypeUnitDestroyed.
type UnitDestroyed struct {
	UnitID string `json:"unit_id"`
	// Reason describes the kill ("center_torso_destroyed", "head_destroyed",
	// "engine_destroyed", "pilot_killed", "ammo_explosion").
	Reason string `json:"reason"`
}

// EventType implements Payload.
func (UnitDestroyed) EventType() Type { return TypeUnitDestroyed }

// PilotHit is the payload for TypePilotHit.
type PilotHit struct {
	UnitID string `json:"unit_id"`
	// Reason describes the wound source ("head_hit", "cockpit_hit",
	// "ammo_explosion", "fall", "life_support", "extreme_heat").
	Reason string `json:"reason"`
	Wounds int    `json:"wounds"`
	// TotalWounds is the pilot's wound count after the hit.
	TotalWounds int `json:"total_wounds"`
	// ConsciousnessTarget is the number the consciousness roll had to meet,
	// 0 when no roll was required.
	ConsciousnessTarget int `json:"consciousness_target,omitempty"`
	ConsciousnessRoll   int `json:"consciousness_roll,omitempty"`
	// Conscious is the pilot's consciousness after the hit.
	Conscious bool `json:"conscious"`
	// Dead reports the pilot killed by this hit.
	Dead bool `json:"dead,omitempty"`
}

// EventType implements Payload.
func (PilotHit) EventType() Type { return TypePilotHit }

// HeatGenerated is the payload for TypeHeatGenerated.
type HeatGenerated struct {
	UnitID string `json:"unit_id"`
	// Movement, Weapons and Engine break down the buildup sources.
	Movement int `json:"movement"`
	Weapons  int `json:"weapons"`
	Engine   int `json:"engine,omitempty"`
	// HeatAfter is the heat scale value after buildup.
	HeatAfter int `json:"heat_after"`
}

// EventType implements Payload.
func (HeatGenerated) EventType() Type { return TypeHeatGenerated }

// HeatDissipated is the payload for TypeHeatDissipated.
type HeatDissipated struct {
	UnitID string `json:"unit_id"`
	// Capacity is the working heat-sink count applied.
	Capacity int `json:"capacity"`
	// Dissipated is the heat actually removed.
	Dissipated int `json:"dissipated"`
	// HeatAfter is the heat scale value after dissipation.
	HeatAfter int `json:"heat_after"`
}

// EventType implements Payload.
func (HeatDissipated) EventType() Type { return TypeHeatDissipated }

// ShutdownChecked is the payload for TypeShutdownChecked.
type ShutdownChecked struct {
	UnitID string `json:"unit_id"`
	// Check distinguishes the roll ("shutdown", "ammo", "restart").
	Check string `json:"check"`
	Heat  int    `json:"heat"`
	// TargetNumber is 0 for automatic outcomes.
	TargetNumber int `json:"target_number,omitempty"`
	Roll         int `json:"roll,omitempty"`
	// ShutDown is the unit's shutdown status after the check.
	ShutDown bool `json:"shut_down"`
	// Automatic marks thresholds with no roll (heat 30).
	Automatic bool `json:"automatic,omitempty"`
}

// EventType implements Payload.
func (ShutdownChecked) EventType() Type { return TypeShutdownChecked }

// Unknown preserves an event of an unrecognized type. Folding an Unknown
// payload is a no-op; the raw bytes survive round-trips through storage.
type Unknown struct {
	// RawType is the original event type string.
	RawType Type
	// Raw is the original payload JSON, unmodified.
	Raw []byte
}

// EventType implements Payload.
func (u Unknown) EventType() Type { return u.RawType }
