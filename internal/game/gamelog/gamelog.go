// Package gamelog renders event logs as human-readable battle reports.
//
// Rendering is a read-only projection over the event list: it never feeds
// back into state derivation, so changes here cannot alter game outcomes.
package gamelog

import (
	"fmt"
	"strings"

	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/phase"
)

// Renderer turns events into log lines. It learns unit display names from the
// game-created event so later lines can name units instead of echoing ids.
type Renderer struct {
	names map[string]string
}

// NewRenderer creates an empty renderer. Names resolve to ids until a
// game-created event has been rendered.
func NewRenderer() *Renderer {
	return &Renderer{names: make(map[string]string)}
}

// Render formats the whole event list, one line per event.
func Render(events []event.Event) []string {
	r := NewRenderer()
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, r.Line(e))
	}
	return lines
}

var phaseLabels = map[phase.Phase]string{
	phase.Initiative:     "Initiative",
	phase.Movement:       "Movement",
	phase.WeaponAttack:   "Weapon Attack",
	phase.PhysicalAttack: "Physical Attack",
	phase.Heat:           "Heat",
	phase.End:            "End",
}

// Line formats a single event as
// "[Turn N/Phase] HH:MM:SS: <description>".
func (r *Renderer) Line(e event.Event) string {
	label, ok := phaseLabels[e.Phase]
	if !ok {
		label = string(e.Phase)
	}
	return fmt.Sprintf("[Turn %d/%s] %s: %s",
		e.Turn, label, e.Timestamp.Format("15:04:05"), r.describe(e))
}

func (r *Renderer) name(id string) string {
	if n, ok := r.names[id]; ok && n != "" {
		return n
	}
	return id
}

func (r *Renderer) describe(e event.Event) string {
	switch p := e.Payload.(type) {
	case event.GameCreated:
		for _, spec := range p.Units {
			r.names[spec.ID] = spec.Name
		}
		return fmt.Sprintf("Game created: %d units on a %dx%d map, turn limit %d",
			len(p.Units), p.Map.Width, p.Map.Height, p.TurnLimit)
	case event.GameStarted:
		return "Game started"
	case event.GameEnded:
		if p.Winner == "" {
			return fmt.Sprintf("Game ended in a draw (%s) on turn %d", p.Reason, p.Turn)
		}
		return fmt.Sprintf("Game ended: %s wins by %s on turn %d", p.Winner, p.Reason, p.Turn)
	case event.PhaseChanged:
		return fmt.Sprintf("Phase: %s -> %s", p.From, p.To)
	case event.InitiativeRolled:
		s := fmt.Sprintf("Initiative: player %d vs opponent %d, %s wins, %s moves first",
			p.PlayerRoll, p.OpponentRoll, p.Winner, p.MovesFirst)
		if p.Override {
			s += " (winner's choice)"
		}
		return s
	case event.MovementDeclared:
		if p.Mode == "stationary" {
			return fmt.Sprintf("%s holds position at %v facing %s", r.name(p.UnitID), p.To, p.Facing)
		}
		return fmt.Sprintf("%s %ss %v -> %v (%d hexes, facing %s)",
			r.name(p.UnitID), p.Mode, p.From, p.To, p.HexesMoved, p.Facing)
	case event.MovementLocked:
		return fmt.Sprintf("%s locks movement", r.name(p.UnitID))
	case event.AttackDeclared:
		return fmt.Sprintf("%s declares %s against %s",
			r.name(p.AttackerID), describeShots(p.Shots), r.name(p.TargetID))
	case event.AttackLocked:
		return fmt.Sprintf("%s locks attacks", r.name(p.UnitID))
	case event.AttackResolved:
		return r.describeResolution(p)
	case event.DamageApplied:
		s := fmt.Sprintf("%s takes %d damage to %s (%d armor / %d structure left)",
			r.name(p.UnitID), p.Damage, p.Location, p.ArmorRemaining, p.StructureRemaining)
		if p.LocationDestroyed {
			s += " - location destroyed"
		}
		if p.Overflow > 0 {
			s += fmt.Sprintf(", %d transfers inward", p.Overflow)
		}
		return s
	case event.CriticalHitResolved:
		if p.LocationBlownOff {
			return fmt.Sprintf("Critical: %s %s blown off (roll %d)", r.name(p.UnitID), p.Location, p.CheckRoll)
		}
		what := string(p.Component)
		if p.Name != "" {
			what += " " + p.Name
		}
		return fmt.Sprintf("Critical: %s %s %s destroyed", r.name(p.UnitID), p.Location, what)
	case event.AmmoConsumed:
		return fmt.Sprintf("%s fires %s from %s (%d rounds left)",
			r.name(p.UnitID), p.Weapon, p.BinID, p.RoundsRemaining)
	case event.AmmoExploded:
		switch {
		case p.Contained:
			return fmt.Sprintf("%s ammo explosion in %s contained by CASE II", r.name(p.UnitID), p.Location)
		case p.Vented:
			return fmt.Sprintf("%s ammo explosion in %s vented by CASE (%d damage)", r.name(p.UnitID), p.Location, p.Damage)
		default:
			return fmt.Sprintf("%s ammo explosion in %s: %d damage", r.name(p.UnitID), p.Location, p.Damage)
		}
	case event.PSRTriggered:
		return fmt.Sprintf("%s must check piloting (%s)", r.name(p.UnitID), strings.ReplaceAll(p.Reason, "_", " "))
	case event.PSRResolved:
		switch {
		case p.Skipped:
			return fmt.Sprintf("%s piloting check (%s) moot, already down", r.name(p.UnitID), strings.ReplaceAll(p.Reason, "_", " "))
		case p.AutoFail:
			return fmt.Sprintf("%s piloting check (%s) fails automatically", r.name(p.UnitID), strings.ReplaceAll(p.Reason, "_", " "))
		case p.Passed:
			return fmt.Sprintf("%s passes piloting check (%s): %d vs %d", r.name(p.UnitID), strings.ReplaceAll(p.Reason, "_", " "), p.Roll, p.TargetNumber)
		default:
			return fmt.Sprintf("%s fails piloting check (%s): %d vs %d", r.name(p.UnitID), strings.ReplaceAll(p.Reason, "_", " "), p.Roll, p.TargetNumber)
		}
	case event.UnitFell:
		return fmt.Sprintf("%s falls for %d damage, now facing %s", r.name(p.UnitID), p.Damage, p.Facing)
	case event.UnitDestroyed:
		return fmt.Sprintf("%s destroyed (%s)", r.name(p.UnitID), strings.ReplaceAll(p.Reason, "_", " "))
	case event.PilotHit:
		switch {
		case p.Dead:
			return fmt.Sprintf("%s pilot killed (%s)", r.name(p.UnitID), strings.ReplaceAll(p.Reason, "_", " "))
		case !p.Conscious:
			return fmt.Sprintf("%s pilot knocked out at %d wounds (%s)", r.name(p.UnitID), p.TotalWounds, strings.ReplaceAll(p.Reason, "_", " "))
		default:
			return fmt.Sprintf("%s pilot wounded (%s), %d total", r.name(p.UnitID), strings.ReplaceAll(p.Reason, "_", " "), p.TotalWounds)
		}
	case event.HeatGenerated:
		return fmt.Sprintf("%s builds %d heat (movement %d, weapons %d, engine %d) to %d",
			r.name(p.UnitID), p.Movement+p.Weapons+p.Engine, p.Movement, p.Weapons, p.Engine, p.HeatAfter)
	case event.HeatDissipated:
		return fmt.Sprintf("%s sinks %d heat, now at %d", r.name(p.UnitID), p.Dissipated, p.HeatAfter)
	case event.ShutdownChecked:
		return r.describeShutdown(p)
	case event.Unknown:
		return fmt.Sprintf("Unrecognized event (%s)", p.RawType)
	default:
		return fmt.Sprintf("Unrecognized event (%s)", e.Type)
	}
}

func describeShots(shots []event.Shot) string {
	if len(shots) == 0 {
		return "no attacks"
	}
	parts := make([]string, 0, len(shots))
	for _, s := range shots {
		switch s.Kind {
		case event.ShotPunch:
			parts = append(parts, fmt.Sprintf("punch with %s (needs %d)", s.Limb, s.ToHitNumber))
		case event.ShotKick:
			parts = append(parts, fmt.Sprintf("kick with %s (needs %d)", s.Limb, s.ToHitNumber))
		default:
			parts = append(parts, fmt.Sprintf("%s (needs %d)", s.Weapon, s.ToHitNumber))
		}
	}
	return strings.Join(parts, ", ")
}

func (r *Renderer) describeResolution(p event.AttackResolved) string {
	what := p.Weapon
	if p.Kind == event.ShotPunch || p.Kind == event.ShotKick {
		what = string(p.Kind)
	}
	if p.AutoMiss {
		return fmt.Sprintf("%s %s at %s voided", r.name(p.AttackerID), what, r.name(p.TargetID))
	}
	verdict := "misses"
	if p.Hit {
		verdict = "hits"
	}
	return fmt.Sprintf("%s %s %s with %s (%d vs %d)",
		r.name(p.AttackerID), verdict, r.name(p.TargetID), what, p.Roll, p.ToHitNumber)
}

func (r *Renderer) describeShutdown(p event.ShutdownChecked) string {
	name := r.name(p.UnitID)
	switch p.Check {
	case "restart":
		return fmt.Sprintf("%s reactor restarts at %d heat", name, p.Heat)
	case "ammo":
		if p.Automatic {
			return fmt.Sprintf("%s ammunition cooks off at %d heat", name, p.Heat)
		}
		return fmt.Sprintf("%s ammunition check at %d heat: %d vs %d", name, p.Heat, p.Roll, p.TargetNumber)
	default:
		switch {
		case p.Automatic && p.ShutDown:
			return fmt.Sprintf("%s shuts down at %d heat", name, p.Heat)
		case p.ShutDown:
			return fmt.Sprintf("%s fails shutdown check at %d heat (%d vs %d)", name, p.Heat, p.Roll, p.TargetNumber)
		default:
			return fmt.Sprintf("%s rides out %d heat (%d vs %d)", name, p.Heat, p.Roll, p.TargetNumber)
		}
	}
}
