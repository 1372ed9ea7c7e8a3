package engine

import (
	"fmt"
	"time"

	"github.com/hexmek/hexmek/internal/game/dice"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
)

// Heat scale thresholds.
const (
	heatAutoShutdown = 30
	engineHeatPerHit = 5
)

// shutdownTarget returns the 2d6 number a running reactor must meet to stay
// up at the given heat, and whether a check is due at all.
func shutdownTarget(heat int) (int, bool) {
	switch {
	case heat >= 26:
		return 10, true
	case heat >= 22:
		return 8, true
	case heat >= 18:
		return 6, true
	case heat >= 14:
		return 4, true
	default:
		return 0, false
	}
}

// ammoExplosionTarget returns the 2d6 number that avoids a heat-induced
// ammunition explosion, and whether a check is due.
func ammoExplosionTarget(heat int) (int, bool) {
	switch {
	case heat >= 28:
		return 8, true
	case heat >= 23:
		return 6, true
	case heat >= 19:
		return 4, true
	default:
		return 0, false
	}
}

// ResolveHeat runs the heat phase for every surviving unit in id order:
// buildup from movement, weapons fired, and engine damage; dissipation from
// working heat sinks; then the threshold checks: reactor shutdown (automatic
// at 30), heat-induced ammunition explosion, and pilot damage through
// damaged life support. A reactor shut down earlier restarts once heat falls
// below the lowest shutdown band. Piloting checks queued by a shutdown roll
// resolve before moving to the next unit.
func ResolveHeat(s Session, now func() time.Time, r dice.Roller) (Session, error) {
	if s.Current.Status != StatusActive {
		return s, fmt.Errorf("resolve heat: status %s: %w", s.Current.Status, ErrLifecycleViolation)
	}
	if s.Current.Phase != phase.Heat {
		return s, fmt.Errorf("resolve heat: phase %s: %w", s.Current.Phase, ErrPhaseMismatch)
	}
	if s.Current.HeatResolved {
		return s, fmt.Errorf("resolve heat: turn %d: %w", s.Current.Turn, ErrAlreadyResolved)
	}

	b := s.begin(now().UTC())
	for _, id := range s.Current.UnitIDs() {
		if b.state().Status != StatusActive {
			break
		}
		u, _ := b.unitFor(id)
		if u == nil || u.Destroyed {
			continue
		}
		resolveUnitHeat(b, id, r)
		resolvePSRBatch(b, id, r)
		checkElimination(b)
	}
	return b.done(), nil
}

func resolveUnitHeat(b *builder, unitID string, r dice.Roller) {
	u, _ := b.unitFor(unitID)

	engineHeat := engineHeatPerHit * u.EngineHits
	afterBuildup := u.Heat + u.MoveHeat + u.WeaponHeat + engineHeat
	b.emit(event.HeatGenerated{
		UnitID:    unitID,
		Movement:  u.MoveHeat,
		Weapons:   u.WeaponHeat,
		Engine:    engineHeat,
		HeatAfter: afterBuildup,
	})

	capacity := u.WorkingHeatSinks()
	dissipated := min(capacity, afterBuildup)
	heat := afterBuildup - dissipated
	b.emit(event.HeatDissipated{
		UnitID:     unitID,
		Capacity:   capacity,
		Dissipated: dissipated,
		HeatAfter:  heat,
	})

	u, _ = b.unitFor(unitID)
	switch {
	case u.ShutDown:
		if _, due := shutdownTarget(heat); !due {
			b.emit(event.ShutdownChecked{
				UnitID:    unitID,
				Check:     "restart",
				Heat:      heat,
				ShutDown:  false,
				Automatic: true,
			})
		}
	case heat >= heatAutoShutdown:
		b.emit(event.ShutdownChecked{
			UnitID:    unitID,
			Check:     "shutdown",
			Heat:      heat,
			ShutDown:  true,
			Automatic: true,
		})
		queuePSR(b, unitID, psrReasonShutdown, 3)
	default:
		if target, due := shutdownTarget(heat); due {
			roll := r.TwoD6()
			down := roll < target
			b.emit(event.ShutdownChecked{
				UnitID:       unitID,
				Check:        "shutdown",
				Heat:         heat,
				TargetNumber: target,
				Roll:         roll,
				ShutDown:     down,
			})
			if down {
				queuePSR(b, unitID, psrReasonShutdown, 3)
			}
		}
	}

	if target, due := ammoExplosionTarget(heat); due || heat >= heatAutoShutdown {
		if binID, ok := mostVolatileBin(u); ok {
			exploded := heat >= heatAutoShutdown
			if !exploded {
				roll := r.TwoD6()
				exploded = roll < target
				b.emit(event.ShutdownChecked{
					UnitID:       unitID,
					Check:        "ammo",
					Heat:         heat,
					TargetNumber: target,
					Roll:         roll,
					ShutDown:     u.ShutDown,
				})
			} else {
				b.emit(event.ShutdownChecked{
					UnitID:    unitID,
					Check:     "ammo",
					Heat:      heat,
					ShutDown:  u.ShutDown,
					Automatic: true,
				})
			}
			if exploded {
				explodeAmmoBin(b, unitID, binID, r)
			}
		}
	}

	u, _ = b.unitFor(unitID)
	if u != nil && !u.Destroyed && u.LifeSupportDestroyed() && heat >= 15 {
		wounds := 1
		if heat >= 26 {
			wounds = 2
		}
		pilotWound(b, unitID, "life_support", wounds, r)
	}

	checkUnitDestruction(b, unitID)
}

// mostVolatileBin picks the loaded bin whose explosion would hurt most.
func mostVolatileBin(u *UnitState) (string, bool) {
	bestID := ""
	bestDamage := 0
	for _, bin := range u.Spec.Ammo {
		rounds := u.Ammo[bin.ID]
		if rounds == 0 || u.LocationDestroyed[bin.Location] {
			continue
		}
		w, err := unit.LookupWeapon(bin.Weapon)
		if err != nil {
			continue
		}
		if damage := rounds * w.Damage; damage > bestDamage {
			bestDamage = damage
			bestID = bin.ID
		}
	}
	return bestID, bestID != ""
}
