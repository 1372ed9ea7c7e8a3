package engine

import (
	"errors"
	"testing"

	"github.com/hexmek/hexmek/internal/game/dice"
	"github.com/hexmek/hexmek/internal/game/event"
	"github.com/hexmek/hexmek/internal/game/phase"
	"github.com/hexmek/hexmek/internal/game/unit"
)

func TestResolveHeatPhaseGuards(t *testing.T) {
	s := newActiveSession(t)
	if _, err := ResolveHeat(s, testNow(), dice.NewScript()); !errors.Is(err, ErrPhaseMismatch) {
		t.Fatalf("expected ErrPhaseMismatch in initiative, got %v", err)
	}

	s = advanceTo(t, s, phase.Heat)
	s, err := ResolveHeat(s, testNow(), dice.NewScript())
	if err != nil {
		t.Fatalf("ResolveHeat() error: %v", err)
	}
	if _, err := ResolveHeat(s, testNow(), dice.NewScript()); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved on second pass, got %v", err)
	}
}

func TestResolveHeatBuildupAndDissipation(t *testing.T) {
	s := walkBothLock(t, newActiveSession(t))
	s = advanceTo(t, s, phase.Heat)

	s, err := ResolveHeat(s, testNow(), dice.NewScript())
	if err != nil {
		t.Fatalf("ResolveHeat() error: %v", err)
	}

	generated := eventsOfType(s, event.TypeHeatGenerated)
	if len(generated) != 2 {
		t.Fatalf("expected both units to generate heat, got %d events", len(generated))
	}
	gp := generated[0].Payload.(event.HeatGenerated)
	if gp.UnitID != "archer" || gp.Movement != 1 || gp.Weapons != 0 || gp.HeatAfter != 1 {
		t.Fatalf("unexpected buildup: %+v", gp)
	}
	// Ten working sinks swallow a single point of walking heat.
	for _, id := range []string{"archer", "brawler"} {
		if got := s.Current.Units[id].Heat; got != 0 {
			t.Fatalf("%s should end the phase at 0 heat, got %d", id, got)
		}
	}
	if n := len(eventsOfType(s, event.TypeShutdownChecked)); n != 0 {
		t.Fatalf("no thresholds reached, got %d checks", n)
	}
	requireDerived(t, s)
}

func TestDamagedSinksReduceDissipation(t *testing.T) {
	s := newActiveSession(t)
	b := s.begin(testNow()())
	u := b.state().Units["brawler"]
	u.Heat = 15
	u.HeatSinkHits = 3

	resolveUnitHeat(b, "brawler", dice.NewScript())
	out := b.done()

	dp := eventsOfType(out, event.TypeHeatDissipated)[0].Payload.(event.HeatDissipated)
	if dp.Capacity != 7 || dp.Dissipated != 7 || dp.HeatAfter != 8 {
		t.Fatalf("unexpected dissipation: %+v", dp)
	}
	if out.Current.Units["brawler"].Heat != 8 {
		t.Fatalf("expected heat 8, got %d", out.Current.Units["brawler"].Heat)
	}
}

func TestShutdownCheckAtHeatBand(t *testing.T) {
	t.Run("failing the roll shuts down", func(t *testing.T) {
		s := newActiveSession(t)
		b := s.begin(testNow()())
		b.state().Units["brawler"].Heat = 25

		// 25 sinks to 15, inside the lowest band: 4+ keeps the reactor up.
		resolveUnitHeat(b, "brawler", dice.NewScript(3))
		out := b.done()

		cp := eventsOfType(out, event.TypeShutdownChecked)[0].Payload.(event.ShutdownChecked)
		if cp.Check != "shutdown" || cp.TargetNumber != 4 || cp.Roll != 3 || !cp.ShutDown || cp.Automatic {
			t.Fatalf("unexpected check: %+v", cp)
		}
		brawler := out.Current.Units["brawler"]
		if !brawler.ShutDown {
			t.Fatal("reactor should be down")
		}
		if len(brawler.PendingPSRs) != 1 || brawler.PendingPSRs[0].Reason != psrReasonShutdown {
			t.Fatalf("shutdown should queue a piloting check, got %+v", brawler.PendingPSRs)
		}
	})

	t.Run("passing the roll stays up", func(t *testing.T) {
		s := newActiveSession(t)
		b := s.begin(testNow()())
		b.state().Units["brawler"].Heat = 25

		resolveUnitHeat(b, "brawler", dice.NewScript(5))
		out := b.done()

		if out.Current.Units["brawler"].ShutDown {
			t.Fatal("roll of 5 against 4 should keep the reactor up")
		}
		if len(out.Current.Units["brawler"].PendingPSRs) != 0 {
			t.Fatal("no piloting check on a passed shutdown roll")
		}
	})
}

func TestAutoShutdownAtThirty(t *testing.T) {
	s := newActiveSession(t)
	b := s.begin(testNow()())
	b.state().Units["brawler"].Heat = 40

	resolveUnitHeat(b, "brawler", dice.NewScript())
	out := b.done()

	cp := eventsOfType(out, event.TypeShutdownChecked)[0].Payload.(event.ShutdownChecked)
	if cp.Check != "shutdown" || !cp.Automatic || !cp.ShutDown || cp.Heat != 30 {
		t.Fatalf("unexpected check: %+v", cp)
	}
	if !out.Current.Units["brawler"].ShutDown {
		t.Fatal("reactor should be down without a roll")
	}
}

func TestShutdownRestartWhenCool(t *testing.T) {
	s := newActiveSession(t)
	b := s.begin(testNow()())
	u := b.state().Units["brawler"]
	u.ShutDown = true
	u.Heat = 10

	resolveUnitHeat(b, "brawler", dice.NewScript())
	out := b.done()

	cp := eventsOfType(out, event.TypeShutdownChecked)[0].Payload.(event.ShutdownChecked)
	if cp.Check != "restart" || !cp.Automatic || cp.ShutDown {
		t.Fatalf("unexpected check: %+v", cp)
	}
	if out.Current.Units["brawler"].ShutDown {
		t.Fatal("cooled reactor should restart")
	}
}

func TestHeatInducedAmmoExplosion(t *testing.T) {
	s := newActiveSession(t)
	b := s.begin(testNow()())
	b.state().Units["archer"].Heat = 29

	// 29 sinks to 19: the shutdown roll of 10 passes the 6+ band, then the
	// ammo roll of 2 misses its 4+ and the autocannon bin cooks off. The
	// blast guts both torsos; the pilot stays conscious on a 7.
	resolveUnitHeat(b, "archer", dice.NewScript(10, 2, 7))
	out := b.done()

	checks := eventsOfType(out, event.TypeShutdownChecked)
	if len(checks) != 2 {
		t.Fatalf("expected shutdown and ammo checks, got %d", len(checks))
	}
	ap := checks[1].Payload.(event.ShutdownChecked)
	if ap.Check != "ammo" || ap.TargetNumber != 4 || ap.Roll != 2 {
		t.Fatalf("unexpected ammo check: %+v", ap)
	}

	ep := eventsOfType(out, event.TypeAmmoExploded)[0].Payload.(event.AmmoExploded)
	if ep.BinID != "ac1-ammo" || ep.Damage != 100 {
		t.Fatalf("unexpected explosion: %+v", ep)
	}
	archer := out.Current.Units["archer"]
	if !archer.Destroyed {
		t.Fatal("a 100-point internal blast should destroy the unit")
	}
	if archer.Ammo["ac1-ammo"] != 0 {
		t.Fatalf("exploded bin should be empty, got %d", archer.Ammo["ac1-ammo"])
	}
}

func TestDestroyedLifeSupportCooksPilot(t *testing.T) {
	s := newActiveSession(t)
	b := s.begin(testNow()())
	u := b.state().Units["brawler"]
	u.Heat = 25
	u.LifeSupportHits = 2

	// Shutdown roll 7 passes; the pilot's consciousness roll 5 beats the
	// one-wound threshold.
	resolveUnitHeat(b, "brawler", dice.NewScript(7, 5))
	out := b.done()

	hits := eventsOfType(out, event.TypePilotHit)
	if len(hits) != 1 {
		t.Fatalf("expected 1 pilot hit, got %d", len(hits))
	}
	ph := hits[0].Payload.(event.PilotHit)
	if ph.Reason != "life_support" || ph.Wounds != 1 || !ph.Conscious {
		t.Fatalf("unexpected pilot hit: %+v", ph)
	}
}

func TestSingleLifeSupportHitSparesPilot(t *testing.T) {
	s := newActiveSession(t)
	b := s.begin(testNow()())
	u := b.state().Units["brawler"]
	u.Heat = 25
	u.LifeSupportHits = 1

	// Only the shutdown roll consumes dice; one hit leaves the system working.
	resolveUnitHeat(b, "brawler", dice.NewScript(7))
	out := b.done()

	if hits := eventsOfType(out, event.TypePilotHit); len(hits) != 0 {
		t.Fatalf("expected no pilot hits, got %d", len(hits))
	}
}

// TestFullTurnScenario plays one complete turn: initiative, movement under
// locks, a laser hit, heat buildup fully dissipated, and the wrap to turn two.
func TestFullTurnScenario(t *testing.T) {
	s := newActiveSession(t)

	s, err := RollInitiative(s, "", testNow(), dice.NewScript(8, 5))
	if err != nil {
		t.Fatalf("RollInitiative() error: %v", err)
	}
	if s.Current.InitiativeWinner != unit.SidePlayer || s.Current.MovesFirst != unit.SideOpponent {
		t.Fatalf("unexpected initiative: winner %s, moves first %s", s.Current.InitiativeWinner, s.Current.MovesFirst)
	}

	s = walkBothLock(t, s)
	s = advanceTo(t, s, phase.WeaponAttack)

	s, err = DeclareAttack(s, AttackInput{AttackerID: "archer", TargetID: "brawler", MountIDs: []string{"ml1"}}, testNow())
	if err != nil {
		t.Fatalf("DeclareAttack() error: %v", err)
	}
	s = lockAll(t, s)
	s, err = ResolveAttacks(s, testNow(), dice.NewScript(9, 7))
	if err != nil {
		t.Fatalf("ResolveAttacks() error: %v", err)
	}
	if got := s.Current.Units["brawler"].Armor[unit.LocCenterTorso]; got != 6 {
		t.Fatalf("expected 6 CT armor after the laser hit, got %d", got)
	}

	s = advanceTo(t, s, phase.Heat)
	s, err = ResolveHeat(s, testNow(), dice.NewScript())
	if err != nil {
		t.Fatalf("ResolveHeat() error: %v", err)
	}
	gp := eventsOfType(s, event.TypeHeatGenerated)[0].Payload.(event.HeatGenerated)
	if gp.UnitID != "archer" || gp.Movement != 1 || gp.Weapons != 3 || gp.HeatAfter != 4 {
		t.Fatalf("unexpected buildup: %+v", gp)
	}
	if s.Current.Units["archer"].Heat != 0 {
		t.Fatalf("ten sinks should clear 4 heat, got %d", s.Current.Units["archer"].Heat)
	}

	s = advanceTo(t, s, phase.End)
	s, err = AdvancePhase(s, testNow())
	if err != nil {
		t.Fatalf("AdvancePhase() to turn 2: %v", err)
	}
	if s.Current.Turn != 2 || s.Current.Phase != phase.Initiative {
		t.Fatalf("expected turn 2 initiative, got turn %d %s", s.Current.Turn, s.Current.Phase)
	}
	if s.Current.InitiativeWinner != "" {
		t.Fatal("initiative should reset at the turn wrap")
	}
	archer := s.Current.Units["archer"]
	if archer.WeaponHeat != 0 || archer.HexesMoved != 0 || archer.MovementLocked {
		t.Fatalf("per-turn tracking should reset: %+v", archer)
	}
	requireDerived(t, s)
}
