package unit

import (
	"strings"
	"testing"

	"github.com/hexmek/hexmek/internal/game/board"
)

func TestRollLocationTable(t *testing.T) {
	tests := []struct {
		roll int
		want Location
	}{
		{2, LocCenterTorso},
		{3, LocRightArm},
		{4, LocRightArm},
		{5, LocRightLeg},
		{6, LocRightTorso},
		{7, LocCenterTorso},
		{8, LocLeftTorso},
		{9, LocLeftLeg},
		{10, LocLeftArm},
		{11, LocLeftArm},
		{12, LocHead},
	}
	for _, tt := range tests {
		if got := RollLocation(tt.roll); got != tt.want {
			t.Fatalf("RollLocation(%d) = %s, want %s", tt.roll, got, tt.want)
		}
	}
}

func TestTransferTargets(t *testing.T) {
	tests := []struct {
		loc  Location
		want Location
		ok   bool
	}{
		{LocLeftArm, LocLeftTorso, true},
		{LocLeftLeg, LocLeftTorso, true},
		{LocRightArm, LocRightTorso, true},
		{LocRightLeg, LocRightTorso, true},
		{LocLeftTorso, LocCenterTorso, true},
		{LocRightTorso, LocCenterTorso, true},
		{LocCenterTorso, LocCenterTorso, false},
		{LocHead, LocHead, false},
	}
	for _, tt := range tests {
		got, ok := tt.loc.TransferTarget()
		if got != tt.want || ok != tt.ok {
			t.Fatalf("%s.TransferTarget() = %s, %v, want %s, %v", tt.loc, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStructureForTonnage(t *testing.T) {
	got := StructureForTonnage(50)
	want := [NumLocations]int{3, 16, 12, 12, 8, 8, 12, 12}
	if got != want {
		t.Fatalf("StructureForTonnage(50) = %v, want %v", got, want)
	}

	// Off-table tonnages round down to the nearest listed weight class.
	if got, want := StructureForTonnage(52), StructureForTonnage(50); got != want {
		t.Fatalf("StructureForTonnage(52) = %v, want 50-ton row %v", got, want)
	}
	if got, want := StructureForTonnage(100), [NumLocations]int{3, 31, 21, 21, 17, 17, 21, 21}; got != want {
		t.Fatalf("StructureForTonnage(100) = %v, want %v", got, want)
	}
}

func TestLocationPredicates(t *testing.T) {
	if !LocLeftArm.IsArm() || LocLeftLeg.IsArm() {
		t.Fatal("IsArm misclassifies")
	}
	if !LocRightLeg.IsLeg() || LocRightArm.IsLeg() {
		t.Fatal("IsLeg misclassifies")
	}
	if !LocLeftTorso.IsTorso() || LocHead.IsTorso() {
		t.Fatal("IsTorso misclassifies")
	}
	if LocHead.String() != "HD" || LocCenterTorso.String() != "CT" {
		t.Fatalf("String() = %s/%s, want HD/CT", LocHead, LocCenterTorso)
	}
}

func TestWeaponCatalog(t *testing.T) {
	ml, err := LookupWeapon("Medium Laser")
	if err != nil {
		t.Fatalf("LookupWeapon(Medium Laser) error: %v", err)
	}
	if ml.Damage != 5 || ml.Heat != 3 || ml.LongRange != 9 {
		t.Fatalf("Medium Laser = %+v", ml)
	}
	if ml.UsesAmmo() {
		t.Fatal("Medium Laser should not use ammo")
	}

	ac, err := LookupWeapon("AC/20")
	if err != nil {
		t.Fatalf("LookupWeapon(AC/20) error: %v", err)
	}
	if ac.Damage != 20 || ac.RoundsPerTon != 5 || !ac.UsesAmmo() {
		t.Fatalf("AC/20 = %+v", ac)
	}

	if _, err := LookupWeapon("Death Ray"); err == nil {
		t.Fatal("expected unknown-weapon error")
	}
}

func validSpec() Spec {
	return Spec{
		ID: "archer", Name: "Archer", Side: SidePlayer,
		Tonnage: 50, WalkMP: 4, JumpMP: 3, Gunnery: 4, Piloting: 5, HeatSinks: 12,
		Position: board.Coord{Col: 5, Row: 5}, Facing: board.FacingSE,
		Armor: [NumLocations]int{5, 11, 9, 9, 7, 7, 8, 8},
		Mounts: []Mount{
			{ID: "ml1", Weapon: "Medium Laser", Location: LocRightArm},
			{ID: "ac1", Weapon: "AC/20", Location: LocRightTorso},
		},
		Ammo: []AmmoBin{
			{ID: "ac1-ammo", Weapon: "AC/20", Location: LocRightTorso, Rounds: 5},
		},
	}
}

func TestSpecValidate(t *testing.T) {
	if err := validSpec().Validate(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Spec)
		wantSub string
	}{
		{"blank id", func(s *Spec) { s.ID = " " }, "id is required"},
		{"bad side", func(s *Spec) { s.Side = "neutral" }, "invalid side"},
		{"too light", func(s *Spec) { s.Tonnage = 15 }, "tonnage"},
		{"too heavy", func(s *Spec) { s.Tonnage = 120 }, "tonnage"},
		{"negative walk", func(s *Spec) { s.WalkMP = -1 }, "negative movement"},
		{"negative gunnery", func(s *Spec) { s.Gunnery = -2 }, "negative pilot skills"},
		{"unknown weapon", func(s *Spec) { s.Mounts[0].Weapon = "Death Ray" }, "unknown weapon"},
		{"duplicate mount", func(s *Spec) { s.Mounts[1].ID = "ml1" }, "duplicate mount"},
		{"ammo for energy weapon", func(s *Spec) { s.Ammo[0].Weapon = "Medium Laser" }, "energy weapon"},
		{"negative rounds", func(s *Spec) { s.Ammo[0].Rounds = -1 }, "negative rounds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validSpec()
			tt.mutate(&spec)
			err := spec.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestPopulateSlotsStandardLayout(t *testing.T) {
	spec := validSpec()
	spec.PopulateSlots()

	head := spec.Slots[LocHead]
	if len(head) != 5 || head[2].Component != ComponentCockpit {
		t.Fatalf("head slots = %v", head)
	}

	ct := spec.Slots[LocCenterTorso]
	engines, gyros := 0, 0
	for _, slot := range ct {
		switch slot.Component {
		case ComponentEngine:
			engines++
		case ComponentGyro:
			gyros++
		}
	}
	if engines != 3 || gyros != 4 {
		t.Fatalf("center torso = %d engine, %d gyro slots, want 3 and 4", engines, gyros)
	}

	ra := spec.Slots[LocRightArm]
	if len(ra) != 5 {
		t.Fatalf("right arm slots = %v", ra)
	}
	wantArm := []Component{ComponentShoulder, ComponentUpperArm, ComponentLowerArm, ComponentHand}
	for i, c := range wantArm {
		if ra[i].Component != c {
			t.Fatalf("right arm slot %d = %s, want %s", i, ra[i].Component, c)
		}
	}
	if ra[4].Component != ComponentWeapon || ra[4].Name != "ml1" {
		t.Fatalf("right arm mount slot = %+v", ra[4])
	}

	rt := spec.Slots[LocRightTorso]
	var foundAmmo, foundWeapon bool
	for _, slot := range rt {
		if slot.Component == ComponentAmmo && slot.Name == "ac1-ammo" {
			foundAmmo = true
		}
		if slot.Component == ComponentWeapon && slot.Name == "ac1" {
			foundWeapon = true
		}
	}
	if !foundAmmo || !foundWeapon {
		t.Fatalf("right torso missing mount or bin: %v", rt)
	}

	// 3 jump jets split across the legs, 2 extra heat sinks in the torsos.
	jets := 0
	for _, leg := range []Location{LocLeftLeg, LocRightLeg} {
		for _, slot := range spec.Slots[leg] {
			if slot.Component == ComponentJumpJet {
				jets++
			}
		}
	}
	if jets != 3 {
		t.Fatalf("jump jet slots = %d, want 3", jets)
	}
	sinks := 0
	for _, torso := range []Location{LocLeftTorso, LocRightTorso} {
		for _, slot := range spec.Slots[torso] {
			if slot.Component == ComponentHeatSink {
				sinks++
			}
		}
	}
	if sinks != 2 {
		t.Fatalf("external heat sink slots = %d, want 2", sinks)
	}
}

func TestSpecLookups(t *testing.T) {
	spec := validSpec()
	if m, ok := spec.MountByID("ac1"); !ok || m.Weapon != "AC/20" {
		t.Fatalf("MountByID(ac1) = %+v, %v", m, ok)
	}
	if _, ok := spec.MountByID("missing"); ok {
		t.Fatal("MountByID(missing) should fail")
	}
	if bin, ok := spec.AmmoBinFor("AC/20"); !ok || bin.ID != "ac1-ammo" {
		t.Fatalf("AmmoBinFor(AC/20) = %+v, %v", bin, ok)
	}
	if _, ok := spec.AmmoBinFor("PPC"); ok {
		t.Fatal("AmmoBinFor(PPC) should fail")
	}
}

func TestSideOpponent(t *testing.T) {
	if SidePlayer.Opponent() != SideOpponent || SideOpponent.Opponent() != SidePlayer {
		t.Fatal("Opponent() does not flip sides")
	}
	if Side("neutral").IsValid() {
		t.Fatal("unexpected valid side")
	}
}
