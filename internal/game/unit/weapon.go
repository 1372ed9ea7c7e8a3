package unit

import "fmt"

// WeaponClass groups weapons by how they feed and generate heat.
type WeaponClass string

const (
	// WeaponEnergy weapons draw from the reactor and consume no ammunition.
	WeaponEnergy WeaponClass = "energy"
	// WeaponBallistic weapons consume ammunition from a bin.
	WeaponBallistic WeaponClass = "ballistic"
	// WeaponMissile weapons consume ammunition from a bin.
	WeaponMissile WeaponClass = "missile"
)

// Weapon describes a weapon type from the catalog.
type Weapon struct {
	Name       string      `json:"name" yaml:"name"`
	Class      WeaponClass `json:"class" yaml:"class"`
	Damage     int         `json:"damage" yaml:"damage"`
	Heat       int         `json:"heat" yaml:"heat"`
	MinRange   int         `json:"min_range" yaml:"min_range"`
	ShortRange int         `json:"short_range" yaml:"short_range"`
	MedRange   int         `json:"med_range" yaml:"med_range"`
	LongRange  int         `json:"long_range" yaml:"long_range"`
	// RoundsPerTon is the ammunition bin capacity for non-energy weapons.
	RoundsPerTon int `json:"rounds_per_ton,omitempty" yaml:"rounds_per_ton,omitempty"`
}

// UsesAmmo reports whether firing the weapon consumes ammunition.
func (w Weapon) UsesAmmo() bool { return w.Class != WeaponEnergy }

// catalog holds the standard weapon types available to rosters.
var catalog = map[string]Weapon{
	"Small Laser":  {Name: "Small Laser", Class: WeaponEnergy, Damage: 3, Heat: 1, ShortRange: 1, MedRange: 2, LongRange: 3},
	"Medium Laser": {Name: "Medium Laser", Class: WeaponEnergy, Damage: 5, Heat: 3, ShortRange: 3, MedRange: 6, LongRange: 9},
	"Large Laser":  {Name: "Large Laser", Class: WeaponEnergy, Damage: 8, Heat: 8, ShortRange: 5, MedRange: 10, LongRange: 15},
	"Flamer":       {Name: "Flamer", Class: WeaponEnergy, Damage: 2, Heat: 3, ShortRange: 1, MedRange: 2, LongRange: 3},
	"PPC":          {Name: "PPC", Class: WeaponEnergy, Damage: 10, Heat: 10, MinRange: 3, ShortRange: 6, MedRange: 12, LongRange: 18},
	"AC/2":         {Name: "AC/2", Class: WeaponBallistic, Damage: 2, Heat: 1, MinRange: 4, ShortRange: 8, MedRange: 16, LongRange: 24, RoundsPerTon: 45},
	"AC/5":         {Name: "AC/5", Class: WeaponBallistic, Damage: 5, Heat: 1, MinRange: 3, ShortRange: 6, MedRange: 12, LongRange: 18, RoundsPerTon: 20},
	"AC/10":        {Name: "AC/10", Class: WeaponBallistic, Damage: 10, Heat: 3, ShortRange: 5, MedRange: 10, LongRange: 15, RoundsPerTon: 10},
	"AC/20":        {Name: "AC/20", Class: WeaponBallistic, Damage: 20, Heat: 7, ShortRange: 3, MedRange: 6, LongRange: 9, RoundsPerTon: 5},
	"Machine Gun":  {Name: "Machine Gun", Class: WeaponBallistic, Damage: 2, Heat: 0, ShortRange: 1, MedRange: 2, LongRange: 3, RoundsPerTon: 200},
}

// LookupWeapon returns the catalog entry for a weapon name.
func LookupWeapon(name string) (Weapon, error) {
	w, ok := catalog[name]
	if !ok {
		return Weapon{}, fmt.Errorf("unknown weapon %q", name)
	}
	return w, nil
}

// WeaponNames returns the catalog weapon names. Order is unspecified.
func WeaponNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	return names
}

// Mount places a catalog weapon in a unit location.
type Mount struct {
	ID       string   `json:"id" yaml:"id"`
	Weapon   string   `json:"weapon" yaml:"weapon"`
	Location Location `json:"location" yaml:"location"`
}

// AmmoBin holds ammunition for one weapon type in one location.
type AmmoBin struct {
	ID       string   `json:"id" yaml:"id"`
	Weapon   string   `json:"weapon" yaml:"weapon"`
	Location Location `json:"location" yaml:"location"`
	Rounds   int      `json:"rounds" yaml:"rounds"`
}
