// Package unit defines the static description of combat units: locations,
// internal structure, critical slots, weapons, and rosters.
package unit

// Location identifies one of the eight armor/structure sections of a unit.
type Location int

const (
	LocHead Location = iota
	LocCenterTorso
	LocLeftTorso
	LocRightTorso
	LocLeftArm
	LocRightArm
	LocLeftLeg
	LocRightLeg
	NumLocations
)

var locationNames = [NumLocations]string{"HD", "CT", "LT", "RT", "LA", "RA", "LL", "RL"}

func (l Location) String() string {
	if l < 0 || l >= NumLocations {
		return "??"
	}
	return locationNames[l]
}

// IsArm reports whether the location is an arm.
func (l Location) IsArm() bool { return l == LocLeftArm || l == LocRightArm }

// IsLeg reports whether the location is a leg.
func (l Location) IsLeg() bool { return l == LocLeftLeg || l == LocRightLeg }

// IsLimb reports whether the location is an arm or leg.
func (l Location) IsLimb() bool { return l.IsArm() || l.IsLeg() }

// IsTorso reports whether the location is a torso section.
func (l Location) IsTorso() bool {
	return l == LocCenterTorso || l == LocLeftTorso || l == LocRightTorso
}

// TransferTarget returns the location damage transfers to when this location
// is already destroyed: arms and legs feed their adjacent torso, side torsos
// feed the center torso. The head and center torso have no transfer target.
func (l Location) TransferTarget() (Location, bool) {
	switch l {
	case LocLeftArm, LocLeftLeg:
		return LocLeftTorso, true
	case LocRightArm, LocRightLeg:
		return LocRightTorso, true
	case LocLeftTorso, LocRightTorso:
		return LocCenterTorso, true
	default:
		return l, false
	}
}

// hitTable maps a 2d6 roll (index roll-2) to the struck location.
var hitTable = [11]Location{
	LocCenterTorso, // 2 (also triggers a through-armor critical check)
	LocRightArm,    // 3
	LocRightArm,    // 4
	LocRightLeg,    // 5
	LocRightTorso,  // 6
	LocCenterTorso, // 7
	LocLeftTorso,   // 8
	LocLeftLeg,     // 9
	LocLeftArm,     // 10
	LocLeftArm,     // 11
	LocHead,        // 12
}

// RollLocation maps a 2d6 hit-location roll to the struck location.
func RollLocation(roll int) Location {
	if roll < 2 {
		roll = 2
	}
	if roll > 12 {
		roll = 12
	}
	return hitTable[roll-2]
}

// HeadDamageCap is the maximum damage a single hit applies to the head.
const HeadDamageCap = 3

// structureTable holds internal structure points per location by tonnage.
var structureTable = map[int][NumLocations]int{
	20:  {3, 6, 5, 5, 3, 3, 4, 4},
	25:  {3, 8, 6, 6, 4, 4, 6, 6},
	30:  {3, 10, 7, 7, 5, 5, 7, 7},
	35:  {3, 11, 8, 8, 6, 6, 8, 8},
	40:  {3, 12, 10, 10, 6, 6, 10, 10},
	45:  {3, 14, 11, 11, 7, 7, 11, 11},
	50:  {3, 16, 12, 12, 8, 8, 12, 12},
	55:  {3, 18, 13, 13, 9, 9, 13, 13},
	60:  {3, 20, 14, 14, 10, 10, 14, 14},
	65:  {3, 21, 15, 15, 10, 10, 15, 15},
	70:  {3, 22, 15, 15, 11, 11, 15, 15},
	75:  {3, 23, 16, 16, 12, 12, 16, 16},
	80:  {3, 25, 17, 17, 13, 13, 17, 17},
	85:  {3, 27, 18, 18, 14, 14, 18, 18},
	90:  {3, 29, 19, 19, 15, 15, 19, 19},
	95:  {3, 30, 20, 20, 16, 16, 20, 20},
	100: {3, 31, 21, 21, 17, 17, 21, 21},
}

// StructureForTonnage returns internal structure points per location for the
// given tonnage, rounding down to the nearest listed weight class.
func StructureForTonnage(tons int) [NumLocations]int {
	if v, ok := structureTable[tons]; ok {
		return v
	}
	best := 20
	for t := range structureTable {
		if t <= tons && t > best {
			best = t
		}
	}
	return structureTable[best]
}
