package unit

// Component identifies what occupies a critical slot.
type Component string

const (
	ComponentEngine      Component = "engine"
	ComponentGyro        Component = "gyro"
	ComponentCockpit     Component = "cockpit"
	ComponentSensors     Component = "sensors"
	ComponentLifeSupport Component = "life_support"
	ComponentHeatSink    Component = "heat_sink"
	ComponentJumpJet     Component = "jump_jet"
	ComponentWeapon      Component = "weapon"
	ComponentAmmo        Component = "ammo"

	ComponentShoulder      Component = "shoulder"
	ComponentUpperArm      Component = "upper_arm_actuator"
	ComponentLowerArm      Component = "lower_arm_actuator"
	ComponentHand          Component = "hand_actuator"
	ComponentHip           Component = "hip"
	ComponentUpperLeg      Component = "upper_leg_actuator"
	ComponentLowerLeg      Component = "lower_leg_actuator"
	ComponentFoot          Component = "foot_actuator"
)

// IsActuator reports whether the component is one of the eight actuator types.
func (c Component) IsActuator() bool {
	switch c {
	case ComponentShoulder, ComponentUpperArm, ComponentLowerArm, ComponentHand,
		ComponentHip, ComponentUpperLeg, ComponentLowerLeg, ComponentFoot:
		return true
	}
	return false
}

// CritSlot is one critical slot in a location's manifest.
type CritSlot struct {
	// Component identifies the occupant; empty slots carry the zero value.
	Component Component `json:"component" yaml:"component"`
	// Name disambiguates weapons and ammo bins (weapon mount id or ammo bin id).
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Occupied reports whether the slot holds equipment.
func (s CritSlot) Occupied() bool { return s.Component != "" }
