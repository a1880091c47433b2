package calc

import (
	"fmt"
	"strings"
)

// Activity identifies the sport whose physical constants apply.
type Activity string

const (
	Cycling      Activity = "cycling"
	Running      Activity = "running"
	Walking      Activity = "walking"
	SpeedSkating Activity = "speedskating"
)

// Activities lists every supported activity in display order.
var Activities = []Activity{Cycling, Running, Walking, SpeedSkating}

// Default environment constants shared by all activities.
const (
	DefaultGravity    = 9.81  // m/s^2
	DefaultAirDensity = 1.293 // kg/m^3 at 0°C, sea level
)

// Constants holds the physical constant set for one activity.
type Constants struct {
	Gravity    float64 // m/s^2
	AirDensity float64 // kg/m^3
	CdA        float64 // drag coefficient times frontal area, m^2
	Crr        float64 // rolling (or ice friction) resistance coefficient

	// HumanEfficiency is the fraction of metabolic energy that ends up as
	// mechanical work. Around 0.25 for endurance sports.
	HumanEfficiency float64

	// DrivetrainEfficiency accounts for mechanical losses between the human
	// and the road (chain, bearings). 1.0 for sports without a drivetrain.
	DrivetrainEfficiency float64
}

// constantsByActivity maps each activity to its constant set.
//
// Cycling uses the conventional racing bike parameters from
// https://www.sheldonbrown.com/rinard/aero/formulas.html. Running and walking
// fold the per-distance cost of locomotion (~1 J/kg/m mechanical for running)
// into Crr, which makes the same roll-resistance formula apply. Speed skating
// uses a published ice friction coefficient and a crouched-position CdA.
var constantsByActivity = map[Activity]Constants{
	Cycling: {
		Gravity:              DefaultGravity,
		AirDensity:           DefaultAirDensity,
		CdA:                  0.39,
		Crr:                  0.003,
		HumanEfficiency:      0.25,
		DrivetrainEfficiency: 0.98,
	},
	Running: {
		Gravity:              DefaultGravity,
		AirDensity:           DefaultAirDensity,
		CdA:                  0.45,
		Crr:                  0.098,
		HumanEfficiency:      0.25,
		DrivetrainEfficiency: 1.0,
	},
	Walking: {
		Gravity:              DefaultGravity,
		AirDensity:           DefaultAirDensity,
		CdA:                  0.60,
		Crr:                  0.070,
		HumanEfficiency:      0.25,
		DrivetrainEfficiency: 1.0,
	},
	SpeedSkating: {
		Gravity:              DefaultGravity,
		AirDensity:           DefaultAirDensity,
		CdA:                  0.26,
		Crr:                  0.0046,
		HumanEfficiency:      0.25,
		DrivetrainEfficiency: 1.0,
	},
}

// ConstantsFor returns the constant set for the given activity.
func ConstantsFor(a Activity) (Constants, error) {
	c, ok := constantsByActivity[a]
	if !ok {
		return Constants{}, fmt.Errorf("%w: unknown activity %q", ErrInvalidConfig, a)
	}
	return c, nil
}

// Validate checks that the constant set can produce a meaningful result.
func (c Constants) Validate() error {
	if c.HumanEfficiency <= 0 || c.HumanEfficiency > 1 {
		return fmt.Errorf("%w: human efficiency %v outside (0, 1]", ErrInvalidConfig, c.HumanEfficiency)
	}
	if c.DrivetrainEfficiency <= 0 || c.DrivetrainEfficiency > 1 {
		return fmt.Errorf("%w: drivetrain efficiency %v outside (0, 1]", ErrInvalidConfig, c.DrivetrainEfficiency)
	}
	if c.Gravity <= 0 {
		return fmt.Errorf("%w: gravity %v must be positive", ErrInvalidConfig, c.Gravity)
	}
	if c.AirDensity <= 0 {
		return fmt.Errorf("%w: air density %v must be positive", ErrInvalidConfig, c.AirDensity)
	}
	if c.CdA < 0 {
		return fmt.Errorf("%w: CdA %v must be non-negative", ErrInvalidConfig, c.CdA)
	}
	if c.Crr < 0 {
		return fmt.Errorf("%w: Crr %v must be non-negative", ErrInvalidConfig, c.Crr)
	}
	return nil
}

// ParseActivity maps user input (CLI argument, config key) to an Activity.
// Accepts a few common aliases.
func ParseActivity(s string) (Activity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cycling", "cycle", "bike", "biking":
		return Cycling, nil
	case "running", "run":
		return Running, nil
	case "walking", "walk":
		return Walking, nil
	case "speedskating", "speed-skating", "skating", "skate":
		return SpeedSkating, nil
	}
	return "", fmt.Errorf("%w: unknown activity %q (want cycling, running, walking or speedskating)", ErrInvalidConfig, s)
}

// Label returns a human-readable name for display.
func (a Activity) Label() string {
	if a == SpeedSkating {
		return "Speed skating"
	}
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:])
}
