package units

import "fmt"

// Display unit names accepted in config.
const (
	EnergyKJ   = "kJ"
	EnergyKcal = "kcal"
	SpeedKmh   = "km/h"
	SpeedMph   = "mph"
)

// Formatter renders physical quantities in the user's preferred units.
type Formatter struct {
	EnergyUnit string // "kJ" or "kcal"
	SpeedUnit  string // "km/h" or "mph"
}

// FormatPower renders a power in watts.
func (f Formatter) FormatPower(watts float64) string {
	return fmt.Sprintf("%.0f W", watts)
}

// FormatEnergy renders an energy given in joules in the preferred unit.
func (f Formatter) FormatEnergy(joules float64) string {
	if f.EnergyUnit == EnergyKcal {
		return fmt.Sprintf("%.0f kcal", JToKcal(joules))
	}
	return fmt.Sprintf("%.1f kJ", JToKJ(joules))
}

// FormatSpeed renders a speed given in km/h in the preferred unit.
func (f Formatter) FormatSpeed(kmh float64) string {
	if f.SpeedUnit == SpeedMph {
		return fmt.Sprintf("%.1f mph", KmhToMph(kmh))
	}
	return fmt.Sprintf("%.1f km/h", kmh)
}

// FormatMass renders a mass in kilograms.
func (f Formatter) FormatMass(kg float64) string {
	return fmt.Sprintf("%.1f kg", kg)
}

// SpeedValue converts a speed in km/h to the preferred display unit.
func (f Formatter) SpeedValue(kmh float64) float64 {
	if f.SpeedUnit == SpeedMph {
		return KmhToMph(kmh)
	}
	return kmh
}
