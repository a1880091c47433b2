// Package calc implements the physical effort model: the minimal mechanical
// power needed to sustain a constant speed against drag, rolling resistance
// and gravity, and the metabolic energy that power costs over a duration.
//
// The model is a deterministic lower bound. It assumes zero wind, no
// drafting, constant speed and a constant grade. Every function here is pure;
// concurrent calls are safe.
package calc

import (
	"fmt"
	"math"

	"sportcalc/internal/units"
)

// Params are the inputs to one effort computation, in the human-friendly
// units the front-ends collect.
type Params struct {
	Activity      Activity
	MassKg        float64 // human + equipment
	SpeedKmh      float64
	DurationHours float64
	AscentM       float64 // total climb, optional
	DescentM      float64 // total descent, optional

	// AirDensityKgpm3 overrides the activity default when positive.
	AirDensityKgpm3 float64
}

// PowerBreakdown decomposes the total mechanical power into its additive
// loss terms. All values are watts, measured where the human delivers the
// work (pedal side for cycling, so drivetrain losses are included).
type PowerBreakdown struct {
	DragW    float64
	RollingW float64
	GravityW float64
	TotalW   float64
}

// EnergyResult is the mechanical work over the duration and the metabolic
// energy it costs given the human efficiency.
type EnergyResult struct {
	MechanicalJ float64
	MetabolicJ  float64
}

// MechanicalKJ returns the mechanical work in kilojoules.
func (e EnergyResult) MechanicalKJ() float64 { return units.JToKJ(e.MechanicalJ) }

// MetabolicKJ returns the metabolic energy in kilojoules.
func (e EnergyResult) MetabolicKJ() float64 { return units.JToKJ(e.MetabolicJ) }

// MetabolicKcal returns the metabolic energy in kilocalories.
func (e EnergyResult) MetabolicKcal() float64 { return units.JToKcal(e.MetabolicJ) }

// Estimate is the full result of one effort computation.
type Estimate struct {
	Params    Params
	Constants Constants
	Power     PowerBreakdown
	Energy    EnergyResult
}

// DragPower returns the power in watts needed to overcome aerodynamic drag
// at the given speed: 0.5 * rho * CdA * v^3. Zero at zero speed and
// monotonically non-decreasing in speed.
func DragPower(speedMS, airDensity, cda float64) float64 {
	return 0.5 * airDensity * cda * speedMS * speedMS * speedMS
}

// RollingPower returns the power in watts needed to overcome rolling (or ice
// friction) resistance: Crr * m * g * v. The resistive force is independent
// of speed in this model, so the power is linear in speed and in mass.
func RollingPower(massKg, gravity, crr, speedMS float64) float64 {
	return crr * massKg * gravity * speedMS
}

// GravityPower returns the average power in watts needed to lift the mass by
// netClimbM over durationS. Negative when descending more than climbing;
// zero when the duration is zero.
func GravityPower(massKg, gravity, netClimbM, durationS float64) float64 {
	if durationS <= 0 {
		return 0
	}
	return massKg * gravity * netClimbM / durationS
}

// ComputeBreakdown sums the loss terms that apply to the activity's built-in
// constant set. See ComputeBreakdownWith.
func ComputeBreakdown(p Params) (PowerBreakdown, error) {
	c, err := ConstantsFor(p.Activity)
	if err != nil {
		return PowerBreakdown{}, err
	}
	return ComputeBreakdownWith(p, c)
}

// ComputeBreakdownWith sums the loss terms for the given constant set. At
// zero speed every term is zero: no static friction is modeled. On a net
// descent the gravity term is capped so the total never goes negative (you
// cannot get energy back out of freewheeling here).
func ComputeBreakdownWith(p Params, c Constants) (PowerBreakdown, error) {
	if p.AirDensityKgpm3 > 0 {
		c.AirDensity = p.AirDensityKgpm3
	}
	if err := c.Validate(); err != nil {
		return PowerBreakdown{}, err
	}
	if err := validateParams(p); err != nil {
		return PowerBreakdown{}, err
	}

	if p.SpeedKmh == 0 {
		return PowerBreakdown{}, nil
	}

	speedMS := units.KmhToMs(p.SpeedKmh)
	durationS := p.DurationHours * units.SecondsPerHour

	drag := DragPower(speedMS, c.AirDensity, c.CdA) / c.DrivetrainEfficiency
	rolling := RollingPower(p.MassKg, c.Gravity, c.Crr, speedMS) / c.DrivetrainEfficiency
	gravity := GravityPower(p.MassKg, c.Gravity, p.AscentM-p.DescentM, durationS)
	if gravity > 0 {
		gravity /= c.DrivetrainEfficiency
	}
	if gravity < -(drag + rolling) {
		gravity = -(drag + rolling)
	}

	b := PowerBreakdown{
		DragW:    drag,
		RollingW: rolling,
		GravityW: gravity,
		TotalW:   drag + rolling + gravity,
	}
	if !isFinite(b.TotalW) {
		return PowerBreakdown{}, fmt.Errorf("%w: power computation produced a non-finite result", ErrInvalidInput)
	}
	return b, nil
}

// EnergyExpenditure converts a power breakdown over a duration into
// mechanical work and metabolic energy. efficiency is the human efficiency
// eta in (0, 1]; metabolic energy is mechanical work divided by eta.
func EnergyExpenditure(b PowerBreakdown, durationS, efficiency float64) (EnergyResult, error) {
	if efficiency <= 0 || efficiency > 1 {
		return EnergyResult{}, fmt.Errorf("%w: efficiency %v outside (0, 1]", ErrInvalidConfig, efficiency)
	}
	if durationS < 0 || !isFinite(durationS) {
		return EnergyResult{}, fmt.Errorf("%w: duration %v s", ErrInvalidInput, durationS)
	}

	mechanical := b.TotalW * durationS
	r := EnergyResult{
		MechanicalJ: mechanical,
		MetabolicJ:  mechanical / efficiency,
	}
	if !isFinite(r.MetabolicJ) {
		return EnergyResult{}, fmt.Errorf("%w: energy computation produced a non-finite result", ErrInvalidInput)
	}
	return r, nil
}

// ComputeEffort is the single entry point the front-ends call: it validates
// the parameters, selects the activity's built-in constants, and runs the
// full pipeline from power breakdown to energy result.
func ComputeEffort(p Params) (*Estimate, error) {
	c, err := ConstantsFor(p.Activity)
	if err != nil {
		return nil, err
	}
	return ComputeEffortWith(p, c)
}

// ComputeEffortWith is ComputeEffort with an explicit constant set, for
// callers that carry user-tuned constants.
func ComputeEffortWith(p Params, c Constants) (*Estimate, error) {
	if p.AirDensityKgpm3 > 0 {
		c.AirDensity = p.AirDensityKgpm3
	}

	power, err := ComputeBreakdownWith(p, c)
	if err != nil {
		return nil, err
	}

	durationS := p.DurationHours * units.SecondsPerHour
	energy, err := EnergyExpenditure(power, durationS, c.HumanEfficiency)
	if err != nil {
		return nil, err
	}

	return &Estimate{
		Params:    p,
		Constants: c,
		Power:     power,
		Energy:    energy,
	}, nil
}

func validateParams(p Params) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"mass", p.MassKg},
		{"speed", p.SpeedKmh},
		{"duration", p.DurationHours},
		{"ascent", p.AscentM},
		{"descent", p.DescentM},
	}
	for _, c := range checks {
		if !isFinite(c.value) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidInput, c.name)
		}
		if c.value < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidInput, c.name, c.value)
		}
	}
	if p.MassKg == 0 {
		return fmt.Errorf("%w: mass must be positive", ErrInvalidInput)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
