package calc

// METs tables: measured metabolic equivalents at given speeds, used as a
// cross-check on the force-based model. The force model is a deliberate
// lower bound; the METs figures come from measured populations and land
// higher for the sports where most of the work is internal (running,
// walking). Values between table speeds are linearly interpolated.
//
// Sources: the ACSM METs compendium for running and walking; the skating
// table is derived from the compendium's roller blading rows scaled to ice.

type metsTable struct {
	speedsKmh []float64
	mets      []float64
}

var metsTables = map[Activity]metsTable{
	Running: {
		speedsKmh: []float64{8.0, 9.6, 10.7, 12.0, 13.8, 16.1},
		mets:      []float64{8.0, 10.0, 11.0, 12.5, 14.0, 16.0},
	},
	Walking: {
		speedsKmh: []float64{1.61, 3.22, 4.83, 5.68, 6.44},
		mets:      []float64{2.0, 2.5, 3.3, 3.8, 5.0},
	},
	SpeedSkating: {
		speedsKmh: []float64{14.48, 17.7, 21.0, 24.0, 26.3},
		mets:      []float64{5.5, 7.8, 10.3, 12.0, 13.3},
	},
}

// MetsResult is a METs-based energy estimate.
type MetsResult struct {
	Mets       float64 // interpolated METs value at the given speed
	EnergyKcal float64 // active energy only (resting expenditure excluded)
	EnergyKJ   float64

	// InRange is false when the speed falls outside the measured table and
	// the estimate was clamped to the nearest endpoint.
	InRange bool
}

// MetsEstimate returns the METs-based energy estimate for the activity, or
// nil when no METs table exists for it (cycling uses the force model only).
//
// One MET is subtracted before multiplying out so only the active energy
// expenditure is counted, not the resting metabolism.
func MetsEstimate(activity Activity, massKg, speedKmh, durationH float64) *MetsResult {
	table, ok := metsTables[activity]
	if !ok {
		return nil
	}
	if massKg <= 0 || speedKmh < 0 || durationH < 0 {
		return nil
	}

	mets, inRange := interp(speedKmh, table.speedsKmh, table.mets)
	activeMets := mets - 1
	if activeMets < 0 {
		activeMets = 0
	}

	kcal := activeMets * massKg * durationH
	return &MetsResult{
		Mets:       mets,
		EnergyKcal: kcal,
		EnergyKJ:   kcal * 4.184,
		InRange:    inRange,
	}
}

// interp linearly interpolates y at x over the sorted sample points (xs, ys),
// clamping to the endpoints outside the sampled range. The second return
// value reports whether x was inside the range.
func interp(x float64, xs, ys []float64) (float64, bool) {
	if x <= xs[0] {
		return ys[0], x == xs[0]
	}
	last := len(xs) - 1
	if x >= xs[last] {
		return ys[last], x == xs[last]
	}
	for i := 1; i <= last; i++ {
		if x <= xs[i] {
			frac := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1] + frac*(ys[i]-ys[i-1]), true
		}
	}
	return ys[last], true
}
