package calc

import (
	"math"
	"testing"
)

func TestMetsEstimate_TableValues(t *testing.T) {
	tests := []struct {
		name     string
		activity Activity
		speedKmh float64
		wantMets float64
	}{
		{"running at 9.6 km/h", Running, 9.6, 10.0},
		{"running at 16.1 km/h", Running, 16.1, 16.0},
		{"walking at 4.83 km/h", Walking, 4.83, 3.3},
		{"skating at 21 km/h", SpeedSkating, 21.0, 10.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MetsEstimate(tt.activity, 70, tt.speedKmh, 1)
			if got == nil {
				t.Fatal("MetsEstimate() = nil, want result")
			}
			if math.Abs(got.Mets-tt.wantMets) > 1e-9 {
				t.Errorf("Mets = %v, want %v", got.Mets, tt.wantMets)
			}
			if !got.InRange {
				t.Error("InRange = false, want true at a table speed")
			}
		})
	}
}

func TestMetsEstimate_Interpolation(t *testing.T) {
	// Running table: 8.0 METs at 8.0 km/h, 10.0 METs at 9.6 km/h.
	// Halfway between the speeds the METs value is halfway too.
	got := MetsEstimate(Running, 70, 8.8, 1)
	if got == nil {
		t.Fatal("MetsEstimate() = nil, want result")
	}
	if math.Abs(got.Mets-9.0) > 1e-9 {
		t.Errorf("Mets = %v, want 9.0", got.Mets)
	}
}

func TestMetsEstimate_ActiveEnergyOnly(t *testing.T) {
	// 10 METs at 9.6 km/h: active energy is (10-1) * 70 kg * 1 h = 630 kcal.
	got := MetsEstimate(Running, 70, 9.6, 1)
	if got == nil {
		t.Fatal("MetsEstimate() = nil, want result")
	}
	if math.Abs(got.EnergyKcal-630) > 1e-6 {
		t.Errorf("EnergyKcal = %v, want 630", got.EnergyKcal)
	}
	if math.Abs(got.EnergyKJ-630*4.184) > 1e-6 {
		t.Errorf("EnergyKJ = %v, want %v", got.EnergyKJ, 630*4.184)
	}
}

func TestMetsEstimate_OutOfRangeClamps(t *testing.T) {
	tests := []struct {
		name     string
		speedKmh float64
		wantMets float64
	}{
		{"below table", 4.0, 8.0},
		{"above table", 25.0, 16.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MetsEstimate(Running, 70, tt.speedKmh, 1)
			if got == nil {
				t.Fatal("MetsEstimate() = nil, want result")
			}
			if got.Mets != tt.wantMets {
				t.Errorf("Mets = %v, want clamped %v", got.Mets, tt.wantMets)
			}
			if got.InRange {
				t.Error("InRange = true, want false outside the table")
			}
		})
	}
}

func TestMetsEstimate_NoTableForCycling(t *testing.T) {
	if got := MetsEstimate(Cycling, 70, 30, 1); got != nil {
		t.Errorf("MetsEstimate(cycling) = %+v, want nil", got)
	}
}

func TestMetsEstimate_InvalidInputs(t *testing.T) {
	if got := MetsEstimate(Running, 0, 10, 1); got != nil {
		t.Errorf("MetsEstimate with zero mass = %+v, want nil", got)
	}
	if got := MetsEstimate(Running, 70, -5, 1); got != nil {
		t.Errorf("MetsEstimate with negative speed = %+v, want nil", got)
	}
	if got := MetsEstimate(Running, 70, 10, -1); got != nil {
		t.Errorf("MetsEstimate with negative duration = %+v, want nil", got)
	}
}
