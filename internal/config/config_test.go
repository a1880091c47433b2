package config

import (
	"math"
	"strings"
	"testing"

	"sportcalc/internal/calc"
	"sportcalc/internal/units"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Display.EnergyUnit != units.EnergyKJ {
		t.Errorf("Display.EnergyUnit = %q, want %q", cfg.Display.EnergyUnit, units.EnergyKJ)
	}
	if cfg.Display.SpeedUnit != units.SpeedKmh {
		t.Errorf("Display.SpeedUnit = %q, want %q", cfg.Display.SpeedUnit, units.SpeedKmh)
	}

	// Athlete mass is unset by default
	if cfg.Athlete.MassKg != 0 {
		t.Errorf("Athlete.MassKg = %v, want 0 (unset)", cfg.Athlete.MassKg)
	}
	if len(cfg.Model.Overrides) != 0 {
		t.Errorf("Model.Overrides should be empty, got %v", cfg.Model.Overrides)
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errContains string
	}{
		{
			name:   "empty config is valid",
			config: Config{},
		},
		{
			name:   "default config is valid",
			config: DefaultConfig(),
		},
		{
			name: "valid override",
			config: Config{
				Model: ModelConfig{Overrides: map[string]ConstantsOverride{
					"cycling": {CdA: floatPtr(0.32), Crr: floatPtr(0.004)},
				}},
			},
		},
		{
			name: "bad energy unit",
			config: Config{
				Display: DisplayConfig{EnergyUnit: "joules"},
			},
			expectError: true,
			errContains: "energy_unit",
		},
		{
			name: "bad speed unit",
			config: Config{
				Display: DisplayConfig{SpeedUnit: "knots"},
			},
			expectError: true,
			errContains: "speed_unit",
		},
		{
			name: "negative mass",
			config: Config{
				Athlete: AthleteConfig{MassKg: -70},
			},
			expectError: true,
			errContains: "mass_kg",
		},
		{
			name: "override for unknown activity",
			config: Config{
				Model: ModelConfig{Overrides: map[string]ConstantsOverride{
					"rowing": {CdA: floatPtr(0.3)},
				}},
			},
			expectError: true,
			errContains: "unknown activity",
		},
		{
			name: "override with bad efficiency",
			config: Config{
				Model: ModelConfig{Overrides: map[string]ConstantsOverride{
					"cycling": {Efficiency: floatPtr(1.5)},
				}},
			},
			expectError: true,
			errContains: "efficiency",
		},
		{
			name: "override with negative CdA",
			config: Config{
				Model: ModelConfig{Overrides: map[string]ConstantsOverride{
					"running": {CdA: floatPtr(-0.1)},
				}},
			},
			expectError: true,
			errContains: "CdA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestConstantsForAppliesOverrides(t *testing.T) {
	cfg := Config{
		Model: ModelConfig{Overrides: map[string]ConstantsOverride{
			"cycling": {
				CdA:        floatPtr(0.28), // aero position
				Crr:        floatPtr(0.0025),
				Efficiency: floatPtr(0.23),
			},
		}},
	}

	got, err := cfg.ConstantsFor(calc.Cycling)
	if err != nil {
		t.Fatalf("ConstantsFor() error = %v", err)
	}

	if got.CdA != 0.28 {
		t.Errorf("CdA = %v, want 0.28", got.CdA)
	}
	if got.Crr != 0.0025 {
		t.Errorf("Crr = %v, want 0.0025", got.Crr)
	}
	if got.HumanEfficiency != 0.23 {
		t.Errorf("HumanEfficiency = %v, want 0.23", got.HumanEfficiency)
	}

	// Fields without an override keep the built-in values.
	base, _ := calc.ConstantsFor(calc.Cycling)
	if got.AirDensity != base.AirDensity {
		t.Errorf("AirDensity = %v, want built-in %v", got.AirDensity, base.AirDensity)
	}
	if got.DrivetrainEfficiency != base.DrivetrainEfficiency {
		t.Errorf("DrivetrainEfficiency = %v, want built-in %v", got.DrivetrainEfficiency, base.DrivetrainEfficiency)
	}

	// Other activities are untouched.
	running, err := cfg.ConstantsFor(calc.Running)
	if err != nil {
		t.Fatalf("ConstantsFor(running) error = %v", err)
	}
	baseRunning, _ := calc.ConstantsFor(calc.Running)
	if math.Abs(running.CdA-baseRunning.CdA) > 1e-12 {
		t.Errorf("running CdA = %v, want built-in %v", running.CdA, baseRunning.CdA)
	}
}

func TestConstantsForAcceptsAliasKeys(t *testing.T) {
	cfg := Config{
		Model: ModelConfig{Overrides: map[string]ConstantsOverride{
			"bike": {CdA: floatPtr(0.30)},
		}},
	}

	got, err := cfg.ConstantsFor(calc.Cycling)
	if err != nil {
		t.Fatalf("ConstantsFor() error = %v", err)
	}
	if got.CdA != 0.30 {
		t.Errorf("CdA = %v, want 0.30 via alias key", got.CdA)
	}
}

func TestFormatter(t *testing.T) {
	cfg := Config{Display: DisplayConfig{EnergyUnit: units.EnergyKcal, SpeedUnit: units.SpeedMph}}

	f := cfg.Formatter()
	if f.EnergyUnit != units.EnergyKcal {
		t.Errorf("Formatter.EnergyUnit = %q, want %q", f.EnergyUnit, units.EnergyKcal)
	}
	if f.SpeedUnit != units.SpeedMph {
		t.Errorf("Formatter.SpeedUnit = %q, want %q", f.SpeedUnit, units.SpeedMph)
	}
}
