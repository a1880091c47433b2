package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sportcalc/internal/calc"
	"sportcalc/internal/units"
)

// Config represents the application configuration
type Config struct {
	Athlete AthleteConfig `json:"athlete"`
	Display DisplayConfig `json:"display"`
	Model   ModelConfig   `json:"model"`
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	// MassKg is the default total mass (human + equipment) pre-filled in the
	// TUI form. Zero means unset.
	MassKg float64 `json:"mass_kg"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	EnergyUnit string `json:"energy_unit"` // "kJ" or "kcal"
	SpeedUnit  string `json:"speed_unit"`  // "km/h" or "mph"
}

// ModelConfig holds per-activity overrides for the physical constants, keyed
// by activity name. Users who know their own CdA or tire Crr can tune the
// model here.
type ModelConfig struct {
	Overrides map[string]ConstantsOverride `json:"overrides,omitempty"`
}

// ConstantsOverride overrides selected physical constants for one activity.
// Nil fields keep the built-in value.
type ConstantsOverride struct {
	CdA        *float64 `json:"cda,omitempty"`
	Crr        *float64 `json:"crr,omitempty"`
	Efficiency *float64 `json:"efficiency,omitempty"`
	AirDensity *float64 `json:"air_density,omitempty"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			EnergyUnit: units.EnergyKJ,
			SpeedUnit:  units.SpeedKmh,
		},
	}
}

// Load reads the configuration from ~/.sportcalc/config.json. A missing file
// is not an error for this tool: the defaults work out of the box.
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Display.EnergyUnit == "" {
		cfg.Display.EnergyUnit = defaults.Display.EnergyUnit
	}
	if cfg.Display.SpeedUnit == "" {
		cfg.Display.SpeedUnit = defaults.Display.SpeedUnit
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.sportcalc/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := Config{
		Athlete: AthleteConfig{
			MassKg: 80,
		},
		Display: DisplayConfig{
			EnergyUnit: units.EnergyKJ,
			SpeedUnit:  units.SpeedKmh,
		},
	}

	return Save(&example)
}

// Validate checks that the config values are usable
func (c *Config) Validate() error {
	if c.Display.EnergyUnit != "" && c.Display.EnergyUnit != units.EnergyKJ && c.Display.EnergyUnit != units.EnergyKcal {
		return fmt.Errorf("display.energy_unit must be %q or %q, got %q", units.EnergyKJ, units.EnergyKcal, c.Display.EnergyUnit)
	}
	if c.Display.SpeedUnit != "" && c.Display.SpeedUnit != units.SpeedKmh && c.Display.SpeedUnit != units.SpeedMph {
		return fmt.Errorf("display.speed_unit must be %q or %q, got %q", units.SpeedKmh, units.SpeedMph, c.Display.SpeedUnit)
	}
	if c.Athlete.MassKg < 0 {
		return fmt.Errorf("athlete.mass_kg must be non-negative, got %v", c.Athlete.MassKg)
	}

	for name, o := range c.Model.Overrides {
		activity, err := calc.ParseActivity(name)
		if err != nil {
			return fmt.Errorf("model.overrides: %w", err)
		}
		base, err := calc.ConstantsFor(activity)
		if err != nil {
			return fmt.Errorf("model.overrides.%s: %w", name, err)
		}
		if err := o.apply(base).Validate(); err != nil {
			return fmt.Errorf("model.overrides.%s: %w", name, err)
		}
	}

	return nil
}

// ConstantsFor returns the constant set for the activity with any configured
// overrides applied.
func (c *Config) ConstantsFor(activity calc.Activity) (calc.Constants, error) {
	base, err := calc.ConstantsFor(activity)
	if err != nil {
		return calc.Constants{}, err
	}

	for name, o := range c.Model.Overrides {
		parsed, err := calc.ParseActivity(name)
		if err != nil {
			continue // caught by Validate
		}
		if parsed == activity {
			base = o.apply(base)
		}
	}

	if err := base.Validate(); err != nil {
		return calc.Constants{}, err
	}
	return base, nil
}

func (o ConstantsOverride) apply(c calc.Constants) calc.Constants {
	if o.CdA != nil {
		c.CdA = *o.CdA
	}
	if o.Crr != nil {
		c.Crr = *o.Crr
	}
	if o.Efficiency != nil {
		c.HumanEfficiency = *o.Efficiency
	}
	if o.AirDensity != nil {
		c.AirDensity = *o.AirDensity
	}
	return c
}

// Formatter returns a units.Formatter for the configured display units.
func (c *Config) Formatter() units.Formatter {
	return units.Formatter{
		EnergyUnit: c.Display.EnergyUnit,
		SpeedUnit:  c.Display.SpeedUnit,
	}
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".sportcalc", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".sportcalc"), nil
}
