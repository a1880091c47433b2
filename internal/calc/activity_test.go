package calc

import (
	"errors"
	"testing"
)

func TestParseActivity(t *testing.T) {
	tests := []struct {
		input string
		want  Activity
	}{
		{"cycling", Cycling},
		{"Cycling", Cycling},
		{"bike", Cycling},
		{"run", Running},
		{"running", Running},
		{"walk", Walking},
		{"speedskating", SpeedSkating},
		{"speed-skating", SpeedSkating},
		{"skate", SpeedSkating},
		{" running ", Running},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseActivity(tt.input)
			if err != nil {
				t.Fatalf("ParseActivity(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseActivity(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseActivity_Unknown(t *testing.T) {
	_, err := ParseActivity("rowing")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseActivity(rowing) error = %v, want ErrInvalidConfig", err)
	}
}

func TestConstantsFor(t *testing.T) {
	for _, activity := range Activities {
		t.Run(string(activity), func(t *testing.T) {
			c, err := ConstantsFor(activity)
			if err != nil {
				t.Fatalf("ConstantsFor(%v) error = %v", activity, err)
			}
			if err := c.Validate(); err != nil {
				t.Errorf("built-in constants for %v invalid: %v", activity, err)
			}
		})
	}

	_, err := ConstantsFor("triathlon")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ConstantsFor(triathlon) error = %v, want ErrInvalidConfig", err)
	}
}

func TestConstantsValidate(t *testing.T) {
	valid, _ := ConstantsFor(Cycling)

	tests := []struct {
		name   string
		mutate func(*Constants)
	}{
		{"zero human efficiency", func(c *Constants) { c.HumanEfficiency = 0 }},
		{"negative human efficiency", func(c *Constants) { c.HumanEfficiency = -0.25 }},
		{"human efficiency above 1", func(c *Constants) { c.HumanEfficiency = 1.1 }},
		{"zero drivetrain efficiency", func(c *Constants) { c.DrivetrainEfficiency = 0 }},
		{"zero gravity", func(c *Constants) { c.Gravity = 0 }},
		{"zero air density", func(c *Constants) { c.AirDensity = 0 }},
		{"negative CdA", func(c *Constants) { c.CdA = -0.1 }},
		{"negative Crr", func(c *Constants) { c.Crr = -0.001 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on built-in constants error = %v", err)
	}
}

func TestActivityLabel(t *testing.T) {
	tests := []struct {
		activity Activity
		want     string
	}{
		{Cycling, "Cycling"},
		{Running, "Running"},
		{Walking, "Walking"},
		{SpeedSkating, "Speed skating"},
	}

	for _, tt := range tests {
		if got := tt.activity.Label(); got != tt.want {
			t.Errorf("%v.Label() = %q, want %q", tt.activity, got, tt.want)
		}
	}
}
