package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"sportcalc/internal/calc"
	"sportcalc/internal/config"
	"sportcalc/internal/store"
	"sportcalc/internal/tui"
	"sportcalc/internal/units"
)

const usage = `Usage:
  sportcalc                                  launch the interactive calculator
  sportcalc [flags] <activity> <mass-kg> <speed> <duration> [ascent-m [descent-m]]

Activities: cycling, running, walking, speedskating

Speed is in km/h (or mph if configured). Duration accepts H:MM:SS, MM:SS,
a number with a unit suffix (90min, 2h, 45s), or a plain number of hours.

Flags:
  -json             print the estimate as JSON
  -air-density f    override air density in kg/m^3
  -no-save          do not record the estimate in history
  -debug            print the applied model constants to stderr
`

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	jsonOut := flag.Bool("json", false, "print the estimate as JSON")
	airDensity := flag.Float64("air-density", 0, "override air density in kg/m^3")
	noSave := flag.Bool("no-save", false, "do not record the estimate in history")
	debug := flag.Bool("debug", false, "print the applied model constants to stderr")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		// The tool works without a config file. Create the example on
		// first run so the user can find and edit it later.
		if err := config.CreateExample(); err == nil {
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
		} else {
			defaults := config.DefaultConfig()
			cfg = &defaults
		}
	} else if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	if flag.NArg() == 0 {
		return runTUI(cfg)
	}

	return runOnce(cfg, flag.Args(), *jsonOut, *airDensity, *noSave, *debug)
}

func runTUI(cfg *config.Config) error {
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	app := tui.NewApp(db, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func runOnce(cfg *config.Config, args []string, jsonOut bool, airDensity float64, noSave, debug bool) error {
	p, err := parseArgs(cfg, args)
	if err != nil {
		fmt.Fprint(os.Stderr, usage)
		return err
	}
	if airDensity > 0 {
		p.AirDensityKgpm3 = airDensity
	}

	constants, err := cfg.ConstantsFor(p.Activity)
	if err != nil {
		return err
	}

	if debug {
		fmt.Fprintf(os.Stderr, "constants: CdA=%.4f Crr=%.4f efficiency=%.2f drivetrain=%.2f air=%.3f g=%.2f\n",
			constants.CdA, constants.Crr, constants.HumanEfficiency,
			constants.DrivetrainEfficiency, constants.AirDensity, constants.Gravity)
	}

	est, err := calc.ComputeEffortWith(p, constants)
	if err != nil {
		return err
	}
	mets := calc.MetsEstimate(p.Activity, p.MassKg, p.SpeedKmh, p.DurationHours)

	if !noSave {
		if err := saveEstimate(est); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save estimate: %v\n", err)
		}
	}

	if jsonOut {
		return printJSON(est, mets)
	}
	printText(cfg, est, mets)
	return nil
}

func parseArgs(cfg *config.Config, args []string) (calc.Params, error) {
	var p calc.Params

	if len(args) < 4 || len(args) > 6 {
		return p, fmt.Errorf("%w: expected 4 to 6 arguments, got %d", calc.ErrInvalidInput, len(args))
	}

	activity, err := calc.ParseActivity(args[0])
	if err != nil {
		return p, err
	}
	p.Activity = activity

	p.MassKg, err = parseFloatArg("mass", args[1])
	if err != nil {
		return p, err
	}

	speed, err := parseFloatArg("speed", args[2])
	if err != nil {
		return p, err
	}
	if cfg.Display.SpeedUnit == units.SpeedMph {
		speed = units.MphToKmh(speed)
	}
	p.SpeedKmh = speed

	p.DurationHours, err = units.ParseDuration(args[3])
	if err != nil {
		return p, fmt.Errorf("%w: duration %q: %v", calc.ErrInvalidInput, args[3], err)
	}

	if len(args) > 4 {
		p.AscentM, err = parseFloatArg("ascent", args[4])
		if err != nil {
			return p, err
		}
	}
	if len(args) > 5 {
		p.DescentM, err = parseFloatArg("descent", args[5])
		if err != nil {
			return p, err
		}
	}

	return p, nil
}

func parseFloatArg(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", calc.ErrInvalidInput, name, raw)
	}
	return v, nil
}

func saveEstimate(est *calc.Estimate) error {
	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	rec := &store.Estimate{
		Activity:      string(est.Params.Activity),
		MassKg:        est.Params.MassKg,
		SpeedKmh:      est.Params.SpeedKmh,
		DurationS:     est.Params.DurationHours * units.SecondsPerHour,
		AscentM:       est.Params.AscentM,
		DescentM:      est.Params.DescentM,
		DragW:         est.Power.DragW,
		RollingW:      est.Power.RollingW,
		GravityW:      est.Power.GravityW,
		TotalW:        est.Power.TotalW,
		MechanicalKJ:  est.Energy.MechanicalKJ(),
		MetabolicKJ:   est.Energy.MetabolicKJ(),
		MetabolicKcal: est.Energy.MetabolicKcal(),
	}
	return db.SaveEstimate(rec)
}

func printText(cfg *config.Config, est *calc.Estimate, mets *calc.MetsResult) {
	fmtr := cfg.Formatter()

	fmt.Printf("%s, %s at %s for %s",
		est.Params.Activity.Label(),
		fmtr.FormatMass(est.Params.MassKg),
		fmtr.FormatSpeed(est.Params.SpeedKmh),
		units.FormatDuration(est.Params.DurationHours))
	if est.Params.AscentM > 0 || est.Params.DescentM > 0 {
		fmt.Printf(" (+%.0f m / -%.0f m)", est.Params.AscentM, est.Params.DescentM)
	}
	fmt.Println()
	fmt.Println()

	fmt.Printf("Power\n")
	fmt.Printf("  drag     %s\n", fmtr.FormatPower(est.Power.DragW))
	fmt.Printf("  rolling  %s\n", fmtr.FormatPower(est.Power.RollingW))
	fmt.Printf("  gravity  %s\n", fmtr.FormatPower(est.Power.GravityW))
	fmt.Printf("  total    %s\n", fmtr.FormatPower(est.Power.TotalW))
	fmt.Println()

	fmt.Printf("Energy\n")
	fmt.Printf("  mechanical  %.1f kJ\n", est.Energy.MechanicalKJ())
	fmt.Printf("  metabolic   %.1f kJ (%.1f kcal)\n",
		est.Energy.MetabolicKJ(), est.Energy.MetabolicKcal())

	if mets != nil {
		fmt.Println()
		fmt.Printf("METs cross-check\n")
		fmt.Printf("  %.1f METs, %.1f kcal active", mets.Mets, mets.EnergyKcal)
		if !mets.InRange {
			fmt.Printf(" (speed outside table range)")
		}
		fmt.Println()
	}
}

func printJSON(est *calc.Estimate, mets *calc.MetsResult) error {
	out := struct {
		Activity string     `json:"activity"`
		Params   jsonParams `json:"params"`
		Power    jsonPower  `json:"power_w"`
		Energy   jsonEnergy `json:"energy"`
		Mets     *jsonMets  `json:"mets,omitempty"`
	}{
		Activity: string(est.Params.Activity),
		Params: jsonParams{
			MassKg:        est.Params.MassKg,
			SpeedKmh:      est.Params.SpeedKmh,
			DurationHours: est.Params.DurationHours,
			AscentM:       est.Params.AscentM,
			DescentM:      est.Params.DescentM,
		},
		Power: jsonPower{
			Drag:    est.Power.DragW,
			Rolling: est.Power.RollingW,
			Gravity: est.Power.GravityW,
			Total:   est.Power.TotalW,
		},
		Energy: jsonEnergy{
			MechanicalKJ:  est.Energy.MechanicalKJ(),
			MetabolicKJ:   est.Energy.MetabolicKJ(),
			MetabolicKcal: est.Energy.MetabolicKcal(),
		},
	}
	if mets != nil {
		out.Mets = &jsonMets{
			Mets:       mets.Mets,
			EnergyKcal: mets.EnergyKcal,
			EnergyKJ:   mets.EnergyKJ,
			InRange:    mets.InRange,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

type jsonParams struct {
	MassKg        float64 `json:"mass_kg"`
	SpeedKmh      float64 `json:"speed_kmh"`
	DurationHours float64 `json:"duration_hours"`
	AscentM       float64 `json:"ascent_m"`
	DescentM      float64 `json:"descent_m"`
}

type jsonPower struct {
	Drag    float64 `json:"drag"`
	Rolling float64 `json:"rolling"`
	Gravity float64 `json:"gravity"`
	Total   float64 `json:"total"`
}

type jsonMets struct {
	Mets       float64 `json:"mets"`
	EnergyKcal float64 `json:"energy_kcal"`
	EnergyKJ   float64 `json:"energy_kj"`
	InRange    bool    `json:"in_range"`
}

type jsonEnergy struct {
	MechanicalKJ  float64 `json:"mechanical_kj"`
	MetabolicKJ   float64 `json:"metabolic_kj"`
	MetabolicKcal float64 `json:"metabolic_kcal"`
}
