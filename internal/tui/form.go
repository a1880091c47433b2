package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sportcalc/internal/calc"
	"sportcalc/internal/config"
	"sportcalc/internal/store"
	"sportcalc/internal/units"
)

// Form field indexes. Index 0 is the activity selector; the rest are
// text inputs.
const (
	fieldActivity = iota
	fieldMass
	fieldSpeed
	fieldDuration
	fieldAscent
	fieldDescent
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Activity",
	"Mass (kg)",
	"Speed",
	"Duration",
	"Ascent (m)",
	"Descent (m)",
}

// FormModel is the calculator input screen model
type FormModel struct {
	db  *store.DB
	cfg *config.Config

	activityIdx int
	inputs      [fieldCount - 1]textinput.Model
	focus       int
	err         error
}

// estimateComputedMsg is sent when the form computes an estimate
type estimateComputedMsg struct {
	estimate   *calc.Estimate
	mets       *calc.MetsResult
	saved      bool
	saveErr    error
	computeErr error
}

// NewFormModel creates a new calculator form
func NewFormModel(db *store.DB, cfg *config.Config) FormModel {
	m := FormModel{db: db, cfg: cfg}

	placeholders := [fieldCount - 1]string{
		"80",
		"30 (" + cfg.Display.SpeedUnit + ")",
		"1:00:00 or 1.5h",
		"0",
		"0",
	}

	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 16
		in.Width = 20
		m.inputs[i] = in
	}

	if cfg.Athlete.MassKg > 0 {
		m.inputs[fieldMass-1].SetValue(strconv.FormatFloat(cfg.Athlete.MassKg, 'f', -1, 64))
	}

	m.focus = fieldActivity
	return m
}

// Init initializes the form
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "left":
			if m.focus == fieldActivity {
				m.activityIdx = (m.activityIdx + len(calc.Activities) - 1) % len(calc.Activities)
				return m, nil
			}
		case "right":
			if m.focus == fieldActivity {
				m.activityIdx = (m.activityIdx + 1) % len(calc.Activities)
				return m, nil
			}
		case "enter":
			params, err := m.parseParams()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			db, cfg, p := m.db, m.cfg, *params
			return m, func() tea.Msg {
				return computeAndSave(db, cfg, p)
			}
		}
	}

	// Delegate to the focused text input
	if m.focus > fieldActivity {
		var cmd tea.Cmd
		m.inputs[m.focus-1], cmd = m.inputs[m.focus-1].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *FormModel) setFocus(focus int) {
	m.focus = focus
	for i := range m.inputs {
		if i == focus-1 {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// computeAndSave runs the model and persists the result. Runs as a tea.Cmd
// so the store write stays off the update loop.
func computeAndSave(db *store.DB, cfg *config.Config, p calc.Params) tea.Msg {
	constants, err := cfg.ConstantsFor(p.Activity)
	if err != nil {
		return estimateComputedMsg{computeErr: err}
	}

	est, err := calc.ComputeEffortWith(p, constants)
	if err != nil {
		return estimateComputedMsg{computeErr: err}
	}

	msg := estimateComputedMsg{
		estimate: est,
		mets:     calc.MetsEstimate(p.Activity, p.MassKg, p.SpeedKmh, p.DurationHours),
	}

	if db != nil {
		if err := db.SaveEstimate(toStoreEstimate(est)); err != nil {
			msg.saveErr = err
		} else {
			msg.saved = true
		}
	}
	return msg
}

// toStoreEstimate converts a computed estimate into its stored form
func toStoreEstimate(est *calc.Estimate) *store.Estimate {
	return &store.Estimate{
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
}

// parseParams builds calc.Params from the form fields
func (m FormModel) parseParams() (*calc.Params, error) {
	activity := calc.Activities[m.activityIdx]

	mass, err := parseFloatField(m.inputs[fieldMass-1].Value(), "mass")
	if err != nil {
		return nil, err
	}

	speedRaw, err := parseFloatField(m.inputs[fieldSpeed-1].Value(), "speed")
	if err != nil {
		return nil, err
	}
	speedKmh := speedRaw
	if m.cfg.Display.SpeedUnit == units.SpeedMph {
		speedKmh = units.MphToKmh(speedRaw)
	}

	durationStr := strings.TrimSpace(m.inputs[fieldDuration-1].Value())
	if durationStr == "" {
		return nil, fmt.Errorf("duration is required")
	}
	durationH, err := units.ParseDuration(durationStr)
	if err != nil {
		return nil, err
	}

	ascent, err := parseOptionalFloatField(m.inputs[fieldAscent-1].Value(), "ascent")
	if err != nil {
		return nil, err
	}
	descent, err := parseOptionalFloatField(m.inputs[fieldDescent-1].Value(), "descent")
	if err != nil {
		return nil, err
	}

	return &calc.Params{
		Activity:      activity,
		MassKg:        mass,
		SpeedKmh:      speedKmh,
		DurationHours: durationH,
		AscentM:       ascent,
		DescentM:      descent,
	}, nil
}

func parseFloatField(s, name string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}

func parseOptionalFloatField(s, name string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return parseFloatField(s, name)
}

// View renders the form
func (m FormModel) View() string {
	title := cardTitleStyle.Render("Effort Calculator")

	var lines []string
	lines = append(lines, m.renderActivityRow())
	for i := range m.inputs {
		lines = append(lines, m.renderInputRow(i+1))
	}

	lines = append(lines, "")
	lines = append(lines, mutedStyle.Render("tab/↑↓ move · ←/→ change activity · enter compute"))

	if m.err != nil {
		lines = append(lines, "", errorStyle.Render("Error: "+m.err.Error()))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m FormModel) renderActivityRow() string {
	label := fieldLabels[fieldActivity]
	value := "← " + calc.Activities[m.activityIdx].Label() + " →"

	labelRendered := formLabelStyle.Render(label)
	if m.focus == fieldActivity {
		return labelRendered + formFocusedStyle.Render(value)
	}
	return labelRendered + value
}

func (m FormModel) renderInputRow(field int) string {
	label := fieldLabels[field]
	if field == fieldSpeed {
		label += " (" + m.cfg.Display.SpeedUnit + ")"
	}

	labelRendered := formLabelStyle.Render(label)
	return labelRendered + m.inputs[field-1].View()
}
