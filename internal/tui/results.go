package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"sportcalc/internal/calc"
	"sportcalc/internal/units"
)

// ResultsModel renders one computed estimate
type ResultsModel struct {
	estimate *calc.Estimate
	mets     *calc.MetsResult
	fmtr     units.Formatter
	saved    bool
	saveErr  error
}

// NewResultsModel creates a results screen for a computed estimate
func NewResultsModel(msg estimateComputedMsg, fmtr units.Formatter) ResultsModel {
	return ResultsModel{
		estimate: msg.estimate,
		mets:     msg.mets,
		fmtr:     fmtr,
		saved:    msg.saved,
		saveErr:  msg.saveErr,
	}
}

// Init initializes the results screen
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the results screen
func (m ResultsModel) View() string {
	if m.estimate == nil {
		return mutedStyle.Render("Nothing computed yet")
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderInputsCard(),
		" ",
		m.renderPowerCard(),
		" ",
		m.renderEnergyCard(),
	)

	sections := []string{top, m.renderPowerCurve()}

	if m.saveErr != nil {
		sections = append(sections, errorStyle.Render("Could not save to history: "+m.saveErr.Error()))
	} else if m.saved {
		sections = append(sections, successStyle.Render("Saved to history"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ResultsModel) renderInputsCard() string {
	title := cardTitleStyle.Render(m.estimate.Params.Activity.Label())
	p := m.estimate.Params

	lines := []string{
		RenderMetric("Mass", m.fmtr.FormatMass(p.MassKg)),
		RenderMetric("Speed", m.fmtr.FormatSpeed(p.SpeedKmh)),
		RenderMetric("Duration", units.FormatDuration(p.DurationHours)),
	}
	if p.AscentM > 0 || p.DescentM > 0 {
		lines = append(lines,
			RenderMetric("Ascent", fmt.Sprintf("%.0f m", p.AscentM)),
			RenderMetric("Descent", fmt.Sprintf("%.0f m", p.DescentM)),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m ResultsModel) renderPowerCard() string {
	title := cardTitleStyle.Render("Mechanical Power")
	b := m.estimate.Power

	lines := []string{
		RenderMetric("Aerodynamic drag", m.fmtr.FormatPower(b.DragW)),
		RenderMetric("Rolling resistance", m.fmtr.FormatPower(b.RollingW)),
	}
	if b.GravityW != 0 {
		lines = append(lines, RenderMetric("Gravity", m.fmtr.FormatPower(b.GravityW)))
	}
	lines = append(lines, "", RenderMetric("Total", m.fmtr.FormatPower(b.TotalW)))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(36).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m ResultsModel) renderEnergyCard() string {
	title := cardTitleStyle.Render("Energy")
	e := m.estimate.Energy

	lines := []string{
		RenderMetric("Mechanical work", m.fmtr.FormatEnergy(e.MechanicalJ)),
		RenderMetric("Metabolic", m.fmtr.FormatEnergy(e.MetabolicJ)),
		RenderMetric("", fmt.Sprintf("%.0f kcal", e.MetabolicKcal())),
	}

	if m.mets != nil {
		metsLine := fmt.Sprintf("%.0f kcal (%.1f METs)", m.mets.EnergyKcal, m.mets.Mets)
		lines = append(lines, "", RenderMetric("METs estimate", metsLine))
		if !m.mets.InRange {
			lines = append(lines, warningStyle.Render("  speed outside measured METs range"))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(42).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

// renderPowerCurve plots total power against speed around the entered speed,
// holding the other parameters fixed.
func (m ResultsModel) renderPowerCurve() string {
	p := m.estimate.Params
	if p.SpeedKmh <= 0 {
		return ""
	}

	maxSpeed := p.SpeedKmh * 1.4
	const samples = 56

	data := make([]float64, 0, samples)
	for i := 0; i < samples; i++ {
		sp := p
		sp.SpeedKmh = maxSpeed * float64(i+1) / samples
		b, err := calc.ComputeBreakdownWith(sp, m.estimate.Constants)
		if err != nil {
			return ""
		}
		data = append(data, b.TotalW)
	}

	title := cardTitleStyle.Render(fmt.Sprintf("Total Power vs Speed (up to %s)", m.fmtr.FormatSpeed(maxSpeed)))
	graph := asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}
