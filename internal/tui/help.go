package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	sections = append(sections, m.renderSection("Navigation", []keyHelp{
		{"1", "Calculator"},
		{"2", "History"},
		{"?", "Help (this screen)"},
		{"q", "Quit"},
		{"esc", "Back / close help"},
	}))

	sections = append(sections, m.renderSection("Calculator", []keyHelp{
		{"tab / up / down", "Move between fields"},
		{"left / right", "Change activity"},
		{"enter", "Compute and save"},
	}))

	sections = append(sections, m.renderSection("Results", []keyHelp{
		{"e / esc", "Back to the calculator"},
	}))

	sections = append(sections, m.renderSection("History", []keyHelp{
		{"j / down", "Move cursor down"},
		{"k / up", "Move cursor up"},
		{"pgup / pgdn", "Change page"},
		{"enter", "View selected estimate"},
		{"x", "Delete selected estimate"},
		{"X", "Clear all estimates"},
		{"r", "Refresh list"},
	}))

	sections = append(sections, m.renderModelNotes())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderModelNotes() string {
	lines := []string{
		"",
		lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render("About the numbers"),
		mutedStyle.Render("  The model sums aerodynamic drag, rolling resistance and gravity at"),
		mutedStyle.Render("  constant speed, then divides by a ~25% human efficiency. It assumes"),
		mutedStyle.Render("  no wind and no drafting, so treat the result as a lower bound."),
		mutedStyle.Render("  Constants can be tuned per activity in ~/.sportcalc/config.json."),
	}
	return strings.Join(lines, "\n")
}
