package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sportcalc/internal/calc"
	"sportcalc/internal/store"
	"sportcalc/internal/units"
)

// HistoryModel is the stored-estimates screen model
type HistoryModel struct {
	db   *store.DB
	fmtr units.Formatter

	estimates []store.Estimate
	loading   bool
	err       error
	cursor    int
	offset    int
	pageSize  int
}

// NewHistoryModel creates a new history model
func NewHistoryModel(db *store.DB, fmtr units.Formatter) HistoryModel {
	return HistoryModel{
		db:       db,
		fmtr:     fmtr,
		loading:  true,
		pageSize: 15,
	}
}

// Init initializes the history screen
func (m HistoryModel) Init() tea.Cmd {
	return m.load
}

type historyLoadedMsg struct {
	estimates []store.Estimate
	err       error
}

type historyChangedMsg struct {
	err error
}

func (m HistoryModel) load() tea.Msg {
	if m.db == nil {
		return historyLoadedMsg{}
	}
	estimates, err := m.db.ListEstimates(500)
	return historyLoadedMsg{estimates: estimates, err: err}
}

// Update handles messages
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.estimates = msg.estimates
		if m.cursor >= m.visibleCount() {
			m.cursor = 0
			m.offset = 0
		}

	case historyChangedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.loading = true
		return m, m.load

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.load
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			} else if m.offset > 0 {
				m.offset -= m.pageSize
				m.cursor = m.pageSize - 1
			}
		case "down", "j":
			if m.cursor < m.visibleCount()-1 {
				m.cursor++
			} else if m.offset+m.visibleCount() < len(m.estimates) {
				m.offset += m.pageSize
				m.cursor = 0
			}
		case "pgup":
			if m.offset > 0 {
				m.offset -= m.pageSize
				if m.offset < 0 {
					m.offset = 0
				}
				m.cursor = 0
			}
		case "pgdown":
			if m.offset+m.pageSize < len(m.estimates) {
				m.offset += m.pageSize
				m.cursor = 0
			}
		case "x":
			if e := m.selected(); e != nil && m.db != nil {
				db, id := m.db, e.ID
				return m, func() tea.Msg {
					return historyChangedMsg{err: db.DeleteEstimate(id)}
				}
			}
		case "X":
			if m.db != nil {
				db := m.db
				return m, func() tea.Msg {
					return historyChangedMsg{err: db.ClearEstimates()}
				}
			}
		case "enter":
			if e := m.selected(); e != nil {
				return m, m.recompute(*e)
			}
		}
	}

	return m, nil
}

// selected returns the estimate under the cursor, or nil
func (m HistoryModel) selected() *store.Estimate {
	idx := m.offset + m.cursor
	if idx < 0 || idx >= len(m.estimates) {
		return nil
	}
	return &m.estimates[idx]
}

func (m HistoryModel) visibleCount() int {
	remaining := len(m.estimates) - m.offset
	if remaining > m.pageSize {
		return m.pageSize
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

// recompute re-runs the model from a stored estimate's inputs so the full
// results screen (including the power curve) can be shown for it.
func (m HistoryModel) recompute(e store.Estimate) tea.Cmd {
	activity, err := calc.ParseActivity(e.Activity)
	if err != nil {
		return func() tea.Msg { return estimateComputedMsg{computeErr: err} }
	}

	params := calc.Params{
		Activity:      activity,
		MassKg:        e.MassKg,
		SpeedKmh:      e.SpeedKmh,
		DurationHours: e.DurationS / units.SecondsPerHour,
		AscentM:       e.AscentM,
		DescentM:      e.DescentM,
	}

	return func() tea.Msg {
		est, err := calc.ComputeEffort(params)
		if err != nil {
			return estimateComputedMsg{computeErr: err}
		}
		return estimateComputedMsg{
			estimate: est,
			mets:     calc.MetsEstimate(params.Activity, params.MassKg, params.SpeedKmh, params.DurationHours),
		}
	}
}

// View renders the history screen
func (m HistoryModel) View() string {
	title := cardTitleStyle.Render("History")

	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("Loading..."))
	}
	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, title, errorStyle.Render("Error: "+m.err.Error()))
	}
	if len(m.estimates) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("No saved estimates yet. Compute one from the calculator."))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-16s  %-13s  %7s  %9s  %9s  %7s  %9s",
		"Date", "Activity", "Mass", "Speed", "Duration", "Power", "Energy"))

	rows := []string{header}
	for i := 0; i < m.visibleCount(); i++ {
		e := m.estimates[m.offset+i]
		line := fmt.Sprintf("%-16s  %-13s  %7s  %9s  %9s  %7s  %9s",
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.Activity,
			fmt.Sprintf("%.0f kg", e.MassKg),
			m.fmtr.FormatSpeed(e.SpeedKmh),
			units.FormatDuration(e.DurationS/units.SecondsPerHour),
			m.fmtr.FormatPower(e.TotalW),
			m.fmtr.FormatEnergy(e.MetabolicKJ*1000),
		)

		if i == m.cursor {
			rows = append(rows, tableSelectedStyle.Render(line))
		} else {
			rows = append(rows, tableRowStyle.Render(line))
		}
	}

	page := m.offset/m.pageSize + 1
	pages := (len(m.estimates) + m.pageSize - 1) / m.pageSize
	footer := statusStyle.Render(fmt.Sprintf("%d estimates · page %d/%d · enter view · x delete · X clear all · r refresh",
		len(m.estimates), page, pages))

	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, rows...), footer)
}
