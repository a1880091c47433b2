package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sportcalc/internal/config"
	"sportcalc/internal/store"
)

// Screen identifiers
type Screen int

const (
	ScreenCalculator Screen = iota
	ScreenResults
	ScreenHistory
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	form    FormModel
	results ResultsModel
	history HistoryModel
	help    HelpModel

	// Dependencies
	db  *store.DB
	cfg *config.Config

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies
func NewApp(db *store.DB, cfg *config.Config) *App {
	return &App{
		screen:  ScreenCalculator,
		db:      db,
		cfg:     cfg,
		form:    NewFormModel(db, cfg),
		history: NewHistoryModel(db, cfg.Formatter()),
		help:    NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.form.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		}

		// The calculator owns most keys while the user is typing; other
		// screens get the global bindings.
		if a.screen != ScreenCalculator {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "1":
				a.screen = ScreenCalculator
				return a, a.form.Init()
			case "2":
				a.screen = ScreenHistory
				a.history = NewHistoryModel(a.db, a.cfg.Formatter())
				return a, a.history.Init()
			case "?":
				if a.screen != ScreenHelp {
					a.prevScreen = a.screen
					a.screen = ScreenHelp
				}
				return a, nil
			case "esc":
				switch a.screen {
				case ScreenHelp:
					a.screen = a.prevScreen
				case ScreenResults:
					a.screen = ScreenCalculator
				}
				return a, nil
			case "e":
				if a.screen == ScreenResults {
					a.screen = ScreenCalculator
					return a, a.form.Init()
				}
			}
		} else if msg.String() == "esc" {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case estimateComputedMsg:
		if msg.computeErr != nil {
			a.form.err = msg.computeErr
			a.screen = ScreenCalculator
			return a, nil
		}
		a.results = NewResultsModel(msg, a.cfg.Formatter())
		a.screen = ScreenResults
		return a, nil
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenCalculator:
		var m tea.Model
		m, cmd = a.form.Update(msg)
		a.form = m.(FormModel)
	case ScreenResults:
		var m tea.Model
		m, cmd = a.results.Update(msg)
		a.results = m.(ResultsModel)
	case ScreenHistory:
		var m tea.Model
		m, cmd = a.history.Update(msg)
		a.history = m.(HistoryModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenCalculator:
		content = a.form.View()
	case ScreenResults:
		content = a.results.View()
	case ScreenHistory:
		content = a.history.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Sport Effort Calculator")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Calculator", ScreenCalculator},
		{"2", "History", ScreenHistory},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}
