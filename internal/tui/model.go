package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayly/internal/app"
	"github.com/julianstephens/dayly/internal/models"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateGoals
	StateYear
	StateNewGoal
)

// tabCount is the number of tabbed states; StateNewGoal is modal
const tabCount = 3

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusErr
)

type Model struct {
	app      *app.App
	state    SessionState
	keys     KeyMap
	help     help.Model
	bar      progress.Model
	form     *huh.Form
	goalForm *GoalFormModel
	cursor   int
	status   string
	kind     statusKind
	quitting bool
	width    int
	height   int
}

func NewModel(a *app.App) Model {
	m := Model{
		app:   a,
		state: StateToday,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.cursor = a.Goals.Set().CurrentIndex()
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.CheckIn, m.keys.WorkedOn)
	case StateGoals:
		keys = append(keys, m.keys.Progress, m.keys.NewGoal, m.keys.Enter)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}
	actions := []key.Binding{m.keys.CheckIn, m.keys.WorkedOn, m.keys.Progress, m.keys.NewGoal}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// setResult shows an engine result in the status line.
func (m *Model) setResult(res models.Result) {
	m.status = res.Message
	switch {
	case !res.Success:
		m.kind = statusErr
	case res.SaveFailed:
		m.kind = statusWarn
	default:
		m.kind = statusOK
	}
}
