package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayly/internal/constants"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateNewGoal {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-10, 10), 60)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
		case key.Matches(msg, m.keys.CheckIn):
			m.checkIn(constants.CheckInShowedUp)
		case key.Matches(msg, m.keys.WorkedOn):
			m.checkIn(constants.CheckInWorkedTowardGoal)
		case key.Matches(msg, m.keys.Progress):
			res := m.app.Goals.RecordProgress()
			m.setResult(res.Result)
		case key.Matches(msg, m.keys.NewGoal):
			m.goalForm = &GoalFormModel{Policy: m.app.Settings.GoalResetPolicy}
			m.form = NewGoalForm(m.goalForm)
			m.state = StateNewGoal
			return m, m.form.Init()
		case key.Matches(msg, m.keys.Up):
			if m.state == StateGoals && m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.state == StateGoals && m.cursor < len(m.app.Goals.Goals())-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Enter):
			if m.state == StateGoals && len(m.app.Goals.Goals()) > 0 {
				m.setResult(m.app.Goals.SelectGoal(m.cursor))
			}
		}
	}

	return m, nil
}

func (m *Model) checkIn(kind constants.CheckInKind) {
	res := m.app.Streak.CheckIn(kind)
	m.setResult(res.Result)
	if res.Success && res.Goal != nil {
		// Goal messages are more specific than the streak message
		if res.Goal.Success {
			m.setResult(res.Goal.Result)
		} else {
			m.status += " " + res.Goal.Message
			m.kind = statusWarn
		}
	}
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		m.state = StateGoals
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = StateGoals
		in, err := m.goalForm.Input()
		if err != nil {
			m.status, m.kind = err.Error(), statusErr
			return m, nil
		}
		res := m.app.Goals.SetGoal(in)
		m.setResult(res.Result)
		if res.Success {
			m.cursor = m.app.Goals.Set().CurrentIndex()
		}
		return m, nil
	case huh.StateAborted:
		m.state = StateGoals
		return m, nil
	}
	return m, cmd
}
