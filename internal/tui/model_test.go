package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayly/internal/app"
	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/constants"
	"github.com/julianstephens/dayly/internal/goal"
	"github.com/julianstephens/dayly/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	clock := &calendar.FixedClock{T: time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)}
	a, err := app.Open(storage.NewMemoryStore(), clock)
	if err != nil {
		t.Fatalf("app.Open failed: %v", err)
	}
	return NewModel(a)
}

func press(m Model, keys string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return next.(Model)
}

func TestCheckInKey(t *testing.T) {
	m := press(newTestModel(t), "c")

	if m.app.Streak.CurrentLength() != 1 {
		t.Fatalf("streak = %d, want 1", m.app.Streak.CurrentLength())
	}
	if m.kind != statusOK || !strings.Contains(m.status, "Day 1") {
		t.Errorf("status = %q (%d)", m.status, m.kind)
	}

	m = press(m, "c")
	if m.kind != statusErr {
		t.Errorf("second check-in should be rejected, status %q", m.status)
	}
}

func TestWorkedOnKeyWithoutGoal(t *testing.T) {
	m := press(newTestModel(t), "w")

	if m.app.Streak.CurrentLength() != 1 {
		t.Fatal("check-in should stand without a goal")
	}
	if m.kind != statusWarn || !strings.Contains(m.status, "No goal set") {
		t.Errorf("status = %q (%d)", m.status, m.kind)
	}
}

func TestTabsAndGoalSelection(t *testing.T) {
	m := newTestModel(t)
	m.app.Goals.SetGoal(goal.Input{Title: "Read", TotalDays: 30})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.state != StateGoals {
		t.Fatalf("state = %d, want goals", m.state)
	}
	if !strings.Contains(m.View(), "1. Read") {
		t.Errorf("goals view missing goal:\n%s", m.View())
	}

	m = press(m, "p")
	if g, _ := m.app.Goals.Current(); g.ProgressDays != 1 {
		t.Errorf("progress = %d, want 1", g.ProgressDays)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	if m.state != StateToday {
		t.Errorf("state = %d, want today", m.state)
	}
}

func TestGoalFormInput(t *testing.T) {
	tests := []struct {
		name     string
		form     GoalFormModel
		wantDays int
		custom   bool
		wantErr  bool
	}{
		{"preset", GoalFormModel{Title: "Run", Duration: "60"}, 60, false, false},
		{"custom", GoalFormModel{Title: "Run", Duration: customDuration, CustomDays: " 45 "}, 45, true, false},
		{"bad custom", GoalFormModel{Title: "Run", Duration: customDuration, CustomDays: "soon"}, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := tt.form.Input()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if in.TotalDays != tt.wantDays || in.Custom != tt.custom {
				t.Errorf("Input() = %+v", in)
			}
		})
	}
}

func TestNewGoalFormDefaults(t *testing.T) {
	fm := &GoalFormModel{}
	if NewGoalForm(fm) == nil {
		t.Fatal("nil form")
	}
	if fm.Duration != "90" || fm.Policy != constants.ResetLenient {
		t.Errorf("defaults = %+v", fm)
	}
}
