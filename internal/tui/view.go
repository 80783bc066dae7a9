package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/reminder"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateGoals:
		content = m.viewGoals()
	case StateYear:
		content = m.viewYear()
	case StateNewGoal:
		content = m.form.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Goals", "Year"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	switch m.kind {
	case statusOK:
		return okStyle.Render(m.status)
	case statusWarn:
		return warnStyle.Render(m.status)
	case statusErr:
		return errStyle.Render(m.status)
	default:
		return m.status
	}
}

func (m Model) viewToday() string {
	now := m.app.Clock.Now()
	state := m.app.Streak.State()

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", calendar.Greeting(now))
	fmt.Fprintf(&b, "%s %s\n", bigNumberStyle.Render(fmt.Sprintf("%d", state.CurrentLength)), labelStyle.Render("day streak"))
	fmt.Fprintf(&b, "%s\n\n", labelStyle.Render(fmt.Sprintf("longest %d · total %d", state.LongestLength, state.TotalCheckIns)))

	if m.app.Streak.CheckedInToday() {
		b.WriteString(okStyle.Render("Checked in today ✓"))
	} else {
		b.WriteString("Not checked in yet. Press c to check in.")
	}
	b.WriteString("\n")

	if msg, ok := reminder.StreakAtRisk(now, state); ok {
		b.WriteString("\n" + warnStyle.Render(msg) + "\n")
	}

	if d, ok := m.app.Goals.Display(); ok {
		fmt.Fprintf(&b, "\n%s\n%s\n", d.Goal.Title, m.bar.ViewAs(d.Percent/100))
		fmt.Fprintf(&b, "%s\n", labelStyle.Render(fmt.Sprintf("day %d of %d · goal streak %d", d.Goal.ProgressDays, d.Goal.TotalDays, d.Goal.GoalStreak)))
		if d.AtRisk {
			b.WriteString(warnStyle.Render("Goal streak at risk! Record progress today.") + "\n")
		}
	}
	return b.String()
}

func (m Model) viewGoals() string {
	views := m.app.Goals.DisplayAll()
	if len(views) == 0 {
		return "No goals yet. Press n to create one."
	}

	current := m.app.Goals.Set().CurrentIndex()
	var b strings.Builder
	for i, d := range views {
		line := fmt.Sprintf("%d. %s", i+1, d.Goal.Title)
		if i == current {
			line += " ★"
		}
		if d.Goal.Completed {
			line += " (done)"
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s\n", m.bar.ViewAs(d.Percent/100))
		if d.Pace != "" {
			fmt.Fprintf(&b, "  %s\n", labelStyle.Render(d.Pace))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewYear() string {
	now := m.app.Clock.Now()
	year := calendar.YearProgress(now)
	month := calendar.MonthProgress(now)
	season := calendar.SeasonFor(now, m.app.Settings.Hemisphere)

	var b strings.Builder
	fmt.Fprintf(&b, "%s · day %d of %d\n%s\n\n", year.Label, year.Elapsed, year.Total, m.bar.ViewAs(year.Percent/100))
	fmt.Fprintf(&b, "%s · day %d of %d\n%s\n\n", month.Label, month.Elapsed, month.Total, m.bar.ViewAs(month.Percent/100))
	fmt.Fprintf(&b, "Week %d · %s · %d days left\n", calendar.WeekNumber(now), season.Name, year.Remaining)
	return b.String()
}
