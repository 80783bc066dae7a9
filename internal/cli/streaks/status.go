package streaks

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/reminder"
)

type StatusCmd struct {
	JSON bool `help:"Print the status as JSON."`
}

type status struct {
	CurrentLength  int      `json:"current_length"`
	LongestLength  int      `json:"longest_length"`
	TotalCheckIns  int      `json:"total_check_ins"`
	CheckedInToday bool     `json:"checked_in_today"`
	Goal           *goalRow `json:"goal,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}

type goalRow struct {
	Title         string  `json:"title"`
	ProgressDays  int     `json:"progress_days"`
	TotalDays     int     `json:"total_days"`
	Percent       float64 `json:"percent"`
	DaysRemaining int     `json:"days_remaining"`
	GoalStreak    int     `json:"goal_streak"`
	Completed     bool    `json:"completed"`
	Pace          string  `json:"pace,omitempty"`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	now := ctx.Clock.Now()
	state := a.Streak.State()
	st := status{
		CurrentLength:  state.CurrentLength,
		LongestLength:  state.LongestLength,
		TotalCheckIns:  state.TotalCheckIns,
		CheckedInToday: a.Streak.CheckedInToday(),
	}
	if msg, ok := reminder.StreakAtRisk(now, state); ok {
		st.Warnings = append(st.Warnings, msg)
	}

	if d, ok := a.Goals.Display(); ok {
		st.Goal = &goalRow{
			Title:         d.Goal.Title,
			ProgressDays:  d.Goal.ProgressDays,
			TotalDays:     d.Goal.TotalDays,
			Percent:       d.Percent,
			DaysRemaining: d.DaysRemaining,
			GoalStreak:    d.Goal.GoalStreak,
			Completed:     d.Goal.Completed,
			Pace:          d.Pace,
		}
		if msg, ok := reminder.GoalStreakAtRisk(now, d.Goal); ok {
			st.Warnings = append(st.Warnings, msg)
		}
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	fmt.Fprintln(ctx.Out, cli.Heading("Streak"))
	fmt.Fprintf(ctx.Out, "  Current:  %d days\n", st.CurrentLength)
	fmt.Fprintf(ctx.Out, "  Longest:  %d days\n", st.LongestLength)
	fmt.Fprintf(ctx.Out, "  Total:    %d check-ins\n", st.TotalCheckIns)
	if st.CheckedInToday {
		fmt.Fprintln(ctx.Out, "  Today:    checked in")
	} else {
		fmt.Fprintln(ctx.Out, "  Today:    not yet")
	}

	if st.Goal != nil {
		g := st.Goal
		fmt.Fprintln(ctx.Out)
		fmt.Fprintln(ctx.Out, cli.Heading("Goal: "+g.Title))
		fmt.Fprintf(ctx.Out, "  %s\n", cli.Bar(g.Percent, 30))
		fmt.Fprintf(ctx.Out, "  Day %d of %d, %d remaining\n", g.ProgressDays, g.TotalDays, g.DaysRemaining)
		fmt.Fprintf(ctx.Out, "  Goal streak: %d\n", g.GoalStreak)
		if g.Completed {
			fmt.Fprintln(ctx.Out, "  "+cli.Success("Completed"))
		} else if g.Pace != "" {
			fmt.Fprintln(ctx.Out, "  "+cli.Muted(g.Pace))
		}
	}

	for _, w := range st.Warnings {
		fmt.Fprintln(ctx.Out)
		fmt.Fprintln(ctx.Out, cli.Warning(w))
	}
	return nil
}
