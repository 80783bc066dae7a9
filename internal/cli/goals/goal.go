package goals

import (
	"fmt"

	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/constants"
	"github.com/julianstephens/dayly/internal/goal"
	"github.com/julianstephens/dayly/internal/tui"
)

type GoalSetCmd struct {
	Title       string `arg:"" optional:"" help:"Goal title. Omit to fill in a form."`
	Days        int    `help:"Goal length in days (preset: 30, 60, 90, 180, 365)." default:"90"`
	Custom      bool   `help:"Use a custom length between 7 and 730 days."`
	Description string `help:"Optional description." short:"d"`
	Policy      string `help:"What a missed day does: lenient keeps progress, strict resets it." enum:",lenient,strict" default:""`
}

func (c *GoalSetCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	in := goal.Input{
		Title:       c.Title,
		Description: c.Description,
		TotalDays:   c.Days,
		Custom:      c.Custom || !isPreset(c.Days),
		ResetPolicy: constants.ResetPolicy(c.Policy),
	}

	if c.Title == "" {
		form := &tui.GoalFormModel{Policy: a.Settings.GoalResetPolicy}
		if err := tui.NewGoalForm(form).Run(); err != nil {
			return err
		}
		in, err = form.Input()
		if err != nil {
			return err
		}
	}

	res := a.Goals.SetGoal(in)
	return ctx.PrintResult(res.Result)
}

func isPreset(days int) bool {
	for _, p := range constants.GoalPresets {
		if p == days {
			return true
		}
	}
	return false
}

type GoalProgressCmd struct{}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	res := a.Goals.RecordProgress()
	if err := ctx.PrintResult(res.Result); err != nil {
		return err
	}
	if res.Pace != "" {
		fmt.Fprintln(ctx.Out, cli.Muted(res.Pace))
	}
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	views := a.Goals.DisplayAll()
	if len(views) == 0 {
		fmt.Fprintln(ctx.Out, "No goals yet. Create one with 'dayly goal set'.")
		return nil
	}

	current := a.Goals.Set().CurrentIndex()
	for i, d := range views {
		marker := " "
		if i == current {
			marker = "*"
		}
		state := fmt.Sprintf("%d/%d", d.Goal.ProgressDays, d.Goal.TotalDays)
		if d.Goal.Completed {
			state = "done"
		}
		fmt.Fprintf(ctx.Out, "%s %d. %-30s %-8s %s  %s\n", marker, i+1, d.Goal.Title, state, cli.Bar(d.Percent, 15), cli.Muted(string(d.Goal.ResetPolicy)))
	}
	return nil
}

type GoalShowCmd struct {
	Number int `arg:"" optional:"" help:"Goal number from 'dayly goal list'. Defaults to the current goal."`
}

func (c *GoalShowCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	var d goal.Display
	if c.Number == 0 {
		var ok bool
		if d, ok = a.Goals.Display(); !ok {
			return fmt.Errorf("no goal set")
		}
	} else {
		views := a.Goals.DisplayAll()
		if c.Number < 1 || c.Number > len(views) {
			return fmt.Errorf("there is no goal #%d", c.Number)
		}
		d = views[c.Number-1]
	}

	g := d.Goal
	fmt.Fprintln(ctx.Out, cli.Heading(g.Title))
	if g.Description != "" {
		fmt.Fprintln(ctx.Out, "  "+g.Description)
	}
	fmt.Fprintf(ctx.Out, "  %s\n", cli.Bar(d.Percent, 30))
	fmt.Fprintf(ctx.Out, "  Started:     %s\n", g.StartDate)
	fmt.Fprintf(ctx.Out, "  Target:      %s\n", g.TargetDate)
	fmt.Fprintf(ctx.Out, "  Progress:    %d of %d days (%d remaining)\n", g.ProgressDays, g.TotalDays, d.DaysRemaining)
	fmt.Fprintf(ctx.Out, "  Goal streak: %d (longest %d)\n", g.GoalStreak, g.LongestGoalStreak)
	fmt.Fprintf(ctx.Out, "  Reset:       %s\n", g.ResetPolicy)

	fmt.Fprintln(ctx.Out, "  Milestones:")
	for _, m := range g.Milestones {
		mark := "○"
		if m.Achieved {
			mark = "●"
		}
		fmt.Fprintf(ctx.Out, "    %s day %d\n", mark, m.ThresholdDays)
	}

	if d.AtRisk {
		fmt.Fprintln(ctx.Out, cli.Warning(fmt.Sprintf("Your %d-day goal streak is at risk! Track progress today to keep it alive.", g.GoalStreak)))
	}
	return nil
}

type GoalSelectCmd struct {
	Number int `arg:"" help:"Goal number from 'dayly goal list'."`
}

func (c *GoalSelectCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	return ctx.PrintResult(a.Goals.SelectGoal(c.Number - 1))
}

type GoalPaceCmd struct {
	Quiet bool `help:"Respect the motivation cooldown; print nothing while it is running."`
}

func (c *GoalPaceCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	res := a.Goals.Motivation(!c.Quiet)
	if !res.Success && res.Message == "" {
		return nil
	}
	return ctx.PrintResult(res)
}
