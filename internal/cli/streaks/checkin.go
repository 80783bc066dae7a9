package streaks

import (
	"errors"
	"fmt"

	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/constants"
)

type CheckInCmd struct {
	Goal bool `help:"Also record a day of progress on the current goal." short:"g"`
}

func (c *CheckInCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	kind := constants.CheckInShowedUp
	if c.Goal {
		kind = constants.CheckInWorkedTowardGoal
	}

	res := a.Streak.CheckIn(kind)
	streakErr := ctx.PrintResult(res.Result)
	if !res.Success {
		return streakErr
	}

	var goalErr error
	if res.Goal != nil {
		if res.Goal.Success {
			goalErr = ctx.PrintResult(res.Goal.Result)
			if res.Goal.Pace != "" {
				fmt.Fprintln(ctx.Out, cli.Muted(res.Goal.Pace))
			}
		} else {
			// The check-in stands even when the goal turns the day down
			fmt.Fprintln(ctx.Out, cli.Warning(res.Goal.Message))
		}
	}
	if res.LongestLength == res.CurrentLength && res.CurrentLength > 1 {
		fmt.Fprintln(ctx.Out, cli.Muted("That's your longest streak yet."))
	}

	return errors.Join(streakErr, goalErr)
}
