package streaks

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/constants"
)

type HistoryCmd struct {
	Days int `help:"Number of recent days to show." default:"14"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	if c.Days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	state := a.Streak.State()
	now := ctx.Clock.Now()

	fmt.Fprintln(ctx.Out, cli.Heading(fmt.Sprintf("Last %d days", c.Days)))
	var row strings.Builder
	for i := c.Days - 1; i >= 0; i-- {
		day := calendar.DateKey(now.AddDate(0, 0, -i))
		rec, ok := state.CheckIns[day]
		switch {
		case !ok:
			row.WriteString("·")
		case rec.Kind == constants.CheckInWorkedTowardGoal:
			row.WriteString("★")
		default:
			row.WriteString("●")
		}
	}
	fmt.Fprintf(ctx.Out, "  %s\n", row.String())
	fmt.Fprintln(ctx.Out, cli.Muted("  ● showed up  ★ worked toward goal  · missed"))

	fmt.Fprintln(ctx.Out)
	fmt.Fprintln(ctx.Out, cli.Heading("Past streaks"))
	if len(state.History) == 0 {
		fmt.Fprintln(ctx.Out, "  No finished streaks yet.")
		return nil
	}
	for i := len(state.History) - 1; i >= 0; i-- {
		seg := state.History[i]
		fmt.Fprintf(ctx.Out, "  %s → %s  %d days\n", seg.Start, seg.End, seg.Length)
	}
	return nil
}
