package streaks

import (
	"fmt"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/cli"
)

type YearCmd struct{}

func (c *YearCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	now := ctx.Clock.Now()
	year := calendar.YearProgress(now)
	month := calendar.MonthProgress(now)
	season := calendar.SeasonFor(now, a.Settings.Hemisphere)

	fmt.Fprintln(ctx.Out, cli.Heading(calendar.Greeting(now)+"!"))
	fmt.Fprintf(ctx.Out, "  %s  day %d of %d  %s\n", year.Label, year.Elapsed, year.Total, cli.Bar(year.Percent, 20))
	fmt.Fprintf(ctx.Out, "  %-9s day %d of %d  %s\n", month.Label, month.Elapsed, month.Total, cli.Bar(month.Percent, 20))
	fmt.Fprintf(ctx.Out, "  Week %d, %s\n", calendar.WeekNumber(now), season.Name)
	fmt.Fprintf(ctx.Out, "  %d days left this year\n", year.Remaining)
	return nil
}
