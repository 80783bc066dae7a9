package premium

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/constants"
)

type PremiumCmd struct {
	Feature string `arg:"" help:"Feature you'd like: multiple_goals, streak_freeze, advanced_stats, custom_themes, data_export." enum:"multiple_goals,streak_freeze,advanced_stats,custom_themes,data_export"`
}

func (c *PremiumCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	feature := constants.Feature(c.Feature)
	if a.Intents.IsAtFreeLimit(feature) {
		fmt.Fprintf(ctx.Out, "%s is a Premium feature (free allowance: %d).\n", feature, a.Intents.Limit(feature))
	}
	return ctx.PrintResult(a.Intents.RecordIntent(feature))
}

type IntentsCmd struct {
	Raw bool `help:"List every recorded event instead of totals."`
}

func (c *IntentsCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	events := a.Intents.Events()
	if len(events) == 0 {
		fmt.Fprintln(ctx.Out, "No premium interest recorded.")
		return nil
	}

	if c.Raw {
		for _, ev := range events {
			when := calendar.FromMillis(ev.TimestampMillis).Format(time.DateTime)
			fmt.Fprintf(ctx.Out, "%s  %-16s %s\n", when, ev.Feature, cli.Muted(ev.AppVersion))
		}
		return nil
	}

	fmt.Fprintln(ctx.Out, cli.Heading(fmt.Sprintf("Premium interest (%d events, newest %d kept)", len(events), constants.MaxIntentEvents)))
	for _, fc := range a.Intents.CountByFeature() {
		state := "free"
		if a.Intents.IsAtFreeLimit(fc.Feature) {
			state = "at limit"
		}
		fmt.Fprintf(ctx.Out, "  %-16s %3d  %s\n", fc.Feature, fc.Count, cli.Muted(state))
	}
	return nil
}
