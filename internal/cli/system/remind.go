package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/dayly/internal/app"
	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/notifier"
	"github.com/julianstephens/dayly/internal/reminder"
)

type RemindCmd struct {
	DryRun bool `help:"Print the reminder instead of delivering it."`
	Force  bool `help:"Send even before the configured reminder hour."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	now := ctx.Clock.Now()
	if !c.Force && !reminder.ShouldShowEveningReminder(now, a.Settings.ReminderHour) {
		fmt.Fprintf(ctx.Out, "It's not reminder time yet (%02d:00).\n", a.Settings.ReminderHour)
		return nil
	}

	msg, ok := eveningMessage(a)
	if !ok {
		fmt.Fprintln(ctx.Out, cli.Success("Already checked in today. Nothing to remind."))
		return nil
	}

	if c.DryRun {
		fmt.Fprintln(ctx.Out, msg)
		return nil
	}
	return notifierFor(ctx, a).Notify(context.Background(), msg)
}

func eveningMessage(a *app.App) (string, bool) {
	if g, ok := a.Goals.Current(); ok {
		return reminder.Evening(a.Clock.Now(), a.Streak.State(), &g)
	}
	return reminder.Evening(a.Clock.Now(), a.Streak.State(), nil)
}

func notifierFor(ctx *cli.Context, a *app.App) notifier.Notifier {
	if a.Settings.WebhookURL == "" {
		return &notifier.Writer{Out: ctx.Out}
	}
	return notifier.New(a.Settings.WebhookURL)
}
