package settings

import (
	"fmt"

	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/constants"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	GracePeriodHours       *int    `help:"Hours after the last check-in before a streak breaks (24-72)."`
	ReminderEnabled        *bool   `help:"Enable or disable the evening reminder."`
	ReminderHour           *int    `help:"Local hour of the evening reminder (0-23)."`
	GoalResetPolicy        *string `help:"Reset policy for new goals (lenient or strict)."`
	MotivationCooldownDays *int    `help:"Minimum days between unprompted pace messages (1-30)."`
	Hemisphere             *string `help:"Season table for the year view (northern or southern)."`
	WebhookURL             *string `help:"URL to POST reminders to. Empty prints to stdout." name:"webhook-url"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}
	settings := a.Settings

	if c.List {
		webhook := settings.WebhookURL
		if webhook == "" {
			webhook = "(stdout)"
		}
		fmt.Fprintln(ctx.Out, "Current Settings:")
		fmt.Fprintf(ctx.Out, "  Grace Period:          %d hours\n", settings.GracePeriodHours)
		fmt.Fprintf(ctx.Out, "  Goal Reset Policy:     %s\n", settings.GoalResetPolicy)
		fmt.Fprintf(ctx.Out, "  Motivation Cooldown:   %d days\n", settings.MotivationCooldownDays)
		fmt.Fprintf(ctx.Out, "  Hemisphere:            %s\n", settings.Hemisphere)
		fmt.Fprintln(ctx.Out, "\nReminder Settings:")
		fmt.Fprintf(ctx.Out, "  Reminder Enabled:      %v\n", settings.ReminderEnabled)
		fmt.Fprintf(ctx.Out, "  Reminder Hour:         %02d:00\n", settings.ReminderHour)
		fmt.Fprintf(ctx.Out, "  Webhook:               %s\n", webhook)
		return nil
	}

	updated := false
	if c.GracePeriodHours != nil {
		settings.GracePeriodHours = *c.GracePeriodHours
		updated = true
	}
	if c.ReminderEnabled != nil {
		settings.ReminderEnabled = *c.ReminderEnabled
		updated = true
	}
	if c.ReminderHour != nil {
		settings.ReminderHour = *c.ReminderHour
		updated = true
	}
	if c.GoalResetPolicy != nil {
		settings.GoalResetPolicy = constants.ResetPolicy(*c.GoalResetPolicy)
		updated = true
	}
	if c.MotivationCooldownDays != nil {
		settings.MotivationCooldownDays = *c.MotivationCooldownDays
		updated = true
	}
	if c.Hemisphere != nil {
		settings.Hemisphere = constants.Hemisphere(*c.Hemisphere)
		updated = true
	}
	if c.WebhookURL != nil {
		settings.WebhookURL = *c.WebhookURL
		updated = true
	}

	if !updated {
		fmt.Fprintln(ctx.Out, "No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := a.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintln(ctx.Out, cli.Success("Settings updated successfully."))
	return nil
}
