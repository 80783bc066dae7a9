package models

import "github.com/julianstephens/dayly/internal/constants"

// Settings represents application-wide settings
type Settings struct {
	GracePeriodHours       int                   `json:"grace_period_hours" validate:"min=24,max=72"`       // hours after the last check-in before a streak breaks
	ReminderEnabled        bool                  `json:"reminder_enabled"`                                  // whether the evening reminder fires
	ReminderHour           int                   `json:"reminder_hour" validate:"min=0,max=23"`             // local hour of the evening reminder
	GoalResetPolicy        constants.ResetPolicy `json:"goal_reset_policy" validate:"oneof=lenient strict"` // policy given to newly created goals
	MotivationCooldownDays int                   `json:"motivation_cooldown_days" validate:"min=1,max=30"`  // minimum days between unsolicited pace messages
	Hemisphere             constants.Hemisphere  `json:"hemisphere" validate:"oneof=northern southern"`     // season table used by the year view
	WebhookURL             string                `json:"webhook_url,omitempty" validate:"omitempty,url"`    // reminder webhook; empty prints to stdout
}

// DefaultSettings returns the settings used on first run.
func DefaultSettings() Settings {
	return Settings{
		GracePeriodHours:       constants.DefaultGracePeriodHours,
		ReminderEnabled:        true,
		ReminderHour:           constants.DefaultReminderHour,
		GoalResetPolicy:        constants.ResetLenient,
		MotivationCooldownDays: constants.DefaultMotivationCooldownDays,
		Hemisphere:             constants.HemisphereNorthern,
	}
}
