package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayly/internal/constants"
	"github.com/julianstephens/dayly/internal/goal"
)

const customDuration = "custom"

// GoalFormModel holds the values bound to the new-goal form
type GoalFormModel struct {
	Title       string
	Description string
	Duration    string
	CustomDays  string
	Policy      constants.ResetPolicy
}

// NewGoalForm builds the new-goal form bound to m.
func NewGoalForm(m *GoalFormModel) *huh.Form {
	if m.Duration == "" {
		m.Duration = strconv.Itoa(constants.DefaultGoalDays)
	}
	if m.Policy == "" {
		m.Policy = constants.ResetLenient
	}

	durations := make([]huh.Option[string], 0, len(constants.GoalPresets)+1)
	for _, d := range constants.GoalPresets {
		durations = append(durations, huh.NewOption(fmt.Sprintf("%d days", d), strconv.Itoa(d)))
	}
	durations = append(durations, huh.NewOption("Custom", customDuration))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What's your goal?").
				Value(&m.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Description (optional)").
				Value(&m.Description),
			huh.NewSelect[string]().
				Title("Duration").
				Options(durations...).
				Value(&m.Duration),
		),
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Custom length in days (%d-%d)", constants.MinCustomGoalDays, constants.MaxCustomGoalDays)).
				Value(&m.CustomDays).
				Validate(func(s string) error {
					if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
						return errors.New("enter a whole number of days")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return m.Duration != customDuration }),
		huh.NewGroup(
			huh.NewSelect[constants.ResetPolicy]().
				Title("If you miss a day").
				Options(
					huh.NewOption("Keep my progress (lenient)", constants.ResetLenient),
					huh.NewOption("Start over (strict)", constants.ResetStrict),
				).
				Value(&m.Policy),
		),
	)
}

// Input converts the form values into a goal request.
func (m *GoalFormModel) Input() (goal.Input, error) {
	in := goal.Input{
		Title:       m.Title,
		Description: m.Description,
		ResetPolicy: m.Policy,
	}
	raw := m.Duration
	if raw == customDuration {
		raw = m.CustomDays
		in.Custom = true
	}
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return goal.Input{}, fmt.Errorf("invalid duration %q", raw)
	}
	in.TotalDays = days
	return in, nil
}
