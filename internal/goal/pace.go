package goal

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/models"
)

// ExpectedDays is the number of days the goal should have recorded by now,
// counting the start day as soon as it begins.
func ExpectedDays(g models.Goal, now time.Time) int {
	start, err := calendar.ParseDate(g.StartDate)
	if err != nil {
		return 0
	}
	elapsed := now.Sub(start).Hours() / 24
	if elapsed <= 0 {
		return 0
	}
	return int(math.Ceil(elapsed))
}

// PaceMessage compares recorded progress with ExpectedDays.
func PaceMessage(g models.Goal, now time.Time) string {
	expected := ExpectedDays(g, now)
	if expected > g.TotalDays {
		expected = g.TotalDays
	}
	switch diff := g.ProgressDays - expected; {
	case diff > 0:
		return fmt.Sprintf("You're %d %s ahead of pace. Keep it up!", diff, plural(diff, "day"))
	case diff < 0:
		return fmt.Sprintf("You're %d %s behind pace. Today is a good day to catch up.", -diff, plural(-diff, "day"))
	default:
		return "Right on track!"
	}
}

// ProjectedCompletionDate is the planned finish date, start + total days.
func ProjectedCompletionDate(g models.Goal) string {
	d, err := calendar.AddDays(g.StartDate, g.TotalDays)
	if err != nil {
		return ""
	}
	return d
}

// EstimatedCompletionDate extrapolates the finish date from the observed
// daily rate. Returns "" when there is no progress to extrapolate from.
func EstimatedCompletionDate(g models.Goal, now time.Time) string {
	if g.Completed || g.ProgressDays <= 0 {
		return ""
	}
	expected := ExpectedDays(g, now)
	if expected < 1 {
		expected = 1
	}
	rate := float64(g.ProgressDays) / float64(expected)
	remaining := g.TotalDays - g.ProgressDays
	if remaining <= 0 {
		return calendar.DateKey(now)
	}
	return calendar.DateKey(now.AddDate(0, 0, int(math.Ceil(float64(remaining)/rate))))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
