package reminder

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/models"
)

// ShouldShowEveningReminder reports whether now is at or past the reminder hour.
func ShouldShowEveningReminder(now time.Time, hour int) bool {
	if hour < 0 || hour > 23 {
		return false
	}
	return now.Hour() >= hour
}

// StreakAtRisk returns a warning when the streak's last day was yesterday and
// today has no check-in yet.
func StreakAtRisk(now time.Time, s models.StreakState) (string, bool) {
	if s.CurrentLength == 0 {
		return "", false
	}
	today := calendar.DateKey(now)
	if _, ok := s.CheckIns[today]; ok {
		return "", false
	}
	if s.LastCheckInDate != calendar.DateKey(now.AddDate(0, 0, -1)) {
		return "", false
	}
	return fmt.Sprintf("Your %d-day streak is at risk! Check in today to keep it alive.", s.CurrentLength), true
}

// GoalStreakAtRisk is StreakAtRisk for a goal's progress streak.
func GoalStreakAtRisk(now time.Time, g models.Goal) (string, bool) {
	if g.GoalStreak == 0 || g.Completed {
		return "", false
	}
	today := calendar.DateKey(now)
	if _, ok := g.CheckIns[today]; ok {
		return "", false
	}
	if g.LastProgressDate != calendar.DateKey(now.AddDate(0, 0, -1)) {
		return "", false
	}
	return fmt.Sprintf("Your %d-day goal streak is at risk! Track progress today to keep it alive.", g.GoalStreak), true
}

// Evening builds the evening reminder text. Nothing is returned once today is
// already checked in.
func Evening(now time.Time, s models.StreakState, current *models.Goal) (string, bool) {
	if _, ok := s.CheckIns[calendar.DateKey(now)]; ok {
		return "", false
	}
	if msg, ok := StreakAtRisk(now, s); ok {
		return msg, true
	}
	if current != nil {
		if msg, ok := GoalStreakAtRisk(now, *current); ok {
			return msg, true
		}
	}
	return "Evening check-in: did you show up for yourself today?", true
}
