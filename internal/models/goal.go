package models

import "github.com/julianstephens/dayly/internal/constants"

// GoalCheckIn is one day of recorded goal progress
type GoalCheckIn struct {
	Timestamp int64 `json:"timestamp"`
}

// Milestone is a progress threshold within a goal
type Milestone struct {
	ThresholdDays    int    `json:"threshold_days"`
	Achieved         bool   `json:"achieved"`
	AchievedAtMillis *int64 `json:"achieved_at_millis"`
	Message          string `json:"message"`
}

// Goal is a named, time-boxed commitment tracked one day at a time
type Goal struct {
	ID                string                 `json:"id"`
	Title             string                 `json:"title"`
	Description       string                 `json:"description"`
	StartDate         string                 `json:"start_date"`  // YYYY-MM-DD format
	TotalDays         int                    `json:"total_days"`  // at least 1
	TargetDate        string                 `json:"target_date"` // StartDate + TotalDays
	ProgressDays      int                    `json:"progress_days"`
	CheckIns          map[string]GoalCheckIn `json:"check_ins"`
	Completed         bool                   `json:"completed"`
	CompletedAtMillis *int64                 `json:"completed_at_millis"`
	Milestones        []Milestone            `json:"milestones"`
	IsActive          bool                   `json:"is_active"`
	ResetPolicy       constants.ResetPolicy  `json:"reset_policy"`
	LastProgressDate  string                 `json:"last_progress_date,omitempty"`
	GoalStreak        int                    `json:"goal_streak"`
	LongestGoalStreak int                    `json:"longest_goal_streak"`
}

// Percent returns progress as a percentage capped at 100.
func (g Goal) Percent() float64 {
	if g.TotalDays <= 0 {
		return 0
	}
	p := float64(g.ProgressDays) / float64(g.TotalDays) * 100
	if p > 100 {
		return 100
	}
	return p
}

// DaysRemaining returns the number of progress days still needed.
func (g Goal) DaysRemaining() int {
	if r := g.TotalDays - g.ProgressDays; r > 0 {
		return r
	}
	return 0
}

// Clone returns a deep copy of the goal.
func (g Goal) Clone() Goal {
	out := g
	out.CheckIns = make(map[string]GoalCheckIn, len(g.CheckIns))
	for k, v := range g.CheckIns {
		out.CheckIns[k] = v
	}
	out.Milestones = append([]Milestone(nil), g.Milestones...)
	return out
}

// GoalSet is the persisted collection of goals, in creation order
type GoalSet struct {
	SchemaVersion        int    `json:"schema_version"`
	Goals                []Goal `json:"goals"`
	ActiveGoalIndex      int    `json:"active_goal_index"`
	LastMotivationMillis int64  `json:"last_motivation_millis,omitempty"`
}

// NewGoalSet returns an empty, current-version goal set.
func NewGoalSet() GoalSet {
	return GoalSet{
		SchemaVersion:   constants.GoalSetSchemaVersion,
		Goals:           []Goal{},
		ActiveGoalIndex: -1,
	}
}

// CurrentIndex resolves the active goal, falling back to the most recently
// created goal when the stored index is out of range. Returns -1 when empty.
func (s GoalSet) CurrentIndex() int {
	if len(s.Goals) == 0 {
		return -1
	}
	if s.ActiveGoalIndex < 0 || s.ActiveGoalIndex >= len(s.Goals) {
		return len(s.Goals) - 1
	}
	return s.ActiveGoalIndex
}
