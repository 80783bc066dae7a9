package models

// Result is the common shape of every mutating engine operation. Success is
// false for validation and duplicate-action rejections, with Err holding the
// sentinel for callers that branch on it. SaveFailed is set when the mutation
// happened in memory but could not be persisted.
type Result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	SaveFailed bool   `json:"save_failed,omitempty"`
	Err        error  `json:"-"`
}

// Reject builds a failed result.
func Reject(err error, message string) Result {
	return Result{Message: message, Err: err}
}

// CheckInResult is returned by a streak check-in
type CheckInResult struct {
	Result
	CurrentLength int             `json:"current_length"`
	LongestLength int             `json:"longest_length"`
	Restarted     bool            `json:"restarted,omitempty"`
	Goal          *ProgressResult `json:"goal,omitempty"`
}

// ProgressResult is returned when recording progress on a goal
type ProgressResult struct {
	Result
	GoalID       string      `json:"goal_id,omitempty"`
	ProgressDays int         `json:"progress_days"`
	TotalDays    int         `json:"total_days"`
	GoalStreak   int         `json:"goal_streak"`
	Completed    bool        `json:"completed"`
	Reset        bool        `json:"reset,omitempty"`
	Milestones   []Milestone `json:"milestones,omitempty"` // achieved by this call
	Pace         string      `json:"pace,omitempty"`
}

// SetGoalResult is returned when creating a goal
type SetGoalResult struct {
	Result
	Goal *Goal `json:"goal,omitempty"`
}

// ReconcileResult reports what a session-start reconciliation changed
type ReconcileResult struct {
	Result
	Broken  bool           `json:"broken"`
	Segment *StreakSegment `json:"segment,omitempty"`
}

// GoalReconcileResult reports which goals a session-start reconciliation changed
type GoalReconcileResult struct {
	Result
	Reset        []string `json:"reset,omitempty"`         // goals whose progress was wiped
	StreaksEnded []string `json:"streaks_ended,omitempty"` // goals whose goal streak ended
}
