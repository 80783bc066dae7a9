package models

import "github.com/julianstephens/dayly/internal/constants"

// CheckInRecord is a single day's entry in a check-in ledger
type CheckInRecord struct {
	Kind             constants.CheckInKind `json:"kind"`
	OccurredAtMillis int64                 `json:"occurred_at_millis"`
}

// StreakSegment is a closed (broken) run of consecutive check-in days
type StreakSegment struct {
	Start  string `json:"start"` // YYYY-MM-DD format
	End    string `json:"end"`   // YYYY-MM-DD format
	Length int    `json:"length"`
}

// StreakState is the persisted aggregate owned by the streak engine
type StreakState struct {
	SchemaVersion   int                      `json:"schema_version"`
	CurrentLength   int                      `json:"current_length"`
	LastCheckInDate string                   `json:"last_check_in_date,omitempty"` // empty when never checked in
	CheckIns        map[string]CheckInRecord `json:"check_ins"`
	LongestLength   int                      `json:"longest_length"`
	TotalCheckIns   int                      `json:"total_check_ins"`
	History         []StreakSegment          `json:"history"`
}

// NewStreakState returns an empty state ready for first use.
func NewStreakState() StreakState {
	return StreakState{
		SchemaVersion: constants.StreakSchemaVersion,
		CheckIns:      make(map[string]CheckInRecord),
		History:       []StreakSegment{},
	}
}

// Clone returns a deep copy so callers cannot mutate engine-owned maps.
func (s StreakState) Clone() StreakState {
	out := s
	out.CheckIns = make(map[string]CheckInRecord, len(s.CheckIns))
	for k, v := range s.CheckIns {
		out.CheckIns[k] = v
	}
	out.History = append([]StreakSegment(nil), s.History...)
	return out
}
