package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/models"
)

// ErrInvalid wraps every struct tag violation
var ErrInvalid = errors.New("invalid value")

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their JSON name, which is what users see in settings
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Struct checks v against its validate tags.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// Settings validates the persisted settings blob.
func Settings(s models.Settings) error {
	return Struct(s)
}

// ConflictType represents the type of consistency problem found in stored state
type ConflictType string

const (
	ConflictLongestBelowCurrent ConflictType = "longest_below_current"
	ConflictMissingLastCheckIn  ConflictType = "missing_last_check_in"
	ConflictHistoryOverCap      ConflictType = "history_over_cap"
	ConflictInvalidDate         ConflictType = "invalid_date"
	ConflictProgressOverTotal   ConflictType = "progress_over_total"
	ConflictCompletionMismatch  ConflictType = "completion_mismatch"
	ConflictDuplicateGoalID     ConflictType = "duplicate_goal_id"
	ConflictActiveIndex         ConflictType = "active_index_out_of_range"
)

// Conflict represents a detected inconsistency
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string // YYYY-MM-DD format (if applicable)
	GoalID      string // (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator checks persisted streak and goal state for broken invariants
type Validator struct {
	maxHistory int
}

func New(maxHistory int) *Validator {
	return &Validator{maxHistory: maxHistory}
}

// ValidateStreak reports counters and ledger entries that disagree.
func (v *Validator) ValidateStreak(s models.StreakState) ValidationResult {
	var result ValidationResult

	if s.LongestLength < s.CurrentLength {
		result.add(Conflict{
			Type:        ConflictLongestBelowCurrent,
			Description: fmt.Sprintf("longest streak (%d) is shorter than the current streak (%d)", s.LongestLength, s.CurrentLength),
		})
	}

	if s.CurrentLength > 0 {
		if _, ok := s.CheckIns[s.LastCheckInDate]; !ok {
			result.add(Conflict{
				Type:        ConflictMissingLastCheckIn,
				Description: fmt.Sprintf("active streak ends on %q but that day has no check-in", s.LastCheckInDate),
				Date:        s.LastCheckInDate,
			})
		}
	}

	if v.maxHistory > 0 && len(s.History) > v.maxHistory {
		result.add(Conflict{
			Type:        ConflictHistoryOverCap,
			Description: fmt.Sprintf("streak history has %d entries (limit %d)", len(s.History), v.maxHistory),
		})
	}

	dates := make([]string, 0, len(s.CheckIns))
	for d := range s.CheckIns {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		if _, err := calendar.ParseDate(d); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("check-in ledger has an invalid date key %q", d),
				Date:        d,
			})
		}
	}

	return result
}

// ValidateGoals reports goals whose progress and completion disagree.
func (v *Validator) ValidateGoals(set models.GoalSet) ValidationResult {
	var result ValidationResult
	seen := make(map[string]bool)

	if len(set.Goals) > 0 && (set.ActiveGoalIndex < 0 || set.ActiveGoalIndex >= len(set.Goals)) {
		result.add(Conflict{
			Type:        ConflictActiveIndex,
			Description: fmt.Sprintf("active goal index %d is out of range for %d goals; the newest goal is used", set.ActiveGoalIndex, len(set.Goals)),
		})
	}

	for _, g := range set.Goals {
		if seen[g.ID] {
			result.add(Conflict{
				Type:        ConflictDuplicateGoalID,
				Description: fmt.Sprintf("goal id %s is used more than once", g.ID),
				GoalID:      g.ID,
			})
		}
		seen[g.ID] = true

		if _, err := calendar.ParseDate(g.StartDate); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("goal %q has an invalid start date %q", g.Title, g.StartDate),
				GoalID:      g.ID,
				Date:        g.StartDate,
			})
		}

		if g.ProgressDays > g.TotalDays {
			result.add(Conflict{
				Type:        ConflictProgressOverTotal,
				Description: fmt.Sprintf("goal %q has %d of %d days recorded", g.Title, g.ProgressDays, g.TotalDays),
				GoalID:      g.ID,
			})
		}

		if g.Completed != (g.ProgressDays >= g.TotalDays) {
			result.add(Conflict{
				Type:        ConflictCompletionMismatch,
				Description: fmt.Sprintf("goal %q is marked completed=%v at %d of %d days", g.Title, g.Completed, g.ProgressDays, g.TotalDays),
				GoalID:      g.ID,
			})
		}
	}

	return result
}
