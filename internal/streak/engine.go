package streak

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/constants"
	dayerrors "github.com/julianstephens/dayly/internal/errors"
	"github.com/julianstephens/dayly/internal/logger"
	"github.com/julianstephens/dayly/internal/models"
	"github.com/julianstephens/dayly/internal/storage"
)

var (
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrInvalidKind      = errors.New("unknown check-in kind")
)

// GoalRecorder receives goal progress forwarded from goal check-ins
type GoalRecorder interface {
	RecordProgress() models.ProgressResult
}

type Option func(*Engine)

// WithGracePeriod sets how long after the last check-in a streak survives.
func WithGracePeriod(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.grace = d
		}
	}
}

// WithGoalRecorder wires the goal engine that receives worked_toward_goal check-ins.
func WithGoalRecorder(r GoalRecorder) Option {
	return func(e *Engine) { e.goals = r }
}

// Engine owns the daily check-in ledger and the consecutive-day counter
type Engine struct {
	store storage.Provider
	clock calendar.Clock
	grace time.Duration
	goals GoalRecorder
	state models.StreakState
	guard storage.Guard
}

func New(store storage.Provider, clock calendar.Clock, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		clock: clock,
		grace: constants.DefaultGracePeriodHours * time.Hour,
		state: models.NewStreakState(),
		guard: storage.Guard{Key: constants.StreakKey},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load reads the persisted state. Missing or unreadable data leaves the
// engine on an empty state; only provider failures are returned.
func (e *Engine) Load() error {
	var loaded models.StreakState
	status, err := storage.LoadBlob(e.store, constants.StreakKey, func(raw []byte) error {
		s, err := decodeState(raw)
		if err != nil {
			return err
		}
		loaded = s
		return nil
	})
	if err != nil {
		return err
	}

	e.guard.Status = status
	if status == storage.BlobLoaded {
		e.state = loaded
	} else {
		e.state = models.NewStreakState()
	}
	logger.Debug("Streak state loaded", "status", status, "current", e.state.CurrentLength)
	return nil
}

// decodeState accepts the current object shape or a bare legacy counter.
func decodeState(raw []byte) (models.StreakState, error) {
	if n, err := strconv.Atoi(string(raw)); err == nil {
		return upgradeCounter(n), nil
	}

	s := models.NewStreakState()
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.StreakState{}, err
	}
	if s.SchemaVersion > constants.StreakSchemaVersion {
		return models.StreakState{}, fmt.Errorf("streak schema version %d is newer than supported %d", s.SchemaVersion, constants.StreakSchemaVersion)
	}
	if s.CheckIns == nil {
		s.CheckIns = make(map[string]models.CheckInRecord)
	}
	if s.History == nil {
		s.History = []models.StreakSegment{}
	}
	if s.CurrentLength < 0 || s.LongestLength < 0 || s.TotalCheckIns < 0 {
		return models.StreakState{}, errors.New("negative streak counters")
	}
	if s.LongestLength < s.CurrentLength {
		s.LongestLength = s.CurrentLength
	}
	s.SchemaVersion = constants.StreakSchemaVersion
	return s, nil
}

// upgradeCounter keeps a legacy consecutive-day count as the longest streak.
// The legacy value carries no dates, so no active streak can be resumed.
func upgradeCounter(n int) models.StreakState {
	s := models.NewStreakState()
	if n > 0 {
		s.LongestLength = n
		s.TotalCheckIns = n
	}
	return s
}

// SetGoalRecorder wires the goal engine after construction.
func (e *Engine) SetGoalRecorder(r GoalRecorder) {
	e.goals = r
}

// State returns a copy of the current state.
func (e *Engine) State() models.StreakState {
	return e.state.Clone()
}

// BlobStatus reports how the persisted state was found at load time.
func (e *Engine) BlobStatus() storage.BlobStatus {
	return e.guard.Status
}

func (e *Engine) CurrentLength() int { return e.state.CurrentLength }
func (e *Engine) LongestLength() int { return e.state.LongestLength }

// CheckedInToday reports whether today already has a record.
func (e *Engine) CheckedInToday() bool {
	_, ok := e.state.CheckIns[calendar.Today(e.clock)]
	return ok
}

// CheckIn records today's activity and advances or restarts the streak.
func (e *Engine) CheckIn(kind constants.CheckInKind) models.CheckInResult {
	if kind != constants.CheckInShowedUp && kind != constants.CheckInWorkedTowardGoal {
		return models.CheckInResult{Result: models.Reject(ErrInvalidKind, fmt.Sprintf("Unknown check-in kind %q.", kind))}
	}

	now := e.clock.Now()
	today := calendar.DateKey(now)
	yesterday := calendar.Yesterday(e.clock)

	if _, ok := e.state.CheckIns[today]; ok {
		return models.CheckInResult{
			Result:        models.Reject(ErrAlreadyCheckedIn, "You already checked in today. Come back tomorrow!"),
			CurrentLength: e.state.CurrentLength,
			LongestLength: e.state.LongestLength,
		}
	}

	restarted := false
	if e.state.LastCheckInDate != "" && e.state.LastCheckInDate == yesterday {
		e.state.CurrentLength++
	} else {
		// Never checked in, a gap of two or more days, or a date ahead of
		// today after the clock moved back
		if e.state.CurrentLength > 0 {
			e.archive()
			restarted = true
		}
		e.state.CurrentLength = 1
	}

	e.state.CheckIns[today] = models.CheckInRecord{Kind: kind, OccurredAtMillis: calendar.Millis(now)}
	e.state.TotalCheckIns++
	e.state.LastCheckInDate = today
	if e.state.CurrentLength > e.state.LongestLength {
		e.state.LongestLength = e.state.CurrentLength
	}

	res := models.CheckInResult{
		Result:        models.Result{Success: true, Message: checkInMessage(kind, e.state.CurrentLength)},
		CurrentLength: e.state.CurrentLength,
		LongestLength: e.state.LongestLength,
		Restarted:     restarted,
	}
	e.persist(&res.Result)

	logger.Info("Checked in", "kind", kind, "date", today, "current", e.state.CurrentLength)

	if kind == constants.CheckInWorkedTowardGoal && e.goals != nil {
		progress := e.goals.RecordProgress()
		res.Goal = &progress
	}
	return res
}

func checkInMessage(kind constants.CheckInKind, current int) string {
	switch {
	case current == 1 && kind == constants.CheckInWorkedTowardGoal:
		return "Day 1! You worked toward your goal today. Great start!"
	case current == 1:
		return "Day 1! You showed up today. Every streak starts with a first day."
	case kind == constants.CheckInWorkedTowardGoal:
		return fmt.Sprintf("%d days in a row! Another day of work toward your goal.", current)
	default:
		return fmt.Sprintf("%d consecutive days! Keep showing up.", current)
	}
}

// Reconcile breaks the streak when the last check-in is older than yesterday
// and further back than the grace period. It is meant to run once at session
// start.
func (e *Engine) Reconcile() models.ReconcileResult {
	if e.state.CurrentLength == 0 || e.state.LastCheckInDate == "" {
		return models.ReconcileResult{Result: models.Result{Success: true}}
	}

	// A streak last extended today or yesterday can still be continued today
	// whatever the hour, so the grace window only applies beyond that.
	now := e.clock.Now()
	if e.state.LastCheckInDate >= calendar.Yesterday(e.clock) {
		return models.ReconcileResult{Result: models.Result{Success: true}}
	}

	last, err := e.lastCheckInTime()
	if err != nil {
		logger.Warn("Cannot reconcile streak", "last", e.state.LastCheckInDate, "error", err)
		return models.ReconcileResult{Result: models.Reject(err, "Could not read the date of your last check-in.")}
	}

	if now.Sub(last) <= e.grace {
		return models.ReconcileResult{Result: models.Result{Success: true}}
	}

	lost := e.state.CurrentLength
	segment := e.archive()
	e.state.CurrentLength = 0

	res := models.ReconcileResult{
		Result:  models.Result{Success: true, Message: fmt.Sprintf("Your %d-day streak ended. Check in today to start a new one.", lost)},
		Broken:  true,
		Segment: &segment,
	}
	e.persist(&res.Result)
	logger.Info("Streak broken on reconcile", "length", lost, "last", e.state.LastCheckInDate)
	return res
}

// lastCheckInTime returns when the last check-in happened, falling back to
// local midnight of its date when the record is missing.
func (e *Engine) lastCheckInTime() (time.Time, error) {
	if rec, ok := e.state.CheckIns[e.state.LastCheckInDate]; ok && rec.OccurredAtMillis > 0 {
		return calendar.FromMillis(rec.OccurredAtMillis), nil
	}
	return calendar.ParseDate(e.state.LastCheckInDate)
}

// archive closes the current run into history, keeping the newest entries.
func (e *Engine) archive() models.StreakSegment {
	start, err := calendar.AddDays(e.state.LastCheckInDate, -(e.state.CurrentLength - 1))
	if err != nil {
		start = e.state.LastCheckInDate
	}
	segment := models.StreakSegment{
		Start:  start,
		End:    e.state.LastCheckInDate,
		Length: e.state.CurrentLength,
	}
	e.state.History = append(e.state.History, segment)
	if over := len(e.state.History) - constants.MaxStreakHistory; over > 0 {
		e.state.History = append([]models.StreakSegment(nil), e.state.History[over:]...)
	}
	return segment
}

func (e *Engine) persist(res *models.Result) {
	if err := e.guard.Save(e.store, e.state); err != nil {
		res.SaveFailed = true
		res.Err = err
		res.Message = res.Message + " " + dayerrors.SaveWarning(err)
	}
}
