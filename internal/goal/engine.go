package goal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/constants"
	dayerrors "github.com/julianstephens/dayly/internal/errors"
	"github.com/julianstephens/dayly/internal/logger"
	"github.com/julianstephens/dayly/internal/models"
	"github.com/julianstephens/dayly/internal/storage"
	"github.com/julianstephens/dayly/internal/validation"
)

var (
	ErrNoGoal          = errors.New("no goal set")
	ErrGoalCompleted   = errors.New("goal already completed")
	ErrAlreadyRecorded = errors.New("progress already recorded today")
	ErrEmptyTitle      = errors.New("goal title is empty")
	ErrInvalidDuration = errors.New("goal duration must be at least one day")
	ErrFreeLimit       = errors.New("free tier goal limit reached")
	ErrInvalidIndex    = errors.New("no goal at that position")
	ErrCooldown        = errors.New("motivation shown recently")
)

// Limiter decides whether a premium-gated action is allowed
type Limiter interface {
	IsAtFreeLimit(feature constants.Feature) bool
	RecordIntent(feature constants.Feature) models.Result
}

// Input describes a goal to create
type Input struct {
	Title       string                `json:"title" validate:"max=120"`
	Description string                `json:"description" validate:"max=500"`
	TotalDays   int                   `json:"total_days"`
	Custom      bool                  `json:"custom"` // clamp TotalDays to the custom range instead of taking it as a preset
	ResetPolicy constants.ResetPolicy `json:"reset_policy" validate:"omitempty,oneof=lenient strict"`
}

type Option func(*Engine)

func WithLimiter(l Limiter) Option {
	return func(e *Engine) { e.limiter = l }
}

// WithMotivationCooldown sets the minimum gap between unsolicited pace messages.
func WithMotivationCooldown(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.cooldown = d
		}
	}
}

// WithDefaultPolicy sets the reset policy for goals created without one.
func WithDefaultPolicy(p constants.ResetPolicy) Option {
	return func(e *Engine) {
		if p == constants.ResetLenient || p == constants.ResetStrict {
			e.policy = p
		}
	}
}

// WithIDGenerator replaces uuid generation for new goals.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// Engine owns the goal set: creation, daily progress, milestones and completion
type Engine struct {
	store    storage.Provider
	clock    calendar.Clock
	limiter  Limiter
	cooldown time.Duration
	policy   constants.ResetPolicy
	newID    func() string
	set      models.GoalSet
	guard    storage.Guard
}

func New(store storage.Provider, clock calendar.Clock, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		clock:    clock,
		cooldown: constants.DefaultMotivationCooldownDays * 24 * time.Hour,
		policy:   constants.ResetLenient,
		newID:    func() string { return uuid.New().String() },
		set:      models.NewGoalSet(),
		guard:    storage.Guard{Key: constants.GoalsKey},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load reads and upgrades the persisted goal set. Missing or unreadable data
// leaves an empty set; only provider failures are returned.
func (e *Engine) Load() error {
	var loaded models.GoalSet
	status, err := storage.LoadBlob(e.store, constants.GoalsKey, func(raw []byte) error {
		set, err := Upgrade(raw)
		if err != nil {
			return err
		}
		loaded = set
		return nil
	})
	if err != nil {
		return err
	}

	e.guard.Status = status
	if status == storage.BlobLoaded {
		e.set = loaded
	} else {
		e.set = models.NewGoalSet()
	}
	logger.Debug("Goals loaded", "status", status, "count", len(e.set.Goals))
	return nil
}

// SetLimiter wires the free-tier limiter after construction.
func (e *Engine) SetLimiter(l Limiter) {
	e.limiter = l
}

// BlobStatus reports how the persisted goal set was found at load time.
func (e *Engine) BlobStatus() storage.BlobStatus {
	return e.guard.Status
}

// Set returns a copy of the goal set.
func (e *Engine) Set() models.GoalSet {
	out := e.set
	out.Goals = e.Goals()
	return out
}

// Goals returns copies of all goals in creation order.
func (e *Engine) Goals() []models.Goal {
	out := make([]models.Goal, len(e.set.Goals))
	for i, g := range e.set.Goals {
		out[i] = g.Clone()
	}
	return out
}

// Current returns the current goal, if any.
func (e *Engine) Current() (models.Goal, bool) {
	idx := e.set.CurrentIndex()
	if idx < 0 {
		return models.Goal{}, false
	}
	return e.set.Goals[idx].Clone(), true
}

// Count is the number of stored goals, completed ones included.
func (e *Engine) Count() int {
	return len(e.set.Goals)
}

// ActiveCount is the number of goals not yet completed.
func (e *Engine) ActiveCount() int {
	n := 0
	for _, g := range e.set.Goals {
		if !g.Completed {
			n++
		}
	}
	return n
}

// SetGoal creates a goal and makes it current.
func (e *Engine) SetGoal(in Input) models.SetGoalResult {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.SetGoalResult{Result: models.Reject(ErrEmptyTitle, "Please enter a goal title.")}
	}
	in.Title = title
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(in); err != nil {
		return models.SetGoalResult{Result: models.Reject(err, fmt.Sprintf("Invalid goal: %v.", err))}
	}

	days := in.TotalDays
	if in.Custom {
		days = clamp(days, constants.MinCustomGoalDays, constants.MaxCustomGoalDays)
	} else if days < 1 {
		return models.SetGoalResult{Result: models.Reject(ErrInvalidDuration, "Please choose a duration of at least one day.")}
	}

	if e.limiter != nil && e.limiter.IsAtFreeLimit(constants.FeatureMultipleGoals) {
		e.limiter.RecordIntent(constants.FeatureMultipleGoals)
		logger.Info("Goal creation blocked by free tier limit", "goals", e.Count(), "open", e.ActiveCount())
		return models.SetGoalResult{Result: models.Reject(ErrFreeLimit,
			"The free plan includes one goal. Upgrade to Premium to track multiple goals.")}
	}

	policy := in.ResetPolicy
	if policy == "" {
		policy = e.policy
	}

	now := e.clock.Now()
	start := calendar.DateKey(now)
	target, _ := calendar.AddDays(start, days)

	g := models.Goal{
		ID:           e.newID(),
		Title:        title,
		Description:  in.Description,
		StartDate:    start,
		TotalDays:    days,
		TargetDate:   target,
		ProgressDays: 0,
		CheckIns:     make(map[string]models.GoalCheckIn),
		Milestones:   BuildMilestones(days),
		IsActive:     true,
		ResetPolicy:  policy,
	}

	for i := range e.set.Goals {
		e.set.Goals[i].IsActive = false
	}
	e.set.Goals = append(e.set.Goals, g)
	e.set.ActiveGoalIndex = len(e.set.Goals) - 1

	res := models.SetGoalResult{
		Result: models.Result{
			Success: true,
			Message: fmt.Sprintf("Goal set! %q for %d %s. Target date: %s. Track daily to keep your progress!", title, days, plural(days, "day"), target),
		},
	}
	e.persist(&res.Result)

	created := g.Clone()
	res.Goal = &created
	logger.Info("Goal created", "id", g.ID, "days", days, "policy", policy)
	return res
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RecordProgress records today's progress on the current goal.
func (e *Engine) RecordProgress() models.ProgressResult {
	idx := e.set.CurrentIndex()
	if idx < 0 {
		return models.ProgressResult{Result: models.Reject(ErrNoGoal, "No goal set! Create one with 'dayly goal set'.")}
	}
	g := &e.set.Goals[idx]

	res := models.ProgressResult{
		GoalID:       g.ID,
		ProgressDays: g.ProgressDays,
		TotalDays:    g.TotalDays,
		GoalStreak:   g.GoalStreak,
		Completed:    g.Completed,
	}

	if g.Completed {
		res.Result = models.Reject(ErrGoalCompleted, fmt.Sprintf("You already completed %q. Set a new goal to keep going!", g.Title))
		return res
	}

	now := e.clock.Now()
	today := calendar.DateKey(now)
	yesterday := calendar.Yesterday(e.clock)

	if _, ok := g.CheckIns[today]; ok {
		res.Result = models.Reject(ErrAlreadyRecorded, "Already recorded progress today!")
		return res
	}

	var streakMsg string
	switch {
	case g.LastProgressDate == "":
		g.GoalStreak = 1
		streakMsg = "First day of your goal streak!"
	case g.LastProgressDate == yesterday:
		g.GoalStreak++
		streakMsg = fmt.Sprintf("Goal streak: %d days!", g.GoalStreak)
	case g.LastProgressDate > today:
		// The clock moved back; start a new streak without applying the policy
		g.GoalStreak = 1
		streakMsg = "First day of your goal streak!"
	default:
		gap, _ := calendar.DaysBetween(g.LastProgressDate, today)
		missed := gap - 1
		g.GoalStreak = 1
		if g.ResetPolicy == constants.ResetStrict && wipeProgress(g) {
			res.Reset = true
			streakMsg = fmt.Sprintf("Missed %d %s of goal tracking. Progress reset to 0. Starting fresh!", missed, plural(missed, "day"))
		} else {
			streakMsg = fmt.Sprintf("Missed %d %s. Your goal streak starts again today.", missed, plural(missed, "day"))
		}
	}

	nowMillis := calendar.Millis(now)
	g.CheckIns[today] = models.GoalCheckIn{Timestamp: nowMillis}
	g.ProgressDays++
	g.LastProgressDate = today
	if g.GoalStreak > g.LongestGoalStreak {
		g.LongestGoalStreak = g.GoalStreak
	}

	res.Milestones = markMilestones(g, nowMillis)
	res.ProgressDays = g.ProgressDays
	res.GoalStreak = g.GoalStreak
	res.Success = true

	if g.ProgressDays >= g.TotalDays {
		g.Completed = true
		g.CompletedAtMillis = &nowMillis
		res.Completed = true
		res.Message = fmt.Sprintf("CONGRATULATIONS! You completed your goal %q with a %d-day streak!", g.Title, g.GoalStreak)
		e.persist(&res.Result)
		logger.Info("Goal completed", "id", g.ID, "days", g.ProgressDays)
		return res
	}

	parts := []string{fmt.Sprintf("Day %d of %d recorded! %s", g.ProgressDays, g.TotalDays, streakMsg)}
	for _, m := range res.Milestones {
		parts = append(parts, m.Message)
	}
	res.Message = strings.Join(parts, " ")

	res.Pace = PaceMessage(*g, now)
	e.set.LastMotivationMillis = nowMillis

	e.persist(&res.Result)
	logger.Info("Goal progress recorded", "id", g.ID, "progress", g.ProgressDays, "total", g.TotalDays)
	return res
}

// wipeProgress applies the strict policy: progress and check-ins are cleared,
// the start date and already-achieved milestones are kept. It reports whether
// anything was removed.
func wipeProgress(g *models.Goal) bool {
	if g.ProgressDays == 0 && len(g.CheckIns) == 0 {
		return false
	}
	g.ProgressDays = 0
	g.CheckIns = make(map[string]models.GoalCheckIn)
	return true
}

// Reconcile applies each open goal's reset policy when its last progress is
// more than one day old. It is meant to run once at session start.
func (e *Engine) Reconcile() models.GoalReconcileResult {
	today := calendar.Today(e.clock)
	res := models.GoalReconcileResult{Result: models.Result{Success: true}}

	for i := range e.set.Goals {
		g := &e.set.Goals[i]
		if g.Completed || g.LastProgressDate == "" || g.LastProgressDate >= today {
			continue
		}
		gap, err := calendar.DaysBetween(g.LastProgressDate, today)
		if err != nil || gap <= 1 {
			continue
		}

		if g.GoalStreak > 0 {
			g.GoalStreak = 0
			res.StreaksEnded = append(res.StreaksEnded, g.ID)
		}
		if g.ResetPolicy == constants.ResetStrict && wipeProgress(g) {
			res.Reset = append(res.Reset, g.ID)
			logger.Info("Goal progress reset", "id", g.ID, "missed", gap-1)
		}
	}

	if len(res.Reset) == 0 && len(res.StreaksEnded) == 0 {
		return res
	}

	switch {
	case len(res.Reset) > 0:
		res.Message = fmt.Sprintf("Missed days reset progress on %d %s. Track daily to avoid resets.", len(res.Reset), plural(len(res.Reset), "goal"))
	default:
		res.Message = "Your goal streak ended. Record progress today to start a new one."
	}
	e.persist(&res.Result)
	return res
}

// SelectGoal makes the goal at index (0-based, creation order) current.
func (e *Engine) SelectGoal(index int) models.Result {
	if index < 0 || index >= len(e.set.Goals) {
		return models.Reject(ErrInvalidIndex, fmt.Sprintf("There is no goal #%d.", index+1))
	}
	for i := range e.set.Goals {
		e.set.Goals[i].IsActive = i == index
	}
	e.set.ActiveGoalIndex = index

	res := models.Result{Success: true, Message: fmt.Sprintf("Now tracking %q.", e.set.Goals[index].Title)}
	e.persist(&res)
	return res
}

// Motivation returns a pace message for the current goal. Unless forced it is
// shown at most once per cooldown.
func (e *Engine) Motivation(force bool) models.Result {
	idx := e.set.CurrentIndex()
	if idx < 0 {
		return models.Reject(ErrNoGoal, "No goal set.")
	}
	g := e.set.Goals[idx]
	if g.Completed {
		return models.Reject(ErrGoalCompleted, fmt.Sprintf("%q is complete.", g.Title))
	}

	now := e.clock.Now()
	last := e.set.LastMotivationMillis
	if !force && last > 0 && now.Sub(calendar.FromMillis(last)) < e.cooldown {
		return models.Reject(ErrCooldown, "")
	}

	msg := PaceMessage(g, now)
	if est := EstimatedCompletionDate(g, now); est != "" {
		msg += fmt.Sprintf(" At this rate you'll finish around %s (planned %s).", est, ProjectedCompletionDate(g))
	}

	e.set.LastMotivationMillis = calendar.Millis(now)
	res := models.Result{Success: true, Message: msg}
	e.persist(&res)
	return res
}

// Display is the read-only view of a goal
type Display struct {
	Goal          models.Goal
	Percent       float64
	DaysRemaining int
	ExpectedDays  int
	Pace          string
	Projected     string
	Estimated     string
	AtRisk        bool // progress recorded yesterday but not yet today
}

// Display returns the current goal's view.
func (e *Engine) Display() (Display, bool) {
	g, ok := e.Current()
	if !ok {
		return Display{}, false
	}
	return e.view(g), true
}

// DisplayAll returns a view of every goal in creation order.
func (e *Engine) DisplayAll() []Display {
	out := make([]Display, 0, len(e.set.Goals))
	for _, g := range e.Goals() {
		out = append(out, e.view(g))
	}
	return out
}

func (e *Engine) view(g models.Goal) Display {
	now := e.clock.Now()
	_, recordedToday := g.CheckIns[calendar.DateKey(now)]
	d := Display{
		Goal:          g,
		Percent:       g.Percent(),
		DaysRemaining: g.DaysRemaining(),
		ExpectedDays:  ExpectedDays(g, now),
		Projected:     ProjectedCompletionDate(g),
		AtRisk:        !g.Completed && g.GoalStreak > 0 && !recordedToday && g.LastProgressDate == calendar.Yesterday(e.clock),
	}
	if !g.Completed {
		d.Pace = PaceMessage(g, now)
		d.Estimated = EstimatedCompletionDate(g, now)
	}
	return d
}

func (e *Engine) persist(res *models.Result) {
	if err := e.guard.Save(e.store, e.set); err != nil {
		res.SaveFailed = true
		res.Err = err
		res.Message = strings.TrimSpace(res.Message + " " + dayerrors.SaveWarning(err))
	}
}
