package app

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/constants"
	"github.com/julianstephens/dayly/internal/goal"
	"github.com/julianstephens/dayly/internal/intent"
	"github.com/julianstephens/dayly/internal/logger"
	"github.com/julianstephens/dayly/internal/models"
	"github.com/julianstephens/dayly/internal/storage"
	"github.com/julianstephens/dayly/internal/streak"
	"github.com/julianstephens/dayly/internal/validation"
)

// App owns one loaded session: settings plus the three engines sharing a store.
type App struct {
	Store    storage.Provider
	Clock    calendar.Clock
	Settings models.Settings

	Streak  *streak.Engine
	Goals   *goal.Engine
	Intents *intent.Tracker

	settingsGuard storage.Guard
}

// Open loads every blob from store and wires the engines together. The store
// must already be loaded.
func Open(store storage.Provider, clock calendar.Clock) (*App, error) {
	a := &App{
		Store:         store,
		Clock:         clock,
		settingsGuard: storage.Guard{Key: constants.SettingsKey},
	}

	if err := a.loadSettings(); err != nil {
		return nil, err
	}

	a.Goals = goal.New(store, clock,
		goal.WithMotivationCooldown(time.Duration(a.Settings.MotivationCooldownDays)*24*time.Hour),
		goal.WithDefaultPolicy(a.Settings.GoalResetPolicy),
	)
	a.Intents = intent.New(store, clock,
		intent.WithUsage(constants.FeatureMultipleGoals, a.Goals.Count),
	)
	a.Streak = streak.New(store, clock,
		streak.WithGracePeriod(time.Duration(a.Settings.GracePeriodHours)*time.Hour),
		streak.WithGoalRecorder(a.Goals),
	)
	a.Goals.SetLimiter(a.Intents)

	if err := a.Goals.Load(); err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	if err := a.Intents.Load(); err != nil {
		return nil, fmt.Errorf("failed to load intent log: %w", err)
	}
	if err := a.Streak.Load(); err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	return a, nil
}

func (a *App) loadSettings() error {
	settings := models.DefaultSettings()
	status, err := storage.LoadJSON(a.Store, constants.SettingsKey, &settings)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	a.settingsGuard.Status = status

	if status != storage.BlobLoaded {
		settings = models.DefaultSettings()
	} else if err := validation.Settings(settings); err != nil {
		logger.Warn("Stored settings are invalid, using defaults", "error", err)
		settings = models.DefaultSettings()
	}
	a.Settings = settings
	return nil
}

// SaveSettings validates and persists s. Engine options pick the new values
// up on the next Open.
func (a *App) SaveSettings(s models.Settings) error {
	if err := validation.Settings(s); err != nil {
		return err
	}
	if err := a.settingsGuard.Save(a.Store, s); err != nil {
		return err
	}
	a.Settings = s
	return nil
}

// Reconciliation is the combined outcome of a session-start reconcile
type Reconciliation struct {
	Streak models.ReconcileResult
	Goals  models.GoalReconcileResult
}

// Messages returns the user-facing lines worth printing.
func (r Reconciliation) Messages() []string {
	var out []string
	if r.Streak.Broken || r.Streak.SaveFailed || !r.Streak.Success {
		out = append(out, r.Streak.Message)
	}
	if len(r.Goals.Reset) > 0 || len(r.Goals.StreaksEnded) > 0 || r.Goals.SaveFailed {
		out = append(out, r.Goals.Message)
	}
	return out
}

// Reconcile applies elapsed time to the streak and to every goal.
func (a *App) Reconcile() Reconciliation {
	r := Reconciliation{
		Streak: a.Streak.Reconcile(),
		Goals:  a.Goals.Reconcile(),
	}
	logger.Debug("Reconciled", "streak_broken", r.Streak.Broken, "goals_reset", len(r.Goals.Reset), "goal_streaks_ended", len(r.Goals.StreaksEnded))
	return r
}

// CorruptKeys lists the blobs that failed to decode this session.
func (a *App) CorruptKeys() []string {
	var keys []string
	if a.Streak.BlobStatus() == storage.BlobCorrupt {
		keys = append(keys, constants.StreakKey)
	}
	if a.Goals.BlobStatus() == storage.BlobCorrupt {
		keys = append(keys, constants.GoalsKey)
	}
	if a.Intents.BlobStatus() == storage.BlobCorrupt {
		keys = append(keys, constants.IntentsKey)
	}
	if a.settingsGuard.Status == storage.BlobCorrupt {
		keys = append(keys, constants.SettingsKey)
	}
	return keys
}
