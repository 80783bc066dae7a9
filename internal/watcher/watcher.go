package watcher

import (
	"context"
	"time"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/constants"
	"github.com/julianstephens/dayly/internal/logger"
	"github.com/julianstephens/dayly/internal/reminder"
)

// Actions are the callbacks the watch loop drives
type Actions interface {
	// Reconcile runs once at startup and again whenever the date changes.
	Reconcile(ctx context.Context)
	// Remind delivers the evening reminder.
	Remind(ctx context.Context) error
}

type Config struct {
	Interval        time.Duration
	ReminderEnabled bool
	ReminderHour    int
	LockPath        string
}

// Watcher reconciles engines across midnight and fires the evening reminder
// at most once per day.
type Watcher struct {
	cfg      Config
	clock    calendar.Clock
	actions  Actions
	lastDay  string
	reminded string
}

func New(cfg Config, clock calendar.Clock, actions Actions) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = constants.WatchInterval
	}
	return &Watcher{cfg: cfg, clock: clock, actions: actions}
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.cfg.LockPath != "" {
		lock, err := AcquireLock(w.cfg.LockPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("Failed to release watcher lockfile", "error", err)
			}
		}()
	}

	logger.Info("Watcher started", "interval", w.cfg.Interval, "reminder_hour", w.cfg.ReminderHour)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	w.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Watcher stopped")
			return nil
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Watcher) tick(ctx context.Context) {
	now := w.clock.Now()
	today := calendar.DateKey(now)

	if today != w.lastDay {
		logger.Debug("Day changed, reconciling", "from", w.lastDay, "to", today)
		w.actions.Reconcile(ctx)
		w.lastDay = today
	}

	if !w.cfg.ReminderEnabled || w.reminded == today {
		return
	}
	if !reminder.ShouldShowEveningReminder(now, w.cfg.ReminderHour) {
		return
	}
	if err := w.actions.Remind(ctx); err != nil {
		logger.Error("Evening reminder failed", "error", err)
		return
	}
	w.reminded = today
}
