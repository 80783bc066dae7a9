package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/julianstephens/dayly/internal/app"
	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/constants"
	"github.com/julianstephens/dayly/internal/logger"
	"github.com/julianstephens/dayly/internal/watcher"
)

type WatchCmd struct {
	Interval time.Duration `help:"How often to check the clock." default:"1m"`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(watcher.Config{
		Interval:        c.Interval,
		ReminderEnabled: a.Settings.ReminderEnabled,
		ReminderHour:    a.Settings.ReminderHour,
		LockPath:        filepath.Join(ctx.ConfigDir, constants.WatcherLockfileName),
	}, ctx.Clock, &watchActions{ctx: ctx})

	fmt.Fprintf(ctx.Out, "Watching (reminder at %02d:00). Press Ctrl+C to stop.\n", a.Settings.ReminderHour)
	return w.Run(sigCtx)
}

// watchActions reopens the session on every call so check-ins made from
// other invocations are never overwritten by stale state.
type watchActions struct {
	ctx *cli.Context
}

func (w *watchActions) open() (*app.App, error) {
	return app.Open(w.ctx.Store, w.ctx.Clock)
}

func (w *watchActions) Reconcile(context.Context) {
	a, err := w.open()
	if err != nil {
		logger.Error("Failed to open session", "error", err)
		return
	}
	for _, msg := range a.Reconcile().Messages() {
		fmt.Fprintln(w.ctx.Out, cli.Warning(msg))
	}
}

func (w *watchActions) Remind(ctx context.Context) error {
	a, err := w.open()
	if err != nil {
		return err
	}
	msg, ok := eveningMessage(a)
	if !ok {
		return nil
	}
	return notifierFor(w.ctx, a).Notify(ctx, msg)
}
