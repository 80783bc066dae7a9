package streaks

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/goal"
	"github.com/julianstephens/dayly/internal/storage"
)

func newTestContext(t *testing.T) (*cli.Context, *bytes.Buffer, *calendar.FixedClock) {
	t.Helper()
	var out bytes.Buffer
	clock := &calendar.FixedClock{T: time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)}
	ctx := &cli.Context{
		Store:     storage.NewMemoryStore(),
		Clock:     clock,
		ConfigDir: t.TempDir(),
		Out:       &out,
	}
	return ctx, &out, clock
}

func TestCheckInCmd(t *testing.T) {
	ctx, out, clock := newTestContext(t)

	if err := (&CheckInCmd{}).Run(ctx); err != nil {
		t.Fatalf("first check-in failed: %v", err)
	}
	if err := (&CheckInCmd{}).Run(ctx); err == nil {
		t.Error("second check-in on the same day should fail")
	}

	clock.AddDays(1)
	out.Reset()
	if err := (&CheckInCmd{}).Run(ctx); err != nil {
		t.Fatalf("next-day check-in failed: %v", err)
	}
	if !strings.Contains(out.String(), "longest streak") {
		t.Errorf("expected longest streak note, got %q", out.String())
	}
}

func TestCheckInCmdWithGoal(t *testing.T) {
	ctx, out, _ := newTestContext(t)

	// No goal: the check-in still counts and the goal is only a warning
	if err := (&CheckInCmd{Goal: true}).Run(ctx); err != nil {
		t.Fatalf("check-in without goal failed: %v", err)
	}
	if !strings.Contains(out.String(), "No goal set") {
		t.Errorf("expected no-goal warning, got %q", out.String())
	}

	ctx2, out2, _ := newTestContext(t)
	a, err := ctx2.App()
	if err != nil {
		t.Fatal(err)
	}
	if res := a.Goals.SetGoal(goal.Input{Title: "Read", TotalDays: 30}); !res.Success {
		t.Fatalf("SetGoal failed: %s", res.Message)
	}
	if err := (&CheckInCmd{Goal: true}).Run(ctx2); err != nil {
		t.Fatalf("check-in with goal failed: %v", err)
	}
	if g, ok := a.Goals.Current(); !ok || g.ProgressDays != 1 {
		t.Errorf("goal progress not recorded: %+v", g)
	}
	if out2.Len() == 0 {
		t.Error("expected output")
	}
}

func TestStatusCmdJSON(t *testing.T) {
	ctx, out, _ := newTestContext(t)
	if err := (&CheckInCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()

	if err := (&StatusCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out.String()), "{") {
		t.Errorf("expected JSON output, got %q", out.String())
	}
}

func TestCheckInCmdNextEveningKeepsStreak(t *testing.T) {
	ctx, _, clock := newTestContext(t)
	clock.Set(time.Date(2024, 5, 1, 7, 0, 0, 0, time.Local))
	if err := (&CheckInCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	// A new invocation 38h later on the following day
	var out bytes.Buffer
	next := &cli.Context{
		Store:     ctx.Store,
		Clock:     &calendar.FixedClock{T: time.Date(2024, 5, 2, 21, 0, 0, 0, time.Local)},
		ConfigDir: ctx.ConfigDir,
		Out:       &out,
	}
	if err := (&CheckInCmd{}).Run(next); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	a, _ := next.App()
	if got := a.Streak.CurrentLength(); got != 2 {
		t.Errorf("current = %d, want 2\n%s", got, out.String())
	}
	if strings.Contains(out.String(), "streak ended") {
		t.Errorf("streak reported as ended: %q", out.String())
	}
}
