package settings

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/constants"
	"github.com/julianstephens/dayly/internal/storage"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func newContext(store storage.Provider) (*cli.Context, *bytes.Buffer) {
	var out bytes.Buffer
	return &cli.Context{
		Store: store,
		Clock: &calendar.FixedClock{T: time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)},
		Out:   &out,
	}, &out
}

func TestSettingsUpdate(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx, _ := newContext(store)

	cmd := &SettingsCmd{
		GracePeriodHours: intPtr(48),
		ReminderEnabled:  boolPtr(true),
		GoalResetPolicy:  strPtr("strict"),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// A fresh context reads what was persisted
	ctx2, out := newContext(store)
	if err := (&SettingsCmd{List: true}).Run(ctx2); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"48 hours", "strict", "true"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("settings list missing %q:\n%s", want, out.String())
		}
	}
}

func TestSettingsRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"grace too short", SettingsCmd{GracePeriodHours: intPtr(12)}},
		{"hour out of range", SettingsCmd{ReminderHour: intPtr(24)}},
		{"unknown policy", SettingsCmd{GoalResetPolicy: strPtr("harsh")}},
		{"unknown hemisphere", SettingsCmd{Hemisphere: strPtr("eastern")}},
		{"bad webhook", SettingsCmd{WebhookURL: strPtr("not a url")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			ctx, _ := newContext(store)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected validation error")
			}
			if _, err := store.Get(constants.SettingsKey); err == nil {
				t.Error("invalid settings should not be written")
			}
		})
	}
}

func TestSettingsNoChanges(t *testing.T) {
	ctx, out := newContext(storage.NewMemoryStore())
	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No changes") {
		t.Errorf("unexpected output %q", out.String())
	}
}
