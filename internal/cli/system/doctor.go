package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/constants"
	"github.com/julianstephens/dayly/internal/keyring"
	"github.com/julianstephens/dayly/internal/storage"
	"github.com/julianstephens/dayly/internal/storage/postgres"
	"github.com/julianstephens/dayly/internal/validation"
)

type DoctorCmd struct {
	Fix bool `help:"Replace unreadable blobs with their newest readable revision."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	hasError := false
	report := func(name string, err error, warnOnly bool) {
		switch {
		case err == nil:
			fmt.Fprintf(ctx.Out, "✓ %s: OK\n", name)
		case warnOnly:
			fmt.Fprintf(ctx.Out, "⚠ %s: WARNING\n   %v\n", name, err)
		default:
			fmt.Fprintf(ctx.Out, "❌ %s: FAIL\n   Error: %v\n", name, err)
			hasError = true
		}
	}

	reachable := checkStorage(ctx)
	report("Storage reachable", reachable, false)

	if reachable == nil {
		report("Stored data readable", cmd.checkBlobs(ctx), false)
		report("Data validation", checkValidation(ctx), false)
	} else {
		fmt.Fprintln(ctx.Out, "⊘ Stored data readable: SKIPPED (storage not reachable)")
		fmt.Fprintln(ctx.Out, "⊘ Data validation: SKIPPED (storage not reachable)")
	}

	report("Backups present", checkBackupsPresent(ctx), true)
	if _, ok := ctx.Store.(*postgres.Store); ok {
		report("OS keyring", checkKeyring(), true)
	}
	report("Clock/timezone", checkClockTimezone(ctx), false)

	fmt.Fprintln(ctx.Out)
	if hasError {
		fmt.Fprintln(ctx.Out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Fprintln(ctx.Out, "All diagnostics passed!")
	return nil
}

func checkStorage(ctx *cli.Context) error {
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to list stored keys: %w", err)
	}
	return nil
}

// checkBlobs reports every blob that is not valid JSON. With --fix the newest
// readable revision is written back.
func (cmd *DoctorCmd) checkBlobs(ctx *cli.Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return err
	}

	var problems []error
	for _, key := range keys {
		raw, err := ctx.Store.Get(key)
		if err != nil || json.Valid(raw) {
			continue
		}
		if !cmd.Fix {
			problems = append(problems, fmt.Errorf("%s is unreadable; run 'dayly doctor --fix' or restore a backup", key))
			continue
		}
		if err := restoreRevision(ctx.Store, key); err != nil {
			problems = append(problems, fmt.Errorf("%s is unreadable: %w", key, err))
			continue
		}
		fmt.Fprintf(ctx.Out, "   Restored %s from its last readable revision\n", key)
	}
	return errors.Join(problems...)
}

func restoreRevision(store storage.Provider, key string) error {
	reviser, ok := store.(storage.Reviser)
	if !ok {
		return errors.New("this storage backend keeps no revisions")
	}
	revisions, err := reviser.Revisions(key)
	if err != nil {
		return err
	}
	for _, rev := range revisions {
		if json.Valid(rev) {
			return store.Set(key, rev)
		}
	}
	return errors.New("no readable revision found")
}

func checkValidation(ctx *cli.Context) error {
	a, err := ctx.App()
	if err != nil {
		return err
	}

	v := validation.New(constants.MaxStreakHistory)
	var problems []error
	for _, r := range []validation.ValidationResult{
		v.ValidateStreak(a.Streak.State()),
		v.ValidateGoals(a.Goals.Set()),
	} {
		for _, c := range r.Conflicts {
			problems = append(problems, errors.New(c.Description))
		}
	}
	if err := validation.Settings(a.Settings); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.BackupManager().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'dayly backup create'")
	}
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset == 0 && now.Location() == time.UTC {
		fmt.Fprintln(ctx.Out, "   Note: timezone is UTC; days roll over at UTC midnight")
	}
	return nil
}
