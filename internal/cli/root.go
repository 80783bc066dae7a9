package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianstephens/dayly/internal/app"
	"github.com/julianstephens/dayly/internal/backup"
	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/logger"
	"github.com/julianstephens/dayly/internal/models"
	"github.com/julianstephens/dayly/internal/storage"
)

// ErrNotSaved is returned by commands whose change could not be persisted
var ErrNotSaved = errors.New("changes were not saved")

type Context struct {
	Store     storage.Provider
	Clock     calendar.Clock
	ConfigDir string
	Out       io.Writer

	app *app.App
}

// NewContext builds a command context writing to stdout.
func NewContext(store storage.Provider, configDir string) *Context {
	return &Context{
		Store:     store,
		Clock:     calendar.SystemClock{},
		ConfigDir: configDir,
		Out:       os.Stdout,
	}
}

// App opens the session on first use and reconciles elapsed time, printing
// any streak or goal that ended while the app was closed.
func (c *Context) App() (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	a, err := app.Open(c.Store, c.Clock)
	if err != nil {
		return nil, err
	}
	for _, key := range a.CorruptKeys() {
		fmt.Fprintln(c.Out, Warning(fmt.Sprintf("Stored data for %s could not be read. It has been kept as-is and will not be overwritten this session.", key)))
	}
	for _, msg := range a.Reconcile().Messages() {
		fmt.Fprintln(c.Out, Warning(msg))
	}
	c.app = a
	return a, nil
}

// BackupManager returns a manager writing next to the config.
func (c *Context) BackupManager() *backup.Manager {
	return backup.NewManager(c.Store, c.ConfigDir, c.Clock)
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.BackupManager().CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// PrintResult writes an engine result. Rejections become the returned error
// so the process exits non-zero; a failed save prints the message and
// returns ErrNotSaved.
func (c *Context) PrintResult(res models.Result) error {
	switch {
	case !res.Success:
		return errors.New(res.Message)
	case res.SaveFailed:
		fmt.Fprintln(c.Out, Warning(res.Message))
		return ErrNotSaved
	default:
		if res.Message != "" {
			fmt.Fprintln(c.Out, Success(res.Message))
		}
		return nil
	}
}

// ConfigDirFor returns the directory holding a file-backed config, or the
// user config dir for database connection strings.
func ConfigDirFor(config string, isConnString bool) string {
	if !isConnString {
		return filepath.Dir(config)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "dayly")
	}
	return "."
}
