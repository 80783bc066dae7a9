package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dayly/internal/cli"
	"github.com/julianstephens/dayly/internal/cli/backups"
	"github.com/julianstephens/dayly/internal/cli/goals"
	"github.com/julianstephens/dayly/internal/cli/premium"
	"github.com/julianstephens/dayly/internal/cli/settings"
	"github.com/julianstephens/dayly/internal/cli/streaks"
	"github.com/julianstephens/dayly/internal/cli/system"
	"github.com/julianstephens/dayly/internal/constants"
	dayerrors "github.com/julianstephens/dayly/internal/errors"
	"github.com/julianstephens/dayly/internal/keyring"
	"github.com/julianstephens/dayly/internal/logger"
	"github.com/julianstephens/dayly/internal/storage"
	"github.com/julianstephens/dayly/internal/storage/postgres"
	"github.com/julianstephens/dayly/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path (.db or .json), a PostgreSQL connection string, or 'postgres' to use DAYLY_DB_CONNECTION or the OS keyring. Passwords must NOT be embedded in connection strings." type:"string" default:"~/.config/dayly/dayly.db"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize dayly storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Checkin  streaks.CheckInCmd `cmd:"" help:"Check in for today."`
	Status   streaks.StatusCmd  `cmd:"" help:"Show your streak and current goal."`
	History  streaks.HistoryCmd `cmd:"" help:"Show recent days and past streaks."`
	Year     streaks.YearCmd    `cmd:"" help:"Show year and month progress."`
	Goal     struct {
		Set      goals.GoalSetCmd      `cmd:"" help:"Create a goal and make it current."`
		Progress goals.GoalProgressCmd `cmd:"" help:"Record today's progress on the current goal."`
		List     goals.GoalListCmd     `cmd:"" help:"List all goals."`
		Show     goals.GoalShowCmd     `cmd:"" help:"Show a goal in detail."`
		Select   goals.GoalSelectCmd   `cmd:"" help:"Make another goal current."`
		Pace     goals.GoalPaceCmd     `cmd:"" help:"Show pace and estimated completion."`
	} `cmd:"" help:"Manage goals."`
	Premium  premium.PremiumCmd   `cmd:"" help:"Register interest in a Premium feature."`
	Intents  premium.IntentsCmd   `cmd:"" help:"Show recorded Premium interest."`
	Remind   system.RemindCmd     `cmd:"" help:"Send the evening reminder."`
	Watch    system.WatchCmd      `cmd:"" help:"Run in the foreground, reconciling at midnight and sending the evening reminder."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage the stored database connection."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily streaks and time-boxed goals"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	store, configDir, err := openStore(CLI.Config)
	if err != nil {
		dayerrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "config", store.GetConfigPath())

	appCtx := cli.NewContext(store, configDir)

	// init creates the store and keyring commands never touch it
	command := ctx.Command()
	if command != "init" && !strings.HasPrefix(command, "keyring") {
		if err := store.Load(); err != nil {
			dayerrors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		if errors.Is(err, cli.ErrNotSaved) {
			logger.Warn("Command finished without saving", "command", command)
			store.Close()
			os.Exit(2)
		}
		store.Close()
		dayerrors.Fatal(err)
	}
}

// openStore picks a backend from the --config value: a PostgreSQL connection
// string, "postgres" for the environment/keyring connection, a .json file, or
// a SQLite database path.
func openStore(config string) (storage.Provider, string, error) {
	if config == "postgres" || config == "postgresql" {
		connStr, source, err := keyring.ResolveConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, "", fmt.Errorf("no connection string found: set %s or run 'dayly keyring set'", constants.ConnectionEnvVar)
			}
			return nil, "", err
		}
		logger.Debug("Using PostgreSQL connection", "source", source)
		config = connStr
	}

	if postgres.IsConnString(config) {
		if err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", fmt.Errorf("%w: use ~/.pgpass, PGPASSWORD, or store the string with 'dayly keyring set'", err)
			}
			return nil, "", err
		}
		return postgres.New(config), cli.ConfigDirFor(config, true), nil
	}

	path, err := expandHome(config)
	if err != nil {
		return nil, "", err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), cli.ConfigDirFor(path, false), nil
	}
	return sqlite.NewStore(path), cli.ConfigDirFor(path, false), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
