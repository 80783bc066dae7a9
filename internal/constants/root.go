package constants

import "time"

// CheckInKind represents the kind of daily check-in
type CheckInKind string

// ResetPolicy represents how a goal reacts to a missed day
type ResetPolicy string

// Feature represents a premium-gated feature name
type Feature string

// Hemisphere selects the season table
type Hemisphere string

const (
	AppName            = "dayly"
	Version            = "v1.3.0"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/dayly/dayly.db"
	ConnectionEnvVar   = "DAYLY_DB_CONNECTION"

	// DateFormat is the canonical day key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Storage keys
	StreakKey   = "dayly.streak"
	GoalsKey    = "dayly.goals"
	IntentsKey  = "dayly.intents"
	SettingsKey = "dayly.settings"

	// Schema versions of the persisted blobs
	StreakSchemaVersion  = 1
	GoalSetSchemaVersion = 2

	// Streak constants
	MaxStreakHistory        = 10
	DefaultGracePeriodHours = 36

	// Goal constants
	MinCustomGoalDays             = 7
	MaxCustomGoalDays             = 730
	DefaultGoalDays               = 90
	DefaultMotivationCooldownDays = 7

	// Intent log constants
	MaxIntentEvents = 100

	// Reminder constants
	DefaultReminderHour = 20

	// Blob revisions kept per key by the database stores
	MaxBlobRevisions = 5

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dayly-"
	BackupFileSuffix = ".json"

	// Watcher constants
	WatcherLockfileName = "dayly-watch.lock"
	WatchInterval       = time.Minute

	// Check-in kinds
	CheckInShowedUp         CheckInKind = "showed_up"
	CheckInWorkedTowardGoal CheckInKind = "worked_toward_goal"

	// Reset policies
	ResetLenient ResetPolicy = "lenient"
	ResetStrict  ResetPolicy = "strict"

	// Premium features
	FeatureMultipleGoals Feature = "multiple_goals"
	FeatureStreakFreeze  Feature = "streak_freeze"
	FeatureAdvanced      Feature = "advanced_stats"
	FeatureCustomThemes  Feature = "custom_themes"
	FeatureDataExport    Feature = "data_export"

	// Hemispheres
	HemisphereNorthern Hemisphere = "northern"
	HemisphereSouthern Hemisphere = "southern"
)

// GoalPresets are the selectable goal durations in days
var GoalPresets = []int{30, 60, 90, 180, 365}

// MilestoneFractions are the fractions of a goal at which milestones fire, in order
var MilestoneFractions = []float64{0.25, 0.5, 0.75, 0.9}

// FreeTierLimits maps a premium feature to the usage allowed on the free tier.
// A limit of zero means the feature is fully gated.
var FreeTierLimits = map[Feature]int{
	FeatureMultipleGoals: 1,
	FeatureStreakFreeze:  0,
	FeatureAdvanced:      0,
	FeatureCustomThemes:  0,
	FeatureDataExport:    0,
}

func init() {
	for i := 1; i < len(MilestoneFractions); i++ {
		if MilestoneFractions[i] <= MilestoneFractions[i-1] {
			panic("MilestoneFractions must be strictly increasing")
		}
	}
}
