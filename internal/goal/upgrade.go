package goal

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/constants"
	"github.com/julianstephens/dayly/internal/models"
)

var ErrUnknownShape = errors.New("unrecognized goal data")

// legacyGoal is the single-goal object that predates goal sets.
type legacyGoal struct {
	Title             string          `json:"title"`
	StartDate         *string         `json:"startDate"`
	ProgressDays      int             `json:"progressDays"`
	TotalDays         int             `json:"totalDays"`
	CheckIns          map[string]bool `json:"checkIns"`
	Completed         bool            `json:"completed"`
	LastProgressDate  *string         `json:"lastProgressDate"`
	GoalStreak        int             `json:"goalStreak"`
	LongestGoalStreak int             `json:"longestGoalStreak"`
}

// legacyMainGoal is the oldest shape: free text with a day counter and
// ISO timestamps.
type legacyMainGoal struct {
	Text            string  `json:"text"`
	TotalDays       int     `json:"totalDays"`
	CurrentDay      int     `json:"currentDay"`
	StartDate       string  `json:"startDate"`
	LastUpdatedDate *string `json:"lastUpdatedDate"`
}

// legacyID derives a stable id so that upgrading the same data twice yields
// the same goal.
func legacyID(title, start string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(constants.AppName+":"+title+":"+start)).String()
}

// Upgrade converts any stored goal shape into a current GoalSet. It is pure:
// the result depends only on raw.
func Upgrade(raw []byte) (models.GoalSet, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return models.GoalSet{}, fmt.Errorf("%w: %v", ErrUnknownShape, err)
	}

	switch {
	case probe["goals"] != nil:
		return upgradeSet(raw)
	case probe["text"] != nil:
		return upgradeMainGoal(raw)
	case probe["title"] != nil:
		return upgradeSingle(raw)
	case len(probe) == 0:
		return models.NewGoalSet(), nil
	default:
		return models.GoalSet{}, ErrUnknownShape
	}
}

func upgradeSet(raw []byte) (models.GoalSet, error) {
	set := models.NewGoalSet()
	if err := json.Unmarshal(raw, &set); err != nil {
		return models.GoalSet{}, err
	}
	if set.SchemaVersion > constants.GoalSetSchemaVersion {
		return models.GoalSet{}, fmt.Errorf("goal schema version %d is newer than supported %d", set.SchemaVersion, constants.GoalSetSchemaVersion)
	}
	if set.Goals == nil {
		set.Goals = []models.Goal{}
	}
	for i := range set.Goals {
		normalize(&set.Goals[i])
	}
	set.SchemaVersion = constants.GoalSetSchemaVersion
	return set, nil
}

func upgradeSingle(raw []byte) (models.GoalSet, error) {
	var old legacyGoal
	if err := json.Unmarshal(raw, &old); err != nil {
		return models.GoalSet{}, err
	}

	set := models.NewGoalSet()
	title := strings.TrimSpace(old.Title)
	if title == "" || old.StartDate == nil || *old.StartDate == "" {
		// An unset goal in the old format
		return set, nil
	}

	g := models.Goal{
		ID:                legacyID(title, *old.StartDate),
		Title:             title,
		StartDate:         *old.StartDate,
		TotalDays:         old.TotalDays,
		ProgressDays:      old.ProgressDays,
		CheckIns:          make(map[string]models.GoalCheckIn, len(old.CheckIns)),
		Completed:         old.Completed,
		IsActive:          true,
		ResetPolicy:       constants.ResetStrict, // this lineage wiped progress on a missed day
		GoalStreak:        old.GoalStreak,
		LongestGoalStreak: old.LongestGoalStreak,
	}
	if old.LastProgressDate != nil {
		g.LastProgressDate = *old.LastProgressDate
	}

	dates := make([]string, 0, len(old.CheckIns))
	for d, ok := range old.CheckIns {
		if ok {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	for _, d := range dates {
		if t, err := calendar.ParseDate(d); err == nil {
			g.CheckIns[d] = models.GoalCheckIn{Timestamp: calendar.Millis(t)}
		}
	}

	normalize(&g)
	set.Goals = append(set.Goals, g)
	set.ActiveGoalIndex = 0
	return set, nil
}

func upgradeMainGoal(raw []byte) (models.GoalSet, error) {
	var old legacyMainGoal
	if err := json.Unmarshal(raw, &old); err != nil {
		return models.GoalSet{}, err
	}

	set := models.NewGoalSet()
	title := strings.TrimSpace(old.Text)
	if title == "" {
		return set, nil
	}

	start, err := isoToDateKey(old.StartDate)
	if err != nil {
		return models.GoalSet{}, fmt.Errorf("invalid start date: %w", err)
	}

	g := models.Goal{
		ID:           legacyID(title, start),
		Title:        title,
		StartDate:    start,
		TotalDays:    old.TotalDays,
		ProgressDays: old.CurrentDay,
		CheckIns:     make(map[string]models.GoalCheckIn),
		IsActive:     true,
		ResetPolicy:  constants.ResetLenient,
	}
	if old.LastUpdatedDate != nil {
		if t, err := time.Parse(time.RFC3339Nano, *old.LastUpdatedDate); err == nil {
			last := calendar.DateKey(t.Local())
			g.LastProgressDate = last
			g.CheckIns[last] = models.GoalCheckIn{Timestamp: calendar.Millis(t)}
			if g.ProgressDays > 0 {
				g.GoalStreak = 1
				g.LongestGoalStreak = 1
			}
		}
	}
	if g.TotalDays > 0 && g.ProgressDays >= g.TotalDays {
		g.Completed = true
	}

	normalize(&g)
	set.Goals = append(set.Goals, g)
	set.ActiveGoalIndex = 0
	return set, nil
}

func isoToDateKey(s string) (string, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return calendar.DateKey(t.Local()), nil
	}
	if _, err := calendar.ParseDate(s); err != nil {
		return "", err
	}
	return s, nil
}

// normalize fills fields that older data may lack.
func normalize(g *models.Goal) {
	if g.TotalDays < 1 {
		g.TotalDays = 1
	}
	if g.ProgressDays < 0 {
		g.ProgressDays = 0
	}
	if g.ID == "" {
		g.ID = legacyID(g.Title, g.StartDate)
	}
	if g.CheckIns == nil {
		g.CheckIns = make(map[string]models.GoalCheckIn)
	}
	if g.Milestones == nil {
		g.Milestones = BuildMilestones(g.TotalDays)
		for i := range g.Milestones {
			if g.ProgressDays >= g.Milestones[i].ThresholdDays {
				g.Milestones[i].Achieved = true
			}
		}
	}
	if g.ResetPolicy == "" {
		g.ResetPolicy = constants.ResetLenient
	}
	if g.TargetDate == "" {
		g.TargetDate = ProjectedCompletionDate(*g)
	}
	if g.LongestGoalStreak < g.GoalStreak {
		g.LongestGoalStreak = g.GoalStreak
	}
}
