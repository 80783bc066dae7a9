package intent

import (
	"fmt"
	"sort"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/constants"
	dayerrors "github.com/julianstephens/dayly/internal/errors"
	"github.com/julianstephens/dayly/internal/logger"
	"github.com/julianstephens/dayly/internal/models"
	"github.com/julianstephens/dayly/internal/storage"
)

// UsageFunc reports how much of a feature is currently in use
type UsageFunc func() int

type Option func(*Tracker)

// WithLimits replaces the free-tier limit table.
func WithLimits(limits map[constants.Feature]int) Option {
	return func(t *Tracker) {
		t.limits = make(map[constants.Feature]int, len(limits))
		for k, v := range limits {
			t.limits[k] = v
		}
	}
}

// WithUsage registers the usage counter for a feature.
func WithUsage(feature constants.Feature, fn UsageFunc) Option {
	return func(t *Tracker) { t.usage[feature] = fn }
}

// WithAppVersion sets the version stamped on recorded events.
func WithAppVersion(v string) Option {
	return func(t *Tracker) { t.version = v }
}

// Tracker records premium-feature interest and answers free-tier limit checks
type Tracker struct {
	store   storage.Provider
	clock   calendar.Clock
	limits  map[constants.Feature]int
	usage   map[constants.Feature]UsageFunc
	version string
	log     models.IntentLog
	guard   storage.Guard
}

func New(store storage.Provider, clock calendar.Clock, opts ...Option) *Tracker {
	t := &Tracker{
		store:   store,
		clock:   clock,
		limits:  constants.FreeTierLimits,
		usage:   make(map[constants.Feature]UsageFunc),
		version: constants.Version,
		log:     models.IntentLog{Events: []models.IntentEvent{}},
		guard:   storage.Guard{Key: constants.IntentsKey},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load reads the persisted event log.
func (t *Tracker) Load() error {
	var loaded models.IntentLog
	status, err := storage.LoadJSON(t.store, constants.IntentsKey, &loaded)
	if err != nil {
		return err
	}
	t.guard.Status = status
	if status == storage.BlobLoaded {
		if loaded.Events == nil {
			loaded.Events = []models.IntentEvent{}
		}
		t.log = loaded
	}
	return nil
}

func (t *Tracker) BlobStatus() storage.BlobStatus {
	return t.guard.Status
}

// SetUsage registers the usage counter for a feature after construction.
func (t *Tracker) SetUsage(feature constants.Feature, fn UsageFunc) {
	t.usage[feature] = fn
}

// Limit returns the free-tier allowance for feature; unknown features get 0.
func (t *Tracker) Limit(feature constants.Feature) int {
	return t.limits[feature]
}

// Usage returns the current usage of feature, 0 when nothing reports it.
func (t *Tracker) Usage(feature constants.Feature) int {
	if fn, ok := t.usage[feature]; ok && fn != nil {
		return fn()
	}
	return 0
}

// IsAtFreeLimit reports whether the free tier allows no further use of feature.
func (t *Tracker) IsAtFreeLimit(feature constants.Feature) bool {
	limit, ok := t.limits[feature]
	if !ok {
		return true
	}
	return t.Usage(feature) >= limit
}

// RecordIntent appends an interest event, keeping the newest entries.
func (t *Tracker) RecordIntent(feature constants.Feature) models.Result {
	t.log.Events = append(t.log.Events, models.IntentEvent{
		Feature:         feature,
		TimestampMillis: calendar.Millis(t.clock.Now()),
		AppVersion:      t.version,
	})
	if over := len(t.log.Events) - constants.MaxIntentEvents; over > 0 {
		t.log.Events = append([]models.IntentEvent(nil), t.log.Events[over:]...)
	}

	res := models.Result{
		Success: true,
		Message: fmt.Sprintf("Thanks for your interest in %s! Premium is coming soon.", feature),
	}
	if err := t.guard.Save(t.store, t.log); err != nil {
		res.SaveFailed = true
		res.Err = err
		res.Message += " " + dayerrors.SaveWarning(err)
	}
	logger.Info("Premium intent recorded", "feature", feature)
	return res
}

// Events returns a copy of the event log, oldest first.
func (t *Tracker) Events() []models.IntentEvent {
	return append([]models.IntentEvent(nil), t.log.Events...)
}

// FeatureCount is the number of recorded events for one feature
type FeatureCount struct {
	Feature constants.Feature
	Count   int
}

// CountByFeature tallies events per feature, most requested first.
func (t *Tracker) CountByFeature() []FeatureCount {
	counts := make(map[constants.Feature]int)
	for _, ev := range t.log.Events {
		counts[ev.Feature]++
	}
	out := make([]FeatureCount, 0, len(counts))
	for f, n := range counts {
		out = append(out, FeatureCount{Feature: f, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Feature < out[j].Feature
	})
	return out
}

// KnownFeature reports whether feature appears in the limit table.
func (t *Tracker) KnownFeature(feature constants.Feature) bool {
	_, ok := t.limits[feature]
	return ok
}
