package models

import "github.com/julianstephens/dayly/internal/constants"

// IntentEvent records interest in a premium feature
type IntentEvent struct {
	Feature         constants.Feature `json:"feature"`
	TimestampMillis int64             `json:"timestamp"`
	AppVersion      string            `json:"app_version"`
}

// IntentLog is the persisted, capped event log
type IntentLog struct {
	Events []IntentEvent `json:"events"`
}
