// ABOUTME: TrainingProgress domain model tracks a running training job for observability
// ABOUTME: A single record exists at a time and is overwritten, never appended

package domain

import "time"

// TrainingProgress is the ephemeral, persisted progress of a training run.
// It is created when a run starts, updated once per item, and cleared
// (Active=false) on completion or failure.
type TrainingProgress struct {
	// Active reports whether a training run is currently executing.
	Active bool `json:"active"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"startedAt"`

	// ProcessedCount is the number of history entries processed so far.
	ProcessedCount int `json:"processedCount"`

	// TotalCount is the number of history entries in the run.
	TotalCount int `json:"totalCount"`

	// CurrentItemID is the identifier currently being resolved, or empty.
	CurrentItemID string `json:"currentItemId"`
}
