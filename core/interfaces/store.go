// ABOUTME: Store interface for the persisted single-slot state of the recommender
// ABOUTME: Implementations can be in-memory, Redis, or SQLite

package interfaces

import (
	"context"
	"time"
)

// Store keys for the persisted state slots. Each key holds a single value
// that is replaced wholesale on write; there is at most one writer per key.
const (
	KeyModel              = "recommender:model"
	KeyTrainingProgress   = "recommender:training_progress"
	KeyResults            = "recommender:results"
	KeyResultsCollectedAt = "recommender:results_collected_at"
	KeyBackgroundEnabled  = "recommender:background_enabled"
)

// Store defines the interface for persistent key-value storage.
// Writes are last-write-wins per key; no transactions are provided.
type Store interface {
	// Get retrieves a value by key.
	// Returns the stored data as []byte or an error if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under the given key with a TTL.
	// If ttl is 0, the value is stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
