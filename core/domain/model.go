// ABOUTME: FrequencyModel domain model aggregates word and source counts from watch history
// ABOUTME: Built wholesale by the training job and read-only everywhere else

package domain

import (
	"time"

	"github.com/SadRunStuff/youtube-watcher/core/tokenizer"
)

// FrequencyModel is the trained interest profile: raw occurrence counts of
// title words and source names across the incorporated history items.
// Counts only grow within one training run; a new run replaces the whole
// model, never merges into it.
type FrequencyModel struct {
	// WordCounts maps a title word to its occurrence count.
	WordCounts map[string]int `json:"wordCounts"`

	// SourceCounts maps a source (channel) name to its occurrence count.
	SourceCounts map[string]int `json:"sourceCounts"`

	// ItemCount is the number of successfully incorporated items.
	ItemCount int `json:"itemCount"`

	// TrainedAt is when the last training run completed.
	TrainedAt time.Time `json:"trainedAt"`
}

// NewFrequencyModel creates an empty model ready for folding.
func NewFrequencyModel() *FrequencyModel {
	return &FrequencyModel{
		WordCounts:   make(map[string]int),
		SourceCounts: make(map[string]int),
	}
}

// Fold incorporates one resolved (title, source) pair into the model.
// Items that resolve to an empty title are not counted.
func (m *FrequencyModel) Fold(title, source string) {
	if title == "" {
		return
	}

	for _, word := range tokenizer.Training(title) {
		m.WordCounts[word]++
	}

	if source != "" {
		m.SourceCounts[source]++
	}

	m.ItemCount++
}

// IsEmpty reports whether the model has incorporated any items.
func (m *FrequencyModel) IsEmpty() bool {
	return m == nil || m.ItemCount == 0
}
