// ABOUTME: Collaborator interfaces consumed by the training job and ranked collector
// ABOUTME: Defines contracts for the history source, metadata lookup and feed source

package interfaces

import (
	"context"
	"time"

	"github.com/SadRunStuff/youtube-watcher/core/domain"
)

// HistoryEntry is a single visit returned by the history source.
type HistoryEntry struct {
	URL       string
	VisitedAt time.Time
}

// HistorySource provides read access to the user's browsing history.
type HistorySource interface {
	// Search returns entries whose URL contains textFilter, visited at or
	// after startTime, most recent first, capped at maxResults.
	Search(ctx context.Context, textFilter string, startTime time.Time, maxResults int) ([]HistoryEntry, error)
}

// Metadata is the resolved title/author pair for a content identifier.
type Metadata struct {
	Title  string
	Author string
}

// MetadataLookup resolves a content identifier to its metadata.
// Resolution may fail transiently; callers decide whether to retry or skip.
type MetadataLookup interface {
	Resolve(ctx context.Context, contentID string) (*Metadata, error)
}

// FeedSource yields candidate items discovered from a live, externally
// changing source. Discovery is best effort: a snapshot may repeat items
// seen before or miss items entirely.
type FeedSource interface {
	// Discover returns the currently observable candidate items.
	Discover(ctx context.Context) ([]domain.CandidateItem, error)
}
