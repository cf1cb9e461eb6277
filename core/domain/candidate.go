// ABOUTME: Candidate and ranked-result domain models for the incremental ranking pipeline
// ABOUTME: Candidates come from the live feed; ranked results are the persisted output

package domain

// CandidateItem is a content entry observed in the live feed, eligible for
// scoring. Items may recur across observations after the collector's seen
// memory is cleared.
type CandidateItem struct {
	// ID is the stable content identifier (unique within a session).
	ID string

	// Title is the item's headline; may be empty.
	Title string

	// Source is the channel/author name; may be empty.
	Source string
}

// WatchURL returns the canonical watch URL for the candidate.
func (c CandidateItem) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + c.ID
}

// RankedResult is a scored candidate retained for presentation.
type RankedResult struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
	URL    string  `json:"url"`
}
