// ABOUTME: Request DTOs for the recommender API endpoints
// ABOUTME: Provides validation for observed candidate batches and mode changes

package requests

// ObservedItem is a candidate item pushed by the feed collaborator.
type ObservedItem struct {
	// ID is the stable content identifier
	ID string `json:"id,omitempty" doc:"Stable content identifier"`

	// Title is the item's headline
	Title string `json:"title,omitempty" doc:"Item title"`

	// Source is the channel/author name
	Source string `json:"source,omitempty" doc:"Channel or author name"`
}

// ObserveRequest represents a batch of freshly discovered candidate items
type ObserveRequest struct {
	// Items is the batch of candidates to score
	Items []ObservedItem `json:"items" minItems:"1" maxItems:"500" doc:"Candidate items to score"`
}

// ModeRequest toggles continuous background ranking
type ModeRequest struct {
	// Background enables or disables background sampling
	Background bool `json:"background" doc:"Enable continuous background ranking"`
}
