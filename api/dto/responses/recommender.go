// ABOUTME: Response DTOs for the recommender API endpoints
// ABOUTME: Defines the wire shapes for status, ranked results and mode queries

package responses

// TrainingProgressResponse describes a running training job
type TrainingProgressResponse struct {
	Processed            int    `json:"processed" doc:"History entries processed so far"`
	Total                int    `json:"total" doc:"History entries in the run"`
	CurrentItemID        string `json:"currentItemId,omitempty" doc:"Identifier currently being resolved"`
	ElapsedSeconds       int    `json:"elapsedSeconds" doc:"Seconds since the run started"`
	EstimatedSecondsLeft int    `json:"estimatedSecondsLeft" doc:"Estimated seconds remaining"`
}

// StatusResponse is the model/training status
type StatusResponse struct {
	Trained   bool                      `json:"trained"`
	Training  bool                      `json:"training"`
	ItemCount int                       `json:"itemCount,omitempty" doc:"Items incorporated into the model"`
	TrainedAt string                    `json:"trainedAt,omitempty" doc:"RFC3339 time of last completed run"`
	Message   string                    `json:"message"`
	Progress  *TrainingProgressResponse `json:"progress,omitempty"`
}

// TrainStartedResponse acknowledges an accepted training request
type TrainStartedResponse struct {
	Message string `json:"message"`
}

// RankedResultResponse is a single scored candidate
type RankedResultResponse struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Source string  `json:"source,omitempty"`
	Score  float64 `json:"score" doc:"Affinity score in [0,1]"`
	Band   string  `json:"band,omitempty" doc:"Display band: high, medium, low or empty"`
	URL    string  `json:"url"`
}

// RankedResultsResponse is the persisted ranked list
type RankedResultsResponse struct {
	Results     []RankedResultResponse `json:"results"`
	Count       int                    `json:"count"`
	CollectedAt string                 `json:"collectedAt,omitempty" doc:"RFC3339 time of last persistence"`
}

// ObserveResponse reports the outcome of an observe batch
type ObserveResponse struct {
	Accepted  int `json:"accepted" doc:"Items accepted into the ranked list"`
	Processed int `json:"processed" doc:"Total items examined since startup"`
}

// ModeResponse reports the background ranking preference
type ModeResponse struct {
	Background bool `json:"background"`
}

// SessionResponse acknowledges interactive session control requests
type SessionResponse struct {
	Active  bool   `json:"active"`
	Message string `json:"message"`
}
