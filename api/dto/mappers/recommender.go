// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Provides clean separation between business logic and API layer

package mappers

import (
	"time"

	"github.com/SadRunStuff/youtube-watcher/api/dto/responses"
	"github.com/SadRunStuff/youtube-watcher/core/domain"
	"github.com/SadRunStuff/youtube-watcher/core/training"
)

// Bander maps a score to its display band.
type Bander interface {
	Band(score float64) string
}

// ToStatusResponse converts a training status to its response DTO
func ToStatusResponse(status training.Status) responses.StatusResponse {
	resp := responses.StatusResponse{
		Trained:   status.Trained,
		Training:  status.Training,
		ItemCount: status.ItemCount,
		Message:   status.Message,
	}

	if !status.TrainedAt.IsZero() {
		resp.TrainedAt = status.TrainedAt.Format(time.RFC3339)
	}

	if status.Progress != nil {
		resp.Progress = &responses.TrainingProgressResponse{
			Processed:            status.Progress.Processed,
			Total:                status.Progress.Total,
			CurrentItemID:        status.Progress.CurrentItemID,
			ElapsedSeconds:       status.Progress.ElapsedSeconds,
			EstimatedSecondsLeft: status.Progress.EstimatedSecondsLeft,
		}
	}

	return resp
}

// ToRankedResultsResponse converts ranked results to their response DTO
func ToRankedResultsResponse(results []domain.RankedResult, collectedAt time.Time, bander Bander) responses.RankedResultsResponse {
	resp := responses.RankedResultsResponse{
		Results: make([]responses.RankedResultResponse, 0, len(results)),
		Count:   len(results),
	}

	for _, r := range results {
		item := responses.RankedResultResponse{
			ID:     r.ID,
			Title:  r.Title,
			Source: r.Source,
			Score:  r.Score,
			URL:    r.URL,
		}
		if bander != nil {
			item.Band = bander.Band(r.Score)
		}
		resp.Results = append(resp.Results, item)
	}

	if !collectedAt.IsZero() {
		resp.CollectedAt = collectedAt.Format(time.RFC3339)
	}

	return resp
}
