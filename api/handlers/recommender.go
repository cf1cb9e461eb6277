// ABOUTME: Recommender handlers for the Huma API
// ABOUTME: Exposes training, status, observation, ranked results and session control

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SadRunStuff/youtube-watcher/api/dto/mappers"
	"github.com/SadRunStuff/youtube-watcher/api/dto/requests"
	"github.com/SadRunStuff/youtube-watcher/api/dto/responses"
	"github.com/SadRunStuff/youtube-watcher/core/domain"
	"github.com/SadRunStuff/youtube-watcher/core/interfaces"
	"github.com/SadRunStuff/youtube-watcher/core/training"
	"github.com/danielgtaylor/huma/v2"
)

// TrainingService interface defines the methods needed from the training service
type TrainingService interface {
	StartAsync() error
	GetStatus(ctx context.Context) training.Status
}

// CollectorService interface defines the methods needed from the ranked collector
type CollectorService interface {
	Observe(ctx context.Context, items []domain.CandidateItem) int
	Results() []domain.RankedResult
	ProcessedTotal() int
	CollectedAt(ctx context.Context) time.Time
	SetBackgroundEnabled(ctx context.Context, enabled bool)
	BackgroundEnabled() bool
	Clear(ctx context.Context)
	RunInteractive(ctx context.Context) error
	CancelSession()
	SessionActive() bool
}

// RecommenderHandler handles recommender-related HTTP requests
type RecommenderHandler struct {
	training  TrainingService
	collector CollectorService
	bander    mappers.Bander
	logger    interfaces.Logger
}

// NewRecommenderHandler creates a new recommender handler
func NewRecommenderHandler(trainingSvc TrainingService, collectorSvc CollectorService, bander mappers.Bander, logger interfaces.Logger) *RecommenderHandler {
	return &RecommenderHandler{
		training:  trainingSvc,
		collector: collectorSvc,
		bander:    bander,
		logger:    logger,
	}
}

// RegisterRoutes registers all recommender-related routes
func (h *RecommenderHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "trainModel",
		Method:        http.MethodPost,
		Path:          "/train",
		Summary:       "Start a training run",
		Description:   "Builds the interest profile from watch history. At most one run executes at a time.",
		Tags:          []string{"Training"},
		DefaultStatus: http.StatusAccepted,
	}, h.TrainModel)

	huma.Register(api, huma.Operation{
		OperationID: "getModelStatus",
		Method:      http.MethodGet,
		Path:        "/status",
		Summary:     "Get model and training status",
		Tags:        []string{"Training"},
	}, h.GetModelStatus)

	huma.Register(api, huma.Operation{
		OperationID: "observeItems",
		Method:      http.MethodPost,
		Path:        "/observe",
		Summary:     "Push freshly discovered candidate items",
		Tags:        []string{"Ranking"},
	}, h.ObserveItems)

	huma.Register(api, huma.Operation{
		OperationID: "getRankedResults",
		Method:      http.MethodGet,
		Path:        "/recommendations",
		Summary:     "Get the ranked results",
		Tags:        []string{"Ranking"},
	}, h.GetRankedResults)

	huma.Register(api, huma.Operation{
		OperationID: "clearResults",
		Method:      http.MethodDelete,
		Path:        "/recommendations",
		Summary:     "Clear the ranked results",
		Tags:        []string{"Ranking"},
	}, h.ClearResults)

	huma.Register(api, huma.Operation{
		OperationID: "setMode",
		Method:      http.MethodPut,
		Path:        "/mode",
		Summary:     "Toggle continuous background ranking",
		Tags:        []string{"Ranking"},
	}, h.SetMode)

	huma.Register(api, huma.Operation{
		OperationID:   "startCollection",
		Method:        http.MethodPost,
		Path:          "/collect",
		Summary:       "Start an interactive collection session",
		Description:   "Polls the feed until it stops growing or the session is stopped.",
		Tags:          []string{"Ranking"},
		DefaultStatus: http.StatusAccepted,
	}, h.StartCollection)

	huma.Register(api, huma.Operation{
		OperationID: "stopCollection",
		Method:      http.MethodPost,
		Path:        "/collect/stop",
		Summary:     "Stop the interactive collection session",
		Tags:        []string{"Ranking"},
	}, h.StopCollection)
}

// TrainModelOutput defines the output for the TrainModel operation
type TrainModelOutput struct {
	Body responses.TrainStartedResponse
}

// TrainModel handles POST /train
func (h *RecommenderHandler) TrainModel(ctx context.Context, _ *struct{}) (*TrainModelOutput, error) {
	if err := h.training.StartAsync(); err != nil {
		return nil, toHumaError(err)
	}

	return &TrainModelOutput{
		Body: responses.TrainStartedResponse{Message: "training started"},
	}, nil
}

// GetModelStatusOutput defines the output for the GetModelStatus operation
type GetModelStatusOutput struct {
	Body responses.StatusResponse
}

// GetModelStatus handles GET /status
func (h *RecommenderHandler) GetModelStatus(ctx context.Context, _ *struct{}) (*GetModelStatusOutput, error) {
	status := h.training.GetStatus(ctx)

	return &GetModelStatusOutput{
		Body: mappers.ToStatusResponse(status),
	}, nil
}

// ObserveItemsInput defines the input for the ObserveItems operation
type ObserveItemsInput struct {
	Body requests.ObserveRequest
}

// ObserveItemsOutput defines the output for the ObserveItems operation
type ObserveItemsOutput struct {
	Body responses.ObserveResponse
}

// ObserveItems handles POST /observe
func (h *RecommenderHandler) ObserveItems(ctx context.Context, input *ObserveItemsInput) (*ObserveItemsOutput, error) {
	items := make([]domain.CandidateItem, 0, len(input.Body.Items))
	for _, it := range input.Body.Items {
		items = append(items, domain.CandidateItem{
			ID:     it.ID,
			Title:  it.Title,
			Source: it.Source,
		})
	}

	accepted := h.collector.Observe(ctx, items)

	return &ObserveItemsOutput{
		Body: responses.ObserveResponse{
			Accepted:  accepted,
			Processed: h.collector.ProcessedTotal(),
		},
	}, nil
}

// GetRankedResultsOutput defines the output for the GetRankedResults operation
type GetRankedResultsOutput struct {
	Body responses.RankedResultsResponse
}

// GetRankedResults handles GET /recommendations
func (h *RecommenderHandler) GetRankedResults(ctx context.Context, _ *struct{}) (*GetRankedResultsOutput, error) {
	results := h.collector.Results()
	collectedAt := h.collector.CollectedAt(ctx)

	return &GetRankedResultsOutput{
		Body: mappers.ToRankedResultsResponse(results, collectedAt, h.bander),
	}, nil
}

// ClearResultsOutput defines the output for the ClearResults operation
type ClearResultsOutput struct {
	Body responses.SessionResponse
}

// ClearResults handles DELETE /recommendations
func (h *RecommenderHandler) ClearResults(ctx context.Context, _ *struct{}) (*ClearResultsOutput, error) {
	h.collector.Clear(ctx)

	return &ClearResultsOutput{
		Body: responses.SessionResponse{
			Active:  h.collector.SessionActive(),
			Message: "recommendations cleared",
		},
	}, nil
}

// SetModeInput defines the input for the SetMode operation
type SetModeInput struct {
	Body requests.ModeRequest
}

// SetModeOutput defines the output for the SetMode operation
type SetModeOutput struct {
	Body responses.ModeResponse
}

// SetMode handles PUT /mode
func (h *RecommenderHandler) SetMode(ctx context.Context, input *SetModeInput) (*SetModeOutput, error) {
	h.collector.SetBackgroundEnabled(ctx, input.Body.Background)

	return &SetModeOutput{
		Body: responses.ModeResponse{Background: h.collector.BackgroundEnabled()},
	}, nil
}

// StartCollectionOutput defines the output for the StartCollection operation
type StartCollectionOutput struct {
	Body responses.SessionResponse
}

// StartCollection handles POST /collect
func (h *RecommenderHandler) StartCollection(ctx context.Context, _ *struct{}) (*StartCollectionOutput, error) {
	if h.collector.SessionActive() {
		return nil, huma.Error409Conflict("interactive session already running")
	}

	// The session outlives the request; it stops on feed stagnation or an
	// explicit /collect/stop.
	go func() {
		if err := h.collector.RunInteractive(context.Background()); err != nil {
			h.logger.Warn("Interactive session rejected", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	return &StartCollectionOutput{
		Body: responses.SessionResponse{Active: true, Message: "collection session started"},
	}, nil
}

// StopCollectionOutput defines the output for the StopCollection operation
type StopCollectionOutput struct {
	Body responses.SessionResponse
}

// StopCollection handles POST /collect/stop
func (h *RecommenderHandler) StopCollection(ctx context.Context, _ *struct{}) (*StopCollectionOutput, error) {
	h.collector.CancelSession()

	return &StopCollectionOutput{
		Body: responses.SessionResponse{Active: false, Message: "collection session stopped"},
	}, nil
}
