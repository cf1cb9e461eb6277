// ABOUTME: Training job builds the frequency model from the user's watch history
// ABOUTME: Single-flight batch run with throttled lookups and resumable progress reporting

package training

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/SadRunStuff/youtube-watcher/core/domain"
	coreerrors "github.com/SadRunStuff/youtube-watcher/core/errors"
	"github.com/SadRunStuff/youtube-watcher/core/interfaces"
)

// Config holds the training run policy.
type Config struct {
	// HistoryFilter is the substring history entries must contain.
	HistoryFilter string

	// Window is how far back the history search reaches.
	Window time.Duration

	// MaxResults caps the number of history entries per run.
	MaxResults int

	// ThrottleEvery is the number of processed entries between pauses.
	ThrottleEvery int

	// ThrottleDelay is the pause between lookup bursts.
	ThrottleDelay time.Duration
}

// DefaultConfig returns the default training policy: last 12 months of
// watch history, at most 5000 entries, a 200ms pause every 5 lookups.
func DefaultConfig() Config {
	return Config{
		HistoryFilter: "youtube.com/watch",
		Window:        12 * 30 * 24 * time.Hour,
		MaxResults:    5000,
		ThrottleEvery: 5,
		ThrottleDelay: 200 * time.Millisecond,
	}
}

// Service orchestrates training runs. At most one run executes at a time
// process-wide; concurrent start requests are rejected.
type Service struct {
	deps    interfaces.Dependencies
	history interfaces.HistorySource
	lookup  interfaces.MetadataLookup
	cfg     Config

	now func() time.Time

	// onComplete runs after a successful training run, outside the
	// single-flight critical section. Used to hot-reload readers of the
	// persisted model.
	onComplete func()

	mu      sync.Mutex
	running bool
}

// SetOnComplete registers a callback invoked after each successful run.
func (s *Service) SetOnComplete(fn func()) {
	s.onComplete = fn
}

// NewService creates a training service.
func NewService(deps interfaces.Dependencies, history interfaces.HistorySource, lookup interfaces.MetadataLookup, cfg Config) *Service {
	if cfg.ThrottleEvery <= 0 {
		cfg.ThrottleEvery = DefaultConfig().ThrottleEvery
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultConfig().MaxResults
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultConfig().Window
	}
	if cfg.HistoryFilter == "" {
		cfg.HistoryFilter = DefaultConfig().HistoryFilter
	}
	return &Service{
		deps:    deps,
		history: history,
		lookup:  lookup,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Train executes a training run synchronously. It returns
// ErrTrainingInProgress if another run is already executing.
func (s *Service) Train(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	return s.run(ctx)
}

// StartAsync begins a training run on a background goroutine. The
// single-flight check happens synchronously so callers get an immediate
// rejection when a run is already active.
func (s *Service) StartAsync() error {
	if err := s.begin(); err != nil {
		return err
	}

	go func() {
		defer s.end()
		if err := s.run(context.Background()); err != nil {
			s.deps.Logger.Error("Training run failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	return nil
}

// Running reports whether a training run is currently executing.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// begin acquires the single-flight slot.
func (s *Service) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.deps.Logger.Warn("Training start rejected, run already active", nil)
		return coreerrors.ErrTrainingInProgress
	}

	s.running = true
	return nil
}

// end releases the single-flight slot.
func (s *Service) end() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// run executes one training run. Per-item lookup failures are absorbed;
// history-source and store failures abort the run, clear the progress
// record and leave the previously persisted model untouched.
func (s *Service) run(ctx context.Context) error {
	startedAt := s.now()

	s.deps.Logger.Info("Starting watch-history training", map[string]interface{}{
		"window":      s.cfg.Window.String(),
		"max_results": s.cfg.MaxResults,
	})

	progress := domain.TrainingProgress{
		Active:    true,
		StartedAt: startedAt,
	}
	if err := s.persistProgress(ctx, progress); err != nil {
		return err
	}

	entries, err := s.history.Search(ctx, s.cfg.HistoryFilter, startedAt.Add(-s.cfg.Window), s.cfg.MaxResults)
	if err != nil {
		s.clearProgress(ctx)
		return &coreerrors.SourceFailureError{Source: "history source", Err: err}
	}

	s.deps.Logger.Info("Fetched history entries", map[string]interface{}{
		"count": len(entries),
	})

	progress.TotalCount = len(entries)
	if err := s.persistProgress(ctx, progress); err != nil {
		s.clearProgress(ctx)
		return err
	}

	model := domain.NewFrequencyModel()

	for i, entry := range entries {
		contentID := ExtractContentID(entry.URL)
		if contentID == "" {
			continue
		}

		progress.ProcessedCount = i + 1
		progress.CurrentItemID = contentID
		if err := s.persistProgress(ctx, progress); err != nil {
			s.clearProgress(ctx)
			return err
		}

		meta, err := s.lookup.Resolve(ctx, contentID)
		if err != nil {
			s.deps.Logger.Warn("Metadata lookup failed, skipping entry", map[string]interface{}{
				"content_id": contentID,
				"error":      err.Error(),
			})
		} else if meta != nil && meta.Title != "" {
			model.Fold(meta.Title, meta.Author)
		}

		if (i+1)%s.cfg.ThrottleEvery == 0 && s.cfg.ThrottleDelay > 0 {
			select {
			case <-time.After(s.cfg.ThrottleDelay):
			case <-ctx.Done():
				s.clearProgress(ctx)
				return ctx.Err()
			}
		}
	}

	model.TrainedAt = s.now()
	data, err := json.Marshal(model)
	if err != nil {
		s.clearProgress(ctx)
		return coreerrors.WrapError(err, "failed to serialize model")
	}
	if err := s.deps.Store.Set(ctx, interfaces.KeyModel, data, 0); err != nil {
		s.clearProgress(ctx)
		return &coreerrors.SourceFailureError{Source: "store", Err: err}
	}

	s.clearProgress(ctx)

	s.deps.Logger.Info("Training complete", map[string]interface{}{
		"items":   model.ItemCount,
		"elapsed": s.now().Sub(startedAt).Round(time.Second).String(),
	})

	if s.onComplete != nil {
		s.onComplete()
	}

	return nil
}

// persistProgress writes the progress record to its store slot.
func (s *Service) persistProgress(ctx context.Context, progress domain.TrainingProgress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return coreerrors.WrapError(err, "failed to serialize progress")
	}
	if err := s.deps.Store.Set(ctx, interfaces.KeyTrainingProgress, data, 0); err != nil {
		return &coreerrors.SourceFailureError{Source: "store", Err: err}
	}
	return nil
}

// clearProgress overwrites the progress record with an inactive one.
// Best effort: a failure here must not mask the run's outcome.
func (s *Service) clearProgress(ctx context.Context) {
	data, err := json.Marshal(domain.TrainingProgress{Active: false})
	if err != nil {
		return
	}
	if err := s.deps.Store.Set(ctx, interfaces.KeyTrainingProgress, data, 0); err != nil {
		s.deps.Logger.Warn("Failed to clear training progress", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// ExtractContentID extracts the content identifier from a watch URL: the
// value of the `v` query parameter. Returns "" when no identifier is
// present or the URL does not parse.
func ExtractContentID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}

// Status is the externally visible training/model state. It is a pure read
// of persisted state and always reflects the last-known-good model.
type Status struct {
	Trained   bool
	Training  bool
	Progress  *ProgressStatus
	ItemCount int
	TrainedAt time.Time
	Message   string
}

// ProgressStatus describes a running training job.
type ProgressStatus struct {
	Processed            int
	Total                int
	CurrentItemID        string
	ElapsedSeconds       int
	EstimatedSecondsLeft int
}

// GetStatus derives the current status from the persisted progress record
// and model.
func (s *Service) GetStatus(ctx context.Context) Status {
	progress := s.loadProgress(ctx)
	if progress != nil && progress.Active {
		elapsed := int(s.now().Sub(progress.StartedAt).Seconds())
		avgPerItem := float64(elapsed) / float64(max(progress.ProcessedCount, 1))
		remaining := int(avgPerItem*float64(progress.TotalCount-progress.ProcessedCount) + 0.5)

		return Status{
			Training: true,
			Progress: &ProgressStatus{
				Processed:            progress.ProcessedCount,
				Total:                progress.TotalCount,
				CurrentItemID:        progress.CurrentItemID,
				ElapsedSeconds:       elapsed,
				EstimatedSecondsLeft: remaining,
			},
			Message: fmt.Sprintf("Training in progress... %d/%d items", progress.ProcessedCount, progress.TotalCount),
		}
	}

	model := s.loadModel(ctx)
	if model == nil {
		return Status{Message: "No model found. Start a training run first."}
	}

	return Status{
		Trained:   true,
		ItemCount: model.ItemCount,
		TrainedAt: model.TrainedAt,
		Message:   fmt.Sprintf("Model trained with %d items", model.ItemCount),
	}
}

// loadProgress reads the persisted progress record, nil when absent.
func (s *Service) loadProgress(ctx context.Context) *domain.TrainingProgress {
	data, err := s.deps.Store.Get(ctx, interfaces.KeyTrainingProgress)
	if err != nil || data == nil {
		return nil
	}
	var progress domain.TrainingProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil
	}
	return &progress
}

// loadModel reads the persisted model, nil when absent or malformed.
func (s *Service) loadModel(ctx context.Context) *domain.FrequencyModel {
	data, err := s.deps.Store.Get(ctx, interfaces.KeyModel)
	if err != nil || data == nil {
		return nil
	}
	var model domain.FrequencyModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil
	}
	return &model
}
