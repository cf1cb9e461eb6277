// ABOUTME: Ranked collector maintains a bounded, deduplicated, score-sorted list of candidates
// ABOUTME: Runs continuously against a live feed with periodic seen-memory resets

package collector

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/SadRunStuff/youtube-watcher/core/domain"
	"github.com/SadRunStuff/youtube-watcher/core/interfaces"
	"github.com/SadRunStuff/youtube-watcher/core/scheduler"
	"github.com/SadRunStuff/youtube-watcher/core/scoring"
	"github.com/SadRunStuff/youtube-watcher/pkg/featureflags"
)

// Mode selects the collection policy.
type Mode string

const (
	// ModeInteractive is a user-triggered, bounded scan session. Results
	// are persisted on every accepted item and are not deduplicated.
	ModeInteractive Mode = "interactive"

	// ModeBackground is the always-on periodic sampling mode. Results are
	// deduplicated by id and persisted once per batch that accepted items.
	ModeBackground Mode = "background"
)

// ErrSessionActive is returned when an interactive scan session is
// requested while one is already running.
var ErrSessionActive = errors.New("interactive session already running")

// Config holds the collector policy.
type Config struct {
	// AcceptThreshold is the minimum score for a candidate to be retained.
	// Intentionally below the lowest display band so borderline items can
	// still accumulate in the ranked list.
	AcceptThreshold float64

	// InteractiveLimit and BackgroundLimit bound the ranked list per mode.
	InteractiveLimit int
	BackgroundLimit  int

	// SampleInterval is how often background mode pulls a feed snapshot.
	SampleInterval time.Duration

	// SeenResetInterval is how often the seen memory is cleared so items
	// that previously lacked data can be re-evaluated.
	SeenResetInterval time.Duration

	// PollDelay is the interactive wait between discovery passes.
	PollDelay time.Duration

	// MaxIdlePolls ends an interactive session after this many consecutive
	// polls without feed growth.
	MaxIdlePolls int

	// Flags is consulted for collection-policy toggles. Nil means all
	// flags are off.
	Flags featureflags.Manager
}

// DefaultConfig returns the default collection policy.
func DefaultConfig() Config {
	return Config{
		AcceptThreshold:   0.05,
		InteractiveLimit:  50,
		BackgroundLimit:   100,
		SampleInterval:    3 * time.Second,
		SeenResetInterval: 30 * time.Second,
		PollDelay:         1500 * time.Millisecond,
		MaxIdlePolls:      3,
	}
}

// Service is the ranked collector. It is the sole writer of the persisted
// ranked-result slot; the model is read-only here.
type Service struct {
	deps   interfaces.Dependencies
	scorer *scoring.Scorer
	feed   interfaces.FeedSource
	sched  *scheduler.Scheduler
	cfg    Config

	now func() time.Time

	mu                sync.Mutex
	mode              Mode
	model             *domain.FrequencyModel
	seen              map[string]struct{}
	results           []domain.RankedResult
	processedTotal    int
	backgroundEnabled bool
	backgroundTasks   []scheduler.TaskID

	sessionCancel context.CancelFunc
}

// NewService creates a collector. Call Start to load persisted state and
// begin background sampling.
func NewService(deps interfaces.Dependencies, scorer *scoring.Scorer, feed interfaces.FeedSource, sched *scheduler.Scheduler, cfg Config) *Service {
	if cfg.InteractiveLimit <= 0 {
		cfg.InteractiveLimit = DefaultConfig().InteractiveLimit
	}
	if cfg.BackgroundLimit <= 0 {
		cfg.BackgroundLimit = DefaultConfig().BackgroundLimit
	}
	if cfg.AcceptThreshold == 0 {
		cfg.AcceptThreshold = DefaultConfig().AcceptThreshold
	}
	if cfg.SampleInterval <= 0 {
		cfg.SampleInterval = DefaultConfig().SampleInterval
	}
	if cfg.SeenResetInterval <= 0 {
		cfg.SeenResetInterval = DefaultConfig().SeenResetInterval
	}
	if cfg.PollDelay <= 0 {
		cfg.PollDelay = DefaultConfig().PollDelay
	}
	if cfg.MaxIdlePolls <= 0 {
		cfg.MaxIdlePolls = DefaultConfig().MaxIdlePolls
	}

	return &Service{
		deps:   deps,
		scorer: scorer,
		feed:   feed,
		sched:  sched,
		cfg:    cfg,
		now:    time.Now,
		mode:   ModeBackground,
		seen:   make(map[string]struct{}),
	}
}

// Start loads persisted state (model, accumulated results, background
// preference) and begins background sampling when enabled.
func (s *Service) Start(ctx context.Context) {
	s.ReloadModel(ctx)
	s.loadResults(ctx)
	s.loadBackgroundPreference(ctx)

	s.mu.Lock()
	enabled := s.backgroundEnabled
	s.mu.Unlock()

	if enabled {
		s.startBackgroundTasks()
	}
	s.sched.Start()
}

// Stop cancels any interactive session and tears down all interval tasks.
func (s *Service) Stop() {
	s.CancelSession()
	s.sched.Stop()
}

// ReloadModel re-reads the persisted frequency model. Called at startup
// and after each successful training run.
func (s *Service) ReloadModel(ctx context.Context) {
	data, err := s.deps.Store.Get(ctx, interfaces.KeyModel)
	if err != nil || data == nil {
		s.deps.Logger.Info("No trained model available, candidates will score 0", nil)
		return
	}

	var model domain.FrequencyModel
	if err := json.Unmarshal(data, &model); err != nil {
		s.deps.Logger.Error("Failed to decode persisted model", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	s.mu.Lock()
	s.model = &model
	s.mu.Unlock()

	s.deps.Logger.Info("Loaded frequency model", map[string]interface{}{
		"items": model.ItemCount,
	})
}

// Observe scores a batch of freshly discovered candidate items and folds
// the accepted ones into the ranked list. Returns the number accepted.
func (s *Service) Observe(ctx context.Context, items []domain.CandidateItem) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	accepted := 0
	for _, item := range items {
		if item.ID != "" {
			if _, ok := s.seen[item.ID]; ok {
				continue
			}
		}
		s.markSeen(item.ID)
		s.processedTotal++

		// Items without a usable title or identifier cannot be scored or
		// linked; they still count as seen so they are not re-examined
		// until the next seen reset.
		if item.Title == "" || item.ID == "" {
			continue
		}

		score := s.scorer.Score(s.model, item.Title, item.Source)
		if score <= s.cfg.AcceptThreshold {
			continue
		}

		if s.dedupEnabled(ctx) && s.containsID(item.ID) {
			continue
		}

		s.results = append(s.results, domain.RankedResult{
			ID:     item.ID,
			Title:  item.Title,
			Source: item.Source,
			Score:  score,
			URL:    item.WatchURL(),
		})
		s.sortAndTruncate()
		accepted++

		if s.mode == ModeInteractive {
			s.persistResults(ctx)
		}
	}

	if s.mode == ModeBackground && accepted > 0 {
		s.persistResults(ctx)
		s.deps.Logger.Info("Background ranking accepted new candidates", map[string]interface{}{
			"accepted": accepted,
			"total":    len(s.results),
		})
	}

	return accepted
}

// dedupEnabled reports whether ranked-list deduplication applies to the
// current mode. Background always deduplicates; interactive only behind
// the flag. Callers hold the mutex.
func (s *Service) dedupEnabled(ctx context.Context) bool {
	if s.mode == ModeBackground {
		return true
	}
	return s.cfg.Flags != nil && s.cfg.Flags.IsEnabled(ctx, featureflags.InteractiveDedup)
}

// markSeen records an identifier in the seen memory.
func (s *Service) markSeen(id string) {
	if id != "" {
		s.seen[id] = struct{}{}
	}
}

// containsID reports whether the ranked list already holds the id.
func (s *Service) containsID(id string) bool {
	for _, r := range s.results {
		if r.ID == id {
			return true
		}
	}
	return false
}

// sortAndTruncate re-sorts descending by score (stable, so equal scores
// keep prior relative order) and drops the lowest-scoring overflow.
func (s *Service) sortAndTruncate() {
	sort.SliceStable(s.results, func(i, j int) bool {
		return s.results[i].Score > s.results[j].Score
	})

	limit := s.cfg.BackgroundLimit
	if s.mode == ModeInteractive {
		limit = s.cfg.InteractiveLimit
	}
	if len(s.results) > limit {
		s.results = s.results[:limit]
	}
}

// ResetSeen clears the seen memory (not the ranked list) so previously
// seen items can be re-evaluated.
func (s *Service) ResetSeen() {
	s.mu.Lock()
	cleared := len(s.seen)
	s.seen = make(map[string]struct{})
	s.mu.Unlock()

	if cleared > 0 {
		s.deps.Logger.Debug("Cleared seen memory", map[string]interface{}{
			"cleared": cleared,
		})
	}
}

// Results returns a copy of the current ranked list.
func (s *Service) Results() []domain.RankedResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.RankedResult, len(s.results))
	copy(out, s.results)
	return out
}

// ProcessedTotal returns the number of candidates examined since startup.
func (s *Service) ProcessedTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processedTotal
}

// Mode returns the current collection mode.
func (s *Service) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Clear empties the ranked list and the seen memory and removes the
// persisted results.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	s.results = nil
	s.seen = make(map[string]struct{})
	s.mu.Unlock()

	if err := s.deps.Store.Delete(ctx, interfaces.KeyResults); err != nil {
		s.deps.Logger.Warn("Failed to remove persisted results", map[string]interface{}{
			"error": err.Error(),
		})
	}
	_ = s.deps.Store.Delete(ctx, interfaces.KeyResultsCollectedAt)

	s.deps.Logger.Info("Ranked results cleared", nil)
}

// persistResults writes the ranked list and its timestamp. Callers hold
// the mutex.
func (s *Service) persistResults(ctx context.Context) {
	data, err := json.Marshal(s.results)
	if err != nil {
		s.deps.Logger.Error("Failed to serialize ranked results", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if err := s.deps.Store.Set(ctx, interfaces.KeyResults, data, 0); err != nil {
		s.deps.Logger.Error("Failed to persist ranked results", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	ts, _ := json.Marshal(s.now())
	_ = s.deps.Store.Set(ctx, interfaces.KeyResultsCollectedAt, ts, 0)
}

// CollectedAt returns when results were last persisted, zero when unknown.
func (s *Service) CollectedAt(ctx context.Context) time.Time {
	data, err := s.deps.Store.Get(ctx, interfaces.KeyResultsCollectedAt)
	if err != nil || data == nil {
		return time.Time{}
	}
	var ts time.Time
	if err := json.Unmarshal(data, &ts); err != nil {
		return time.Time{}
	}
	return ts
}

// loadResults restores the persisted ranked list so background collection
// accumulates across restarts.
func (s *Service) loadResults(ctx context.Context) {
	data, err := s.deps.Store.Get(ctx, interfaces.KeyResults)
	if err != nil || data == nil {
		return
	}

	var results []domain.RankedResult
	if err := json.Unmarshal(data, &results); err != nil {
		s.deps.Logger.Warn("Failed to decode persisted results", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	s.mu.Lock()
	s.results = results
	s.mu.Unlock()

	s.deps.Logger.Info("Loaded persisted ranked results", map[string]interface{}{
		"count": len(results),
	})
}
