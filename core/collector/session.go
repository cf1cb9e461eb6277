// ABOUTME: Background sampling toggle and the interactive scan session loop
// ABOUTME: Interactive sessions end on feed stagnation or explicit cancellation

package collector

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SadRunStuff/youtube-watcher/core/interfaces"
	"github.com/SadRunStuff/youtube-watcher/core/scheduler"
)

// SetBackgroundEnabled toggles continuous background sampling and persists
// the preference.
func (s *Service) SetBackgroundEnabled(ctx context.Context, enabled bool) {
	s.mu.Lock()
	already := s.backgroundEnabled
	s.backgroundEnabled = enabled
	s.mu.Unlock()

	data, _ := json.Marshal(enabled)
	if err := s.deps.Store.Set(ctx, interfaces.KeyBackgroundEnabled, data, 0); err != nil {
		s.deps.Logger.Warn("Failed to persist background preference", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if enabled == already {
		return
	}

	if enabled {
		s.loadResults(ctx)
		s.startBackgroundTasks()
		s.deps.Logger.Info("Background ranking enabled", nil)
	} else {
		s.stopBackgroundTasks()
		s.deps.Logger.Info("Background ranking disabled", nil)
	}
}

// BackgroundEnabled reports whether background sampling is on.
func (s *Service) BackgroundEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backgroundEnabled
}

// loadBackgroundPreference restores the persisted toggle, defaulting to
// enabled when no preference was ever saved.
func (s *Service) loadBackgroundPreference(ctx context.Context) {
	enabled := true
	if data, err := s.deps.Store.Get(ctx, interfaces.KeyBackgroundEnabled); err == nil && data != nil {
		if err := json.Unmarshal(data, &enabled); err != nil {
			enabled = true
		}
	}

	s.mu.Lock()
	s.backgroundEnabled = enabled
	s.mu.Unlock()
}

// startBackgroundTasks registers the sampling and seen-reset interval
// tasks with the scheduler. Callers must not hold the mutex.
func (s *Service) startBackgroundTasks() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.backgroundTasks) > 0 {
		return
	}

	sample := s.sched.Every("background-sample", s.cfg.SampleInterval, s.sampleFeed)
	reset := s.sched.Every("seen-reset", s.cfg.SeenResetInterval, s.ResetSeen)
	s.backgroundTasks = []scheduler.TaskID{sample, reset}
}

// stopBackgroundTasks removes both interval tasks.
func (s *Service) stopBackgroundTasks() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.backgroundTasks {
		s.sched.Remove(id)
	}
	s.backgroundTasks = nil
}

// sampleFeed pulls one feed snapshot and observes it. Skipped while an
// interactive session holds the collector or no model is loaded.
func (s *Service) sampleFeed() {
	s.mu.Lock()
	busy := s.mode == ModeInteractive
	untrained := s.model.IsEmpty()
	s.mu.Unlock()

	if busy || untrained {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SampleInterval)
	defer cancel()

	items, err := s.feed.Discover(ctx)
	if err != nil {
		s.deps.Logger.Warn("Feed discovery failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	s.Observe(ctx, items)
}

// RunInteractive executes a bounded scan-and-collect session: it polls the
// feed, observes each snapshot, and terminates when the feed stops growing
// for MaxIdlePolls consecutive polls or the context is cancelled. Final
// results are persisted on exit. Only one session may run at a time.
func (s *Service) RunInteractive(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.sessionCancel != nil {
		s.mu.Unlock()
		cancel()
		return ErrSessionActive
	}
	s.sessionCancel = cancel
	s.mode = ModeInteractive
	s.mu.Unlock()

	s.deps.Logger.Info("Interactive collection session started", nil)

	defer func() {
		s.mu.Lock()
		s.mode = ModeBackground
		s.sessionCancel = nil
		s.persistResults(context.Background())
		collected := len(s.results)
		s.mu.Unlock()
		cancel()

		s.deps.Logger.Info("Interactive collection session ended", map[string]interface{}{
			"collected": collected,
			"processed": s.ProcessedTotal(),
		})
	}()

	lastSize := 0
	idlePolls := 0

	for {
		items, err := s.feed.Discover(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.deps.Logger.Warn("Feed discovery failed during session", map[string]interface{}{
				"error": err.Error(),
			})
			items = nil
		}

		s.Observe(ctx, items)

		if len(items) > lastSize {
			lastSize = len(items)
			idlePolls = 0
		} else {
			idlePolls++
			if idlePolls >= s.cfg.MaxIdlePolls {
				s.deps.Logger.Info("Feed stopped growing, ending session", map[string]interface{}{
					"polls": idlePolls,
				})
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.cfg.PollDelay):
		}
	}
}

// CancelSession synchronously stops a running interactive session; no-op
// when none is active.
func (s *Service) CancelSession() {
	s.mu.Lock()
	cancel := s.sessionCancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// SessionActive reports whether an interactive session is running.
func (s *Service) SessionActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionCancel != nil
}
