// ABOUTME: Scheduler owns all interval-driven tasks so teardown is total and leak-free
// ABOUTME: Thin wrapper over robfig/cron with named tasks and explicit cancellation handles

package scheduler

import (
	"sync"
	"time"

	"github.com/SadRunStuff/youtube-watcher/core/interfaces"
	"github.com/robfig/cron/v3"
)

// TaskID identifies a scheduled task for later removal.
type TaskID = cron.EntryID

// Scheduler runs named tasks on fixed intervals. All tasks share one cron
// runner; stopping the scheduler stops every task.
type Scheduler struct {
	logger interfaces.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// New creates a scheduler. Tasks only fire after Start.
func New(logger interfaces.Logger) *Scheduler {
	return &Scheduler{
		logger: logger,
		cron:   cron.New(),
	}
}

// intervalSchedule is a constant-delay schedule without cron.Every's
// one-second floor, so short intervals fire at their stated rate.
type intervalSchedule struct {
	interval time.Duration
}

func (s intervalSchedule) Next(t time.Time) time.Time {
	return t.Add(s.interval)
}

// Every schedules fn to run on the given interval and returns a handle
// that can be passed to Remove. Non-positive intervals fall back to one
// second.
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) TaskID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if interval <= 0 {
		interval = time.Second
	}

	id := s.cron.Schedule(intervalSchedule{interval: interval}, cron.FuncJob(fn))
	if s.logger != nil {
		s.logger.Debug("Scheduled interval task", map[string]interface{}{
			"task":     name,
			"interval": interval.String(),
		})
	}
	return id
}

// Remove cancels a single task.
func (s *Scheduler) Remove(id TaskID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cron.Remove(id)
}

// Start begins firing scheduled tasks. Safe to call more than once.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
}

// Stop halts all tasks and waits for any in-flight run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
}
