package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler runs a task at a fixed interval in a background goroutine.
// Executions never overlap: periodic ticks and RunNow share one run lock.
type Scheduler struct {
	interval time.Duration
	task     func(context.Context)
	wg       sync.WaitGroup
	mu       sync.Mutex
	runMu    sync.Mutex
	running  bool
	cancel   context.CancelFunc
	runs     atomic.Int64
}

// New creates a new Scheduler instance
func New(interval time.Duration, task func(context.Context)) *Scheduler {
	return &Scheduler{
		interval: interval,
		task:     task,
	}
}

// Start begins executing the task at the specified interval
func (s *Scheduler) Start(ctx context.Context, firstRunImmediately bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if firstRunImmediately {
			s.run(ctx)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.run(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// RunNow executes the task synchronously, waiting for an in-flight periodic run to finish first
func (s *Scheduler) RunNow(ctx context.Context) {
	s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	s.task(ctx)
	s.runs.Add(1)
}

// Stop cancels the background loop and waits for the current run to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.running = false
}

// IsRunning returns true if the background loop is active
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Runs returns the number of completed task executions
func (s *Scheduler) Runs() int64 {
	return s.runs.Load()
}

// Interval returns the period between runs
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}
