// Package schedule runs interval tasks in the background.
//
//	s := schedule.New()
//	s.Every(5 * time.Minute).Name("catalog.refresh").WithoutOverlapping().Run(refresh)
//	g.Go(func() error { return s.Start(ctx) })
package schedule

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/lojas7/produtos/pkg/logger"
)

// Task is the function signature for a scheduled task.
type Task func(ctx context.Context)

type entry struct {
	id        string
	interval  time.Duration
	task      Task
	noOverlap bool
	running   bool
	lastRun   time.Time
	mu        sync.Mutex
}

// Scheduler holds registered entries and dispatches them once started.
type Scheduler struct {
	mu      sync.Mutex
	entries []*entry
	tick    time.Duration
	wg      sync.WaitGroup
}

// New returns an empty scheduler that checks for due tasks every second.
func New() *Scheduler {
	return &Scheduler{tick: time.Second}
}

// Schedule is a fluent builder for a single entry before it is registered.
type Schedule struct {
	s *Scheduler
	e *entry
}

// Every starts a builder for a task repeating at interval.
func (s *Scheduler) Every(interval time.Duration) *Schedule {
	return &Schedule{s: s, e: &entry{interval: interval}}
}

// Name gives the entry an identifier for logging.
func (b *Schedule) Name(id string) *Schedule {
	b.e.id = id
	return b
}

// WithoutOverlapping skips a run while the previous one is still executing.
func (b *Schedule) WithoutOverlapping() *Schedule {
	b.e.noOverlap = true
	return b
}

// Run registers fn. Entries with a non-positive interval are ignored.
func (b *Schedule) Run(fn Task) {
	if b.e.interval <= 0 {
		return
	}
	b.e.task = fn
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if b.e.id == "" {
		b.e.id = fmt.Sprintf("task-%d", len(b.s.entries)+1)
	}
	b.s.entries = append(b.s.entries, b.e)
}

// Len returns the number of registered entries.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Start dispatches due tasks until ctx is cancelled, then waits for running
// tasks to return. The first run of each entry happens one interval after
// Start.
func (s *Scheduler) Start(ctx context.Context) error {
	started := time.Now()
	s.mu.Lock()
	for _, e := range s.entries {
		e.lastRun = started
	}
	s.mu.Unlock()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	logger.Info("schedule: scheduler started", "entries", s.Len())
	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			logger.Info("schedule: scheduler stopped")
			return nil
		case now := <-ticker.C:
			s.mu.Lock()
			due := make([]*entry, 0, len(s.entries))
			for _, e := range s.entries {
				if now.Sub(e.lastRun) >= e.interval {
					e.lastRun = now
					due = append(due, e)
				}
			}
			s.mu.Unlock()

			for _, e := range due {
				s.dispatch(ctx, e)
			}
		}
	}
}

func (s *Scheduler) dispatch(ctx context.Context, e *entry) {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping run", "task", e.id)
		return
	}
	e.running = true
	e.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "task", e.id, "panic", r, "stack", string(debug.Stack()))
			}
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
		}()

		start := time.Now()
		e.task(ctx)
		logger.Debug("schedule: task done", "task", e.id, "duration", time.Since(start).String())
	}()
}
