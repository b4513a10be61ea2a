// Package scheduler runs named tasks on fixed intervals until stopped.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrNotRunning      = errors.New("scheduler not running")
	ErrInvalidInterval = errors.New("interval must be positive")
)

type Task struct {
	Name     string
	Interval time.Duration
	Fn       func(context.Context) error
}

// Scheduler starts every task once immediately and then on each tick. A
// run that outlasts its interval delays the next tick; runs of the same
// task never overlap.
type Scheduler struct {
	log *slog.Logger

	mu      sync.Mutex
	tasks   []Task
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func New(log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}

	return &Scheduler{log: log}
}

// Add registers a task. Tasks added after Start run from the next Start.
func (s *Scheduler) Add(name string, interval time.Duration, fn func(context.Context) error) error {
	if interval <= 0 {
		return fmt.Errorf("task %q: %s: %w", name, interval, ErrInvalidInterval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, Task{Name: name, Interval: interval, Fn: fn})

	return nil
}

func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	for _, task := range s.tasks {
		s.wg.Add(1)

		go s.run(ctx, task)
	}

	s.log.Info("scheduler started", slog.Int("tasks", len(s.tasks)))
}

// Stop cancels all tasks and waits for in-flight runs to return or ctx to
// expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()

	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}

	s.cancel()
	s.running = false
	s.mu.Unlock()

	done := make(chan struct{})

	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(ctx context.Context, task Task) {
	defer s.wg.Done()

	log := s.log.With(slog.String("task", task.Name))

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	s.exec(ctx, log, task)

	for {
		select {
		case <-ticker.C:
			s.exec(ctx, log, task)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) exec(ctx context.Context, log *slog.Logger, task Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("task panicked", slog.Any("panic", r))
		}
	}()

	start := time.Now()

	err := task.Fn(ctx)
	if err != nil {
		log.Error("task failed", slog.Any("err", err), slog.Duration("took", time.Since(start)))
		return
	}

	log.Debug("task done", slog.Duration("took", time.Since(start)))
}
