package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"epic_notifier/pkg/logx"
)

var ErrAlreadyRunning = errors.New("scheduler is already running")

// Job is one scheduled unit of work. Errors are reported by the job itself.
type Job func(ctx context.Context)

// Scheduler runs a job at a fixed interval until stopped.
type Scheduler struct {
	job            Job
	interval       time.Duration
	runImmediately bool

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewScheduler(job Job, interval time.Duration) *Scheduler {
	return &Scheduler{
		job:            job,
		interval:       interval,
		runImmediately: true,
	}
}

// WithImmediateRun controls whether the first run happens on start or after
// one interval.
func (s *Scheduler) WithImmediateRun(v bool) *Scheduler {
	s.runImmediately = v

	return s
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.isRunning = true

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.cancelFunc = nil
			s.mu.Unlock()
		}()

		s.loop(runCtx)
	}()

	return nil
}

func (s *Scheduler) Stop() {
	s.mu.Lock()

	if !s.isRunning {
		s.mu.Unlock()

		return
	}

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.isRunning
}

// Run blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	s.Stop()

	return nil
}

func (s *Scheduler) loop(ctx context.Context) {
	logger(ctx).Info("scheduler started", slog.Duration("interval", s.interval))
	defer logger(ctx).Info("scheduler stopped")

	if s.runImmediately {
		s.tick(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			logger(ctx).Error("scheduled job panicked", slog.Any(logx.FieldError, rec))
		}
	}()

	s.job(ctx)
}
