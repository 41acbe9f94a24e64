package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"candidate-sync/internal/importer"

	"go.uber.org/zap"
)

// Scheduler triggers an import run on a fixed interval.
type Scheduler struct {
	runner   ImportRunner
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler returns a scheduler; an interval <= 0 disables it.
func NewScheduler(runner ImportRunner, interval time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{runner: runner, interval: interval, logger: logger}
}

// Start launches the background worker. Calling it twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Scheduled import disabled")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
	s.logger.Info("Scheduled import started", zap.Duration("interval", s.interval))
}

// Stop cancels the worker and waits for a running import to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	report, err := s.runner.Run(ctx)
	switch {
	case errors.Is(err, importer.ErrRunInProgress):
		s.logger.Info("Skipping scheduled import, a run is in progress")
	case err != nil:
		s.logger.Error("Scheduled import failed", zap.Error(err))
	default:
		s.logger.Info("Scheduled import done",
			zap.String("run_id", report.RunID),
			zap.Int("created", report.Created),
			zap.Int("updated", report.Updated),
			zap.Int("errors", report.Errors))
	}
}
