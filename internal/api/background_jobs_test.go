package api

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"candidate-sync/internal/importer"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (c *countingRunner) Run(ctx context.Context) (*importer.Report, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &importer.Report{RunID: "r"}, nil
}

func TestScheduler_RunsOnInterval(t *testing.T) {
	runner := &countingRunner{}
	s := NewScheduler(runner, 10*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runner.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	n := runner.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, runner.calls.Load(), "no runs after Stop")
}

func TestScheduler_KeepsGoingAfterOverlap(t *testing.T) {
	runner := &countingRunner{err: importer.ErrRunInProgress}
	s := NewScheduler(runner, 10*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	defer s.Stop()

	assert.Eventually(t, func() bool { return runner.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_Disabled(t *testing.T) {
	runner := &countingRunner{}
	s := NewScheduler(runner, 0, zap.NewNop())

	s.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	assert.Zero(t, runner.calls.Load())
}
