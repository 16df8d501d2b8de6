package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner is the matching-pass entry point. pipeline.Pipeline implements it.
type Runner interface {
	Run(ctx context.Context, reason string) error
}

// Scheduler fires a matching pass on a fixed interval. It is one of two
// callers of the pipeline; the other is the on-demand trigger after alert
// creation.
type Scheduler struct {
	runner   Runner
	log      *zap.Logger
	interval time.Duration
}

func New(runner Runner, log *zap.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{runner: runner, log: log, interval: interval}
}

// Run starts the loop until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			if err := s.runner.Run(ctx, "hourly schedule"); err != nil {
				s.log.Error("scheduled pass failed", zap.Error(err))
			}
		}
	}
}
