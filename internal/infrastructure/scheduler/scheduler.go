// Package scheduler drives the periodic order sweep. It owns a single
// goroutine with a ticker, so sweeps run strictly one at a time and never
// overlap; the engine itself holds no coordination state.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/miniorder/order-system/internal/api/metrics"
)

const defaultInterval = 2 * time.Minute

// Sweeper is the lifecycle engine operation the scheduler triggers.
type Sweeper interface {
	AdvancePendingOrders(ctx context.Context) (int64, error)
}

// Scheduler invokes the sweep on a fixed interval until its context is
// cancelled. A failed sweep is logged and retried on the next tick.
type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	log      zerolog.Logger
}

// New creates a Scheduler. If interval <= 0, defaultInterval is used.
func New(sweeper Sweeper, interval time.Duration, log zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{sweeper: sweeper, interval: interval, log: log}
}

// Start launches the sweep loop goroutine. It returns immediately; the loop
// stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("order sweep scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("order sweep scheduler stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	start := time.Now()
	advanced, err := s.sweeper.AdvancePendingOrders(ctx)
	metrics.SweepDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SweepErrorsTotal.Inc()
		s.log.Error().Err(err).Msg("order sweep failed")
		return
	}

	metrics.SweepAdvancedTotal.Add(float64(advanced))
	if advanced > 0 {
		s.log.Info().Int64("advanced", advanced).Msg("order sweep finished")
	}
}
