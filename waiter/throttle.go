package waiter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/LerianStudio/lib-waiter/waiter/log"
	"github.com/LerianStudio/lib-waiter/waiter/metrics"
)

const strategyThrottle = "throttle"

// Throttle is a stateless strategy that always waits the same duration.
// Every call is independent, so a single Throttle is safe to share between
// goroutines.
type Throttle struct {
	duration time.Duration
	logger   log.Logger
	metrics  *metrics.MetricsFactory
	sleep    func(time.Duration)
}

var _ Waiter = (*Throttle)(nil)

// NewThrottle creates a fixed-duration strategy.
func NewThrottle(duration time.Duration, opts ...Option) *Throttle {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Throttle{
		duration: duration,
		logger: o.logger.With(
			log.String("waiter_id", uuid.NewString()),
			log.String("strategy", strategyThrottle),
		),
		metrics: o.metrics,
		sleep:   time.Sleep,
	}
}

// Start is a no-op: a Throttle has no mutable state.
func (w *Throttle) Start() {}

// Restart is a no-op and always succeeds.
func (w *Throttle) Restart() error { return nil }

// Wait blocks for the configured duration and always succeeds.
func (w *Throttle) Wait() error {
	ctx := context.Background()

	w.logger.Log(ctx, log.LevelDebug, "throttle wait", log.Duration("duration", w.duration))
	w.metrics.RecordWait(ctx, strategyThrottle, metrics.ModeBlocking, w.duration)

	w.sleep(w.duration)

	return nil
}

// AsyncWait arms a suspension Timer for the configured duration.
func (w *Throttle) AsyncWait() Awaitable {
	ctx := context.Background()

	w.logger.Log(ctx, log.LevelDebug, "throttle timer armed", log.Duration("duration", w.duration))
	w.metrics.RecordWait(ctx, strategyThrottle, metrics.ModeSuspended, w.duration)

	return NewTimer(w.duration)
}
