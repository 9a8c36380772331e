package waiter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/LerianStudio/lib-waiter/waiter/log"
	"github.com/LerianStudio/lib-waiter/waiter/metrics"
)

const strategyExponentialBackoff = "exponential_backoff"

// ExponentialBackoff is a stateful strategy whose delay starts at an initial
// duration and is multiplied on every wait, clamped to a cap. The delay cell
// is nil until Start; Wait, AsyncWait, and Restart return ErrNotStarted before
// then.
//
// The strategy is built for single-owner sequential retry loops. It performs
// no internal synchronization and must not be shared between goroutines.
//
// The multiplier is expected to be greater than 1. Smaller values, and zero
// initial or cap durations, are not guarded against: the delay stops growing,
// stays zero, or shrinks, exactly as the arithmetic dictates. Picking sensible
// parameters is the caller's responsibility.
type ExponentialBackoff struct {
	initial    time.Duration
	multiplier float64
	cap        time.Duration

	// next is nil until Start and afterwards holds the delay the upcoming
	// wait will use.
	next *time.Duration

	logger  log.Logger
	metrics *metrics.MetricsFactory
	sleep   func(time.Duration)
}

var _ Waiter = (*ExponentialBackoff)(nil)

// NewExponentialBackoff creates a backoff strategy growing from initial by
// multiplier on each wait, up to cap.
func NewExponentialBackoff(initial time.Duration, multiplier float64, cap time.Duration, opts ...Option) *ExponentialBackoff {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &ExponentialBackoff{
		initial:    initial,
		multiplier: multiplier,
		cap:        cap,
		logger: o.logger.With(
			log.String("waiter_id", uuid.NewString()),
			log.String("strategy", strategyExponentialBackoff),
		),
		metrics: o.metrics,
		sleep:   time.Sleep,
	}
}

// Start sets the current delay to the initial duration. Calling Start again
// re-initializes the sequence.
func (w *ExponentialBackoff) Start() {
	next := w.initial
	w.next = &next
}

// Restart resets the current delay to the initial duration. It returns
// ErrNotStarted if Start was never called.
func (w *ExponentialBackoff) Restart() error {
	if w.next == nil {
		w.metrics.RecordNotStarted(context.Background(), strategyExponentialBackoff, "restart")

		return ErrNotStarted
	}

	*w.next = w.initial

	return nil
}

// advance returns the delay for the upcoming wait and commits its successor.
// The successor is the current delay's nanosecond count multiplied as a float,
// truncated back to integer nanoseconds, then clamped to the cap. Committing
// before sleeping means growth sticks even when a wait is abandoned mid-sleep.
func (w *ExponentialBackoff) advance() (time.Duration, error) {
	if w.next == nil {
		return 0, ErrNotStarted
	}

	current := *w.next

	next := time.Duration(float64(current.Nanoseconds()) * w.multiplier)
	if next > w.cap {
		next = w.cap
	}

	*w.next = next

	return current, nil
}

// Wait blocks for the current delay and commits the grown successor delay.
func (w *ExponentialBackoff) Wait() error {
	ctx := context.Background()

	current, err := w.advance()
	if err != nil {
		w.metrics.RecordNotStarted(ctx, strategyExponentialBackoff, "wait")

		return err
	}

	w.logger.Log(ctx, log.LevelDebug, "backoff wait",
		log.Duration("duration", current),
		log.Duration("next", *w.next),
	)
	w.metrics.RecordWait(ctx, strategyExponentialBackoff, metrics.ModeBlocking, current)

	w.sleep(current)

	return nil
}

// AsyncWait advances the delay exactly like Wait, then arms a suspension
// Timer for the pre-update delay. Before Start it returns an already-resolved
// Awaitable carrying ErrNotStarted instead of suspending.
func (w *ExponentialBackoff) AsyncWait() Awaitable {
	ctx := context.Background()

	current, err := w.advance()
	if err != nil {
		w.metrics.RecordNotStarted(ctx, strategyExponentialBackoff, "async_wait")

		return Resolved(err)
	}

	w.logger.Log(ctx, log.LevelDebug, "backoff timer armed",
		log.Duration("duration", current),
		log.Duration("next", *w.next),
	)
	w.metrics.RecordWait(ctx, strategyExponentialBackoff, metrics.ModeSuspended, current)

	return NewTimer(current)
}
