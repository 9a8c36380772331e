package waiter

import "errors"

// ErrNotStarted is returned when a stateful strategy is used before Start.
var ErrNotStarted = errors.New("waiter not started")

// Waiter models the pacing delay between repeated attempts.
//
// Stateful strategies require Start before the first Wait or AsyncWait and
// support Restart to fall back to their initial delay. Stateless strategies
// treat both as successful no-ops, so callers can drive any Waiter through the
// same loop.
type Waiter interface {
	// Start (re)initializes the strategy's mutable state. It has no effect on
	// stateless strategies.
	Start()

	// Restart resets the current delay to its initial value. It returns
	// ErrNotStarted if the strategy is stateful and Start was never called.
	Restart() error

	// Wait blocks the calling goroutine for the strategy-determined duration.
	// It returns ErrNotStarted if the strategy is stateful and unstarted.
	Wait() error

	// AsyncWait is the suspending form of Wait: instead of blocking it returns
	// an Awaitable that resolves once the duration has elapsed. Internal state
	// advances exactly as it does for Wait.
	AsyncWait() Awaitable
}
