package waiter

import (
	"sync"
	"time"
)

// WakeFunc is the handle a scheduler registers with an Awaitable so the
// suspended task can be told to poll again.
type WakeFunc func()

// Awaitable is a suspended wait that resolves to an error value.
//
// The contract mirrors a single-shot future: Poll either reports done together
// with the final result, or records wake and reports not done. The handle must
// be re-registered on every poll because the awaiting task may migrate to a
// different scheduling context between polls; only the most recently
// registered handle is safe to invoke. Once an Awaitable reports done it
// reports done on every subsequent poll.
type Awaitable interface {
	Poll(wake WakeFunc) (done bool, err error)
}

// Timer is a single-shot completion signal backed by a dedicated sleeper
// goroutine. It is the suspension primitive behind AsyncWait.
//
// There is no cancellation: an abandoned Timer keeps its goroutine alive until
// the full duration elapses. Durations are expected to be short and bounded.
type Timer struct {
	mu        sync.Mutex
	completed bool
	wake      WakeFunc
}

// Timer satisfies the suspension contract.
var _ Awaitable = (*Timer)(nil)

// NewTimer arms a Timer that becomes ready once duration has elapsed. The
// wake handle registered by the most recent Poll is invoked exactly once.
func NewTimer(duration time.Duration) *Timer {
	t := &Timer{}

	go func() {
		time.Sleep(duration)

		t.mu.Lock()
		t.completed = true
		wake := t.wake
		t.wake = nil
		t.mu.Unlock()

		if wake != nil {
			wake()
		}
	}()

	return t
}

// Poll implements Awaitable. A Timer never resolves to an error.
func (t *Timer) Poll(wake WakeFunc) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.completed {
		return true, nil
	}

	// Overwrite any handle captured by a previous poll: the awaiting task may
	// have moved to another scheduling context since then, and waking the old
	// one would strand it.
	t.wake = wake

	return false, nil
}

// Resolved returns an Awaitable that is ready on the first poll with the given
// result. Strategies use it to surface precondition failures such as
// ErrNotStarted without arming a timer.
func Resolved(err error) Awaitable {
	return resolved{err: err}
}

type resolved struct {
	err error
}

func (r resolved) Poll(_ WakeFunc) (bool, error) {
	return true, r.err
}

// Await drives an Awaitable to completion from ordinary blocking code. It
// polls, parks until a wake notification arrives when the Awaitable is not
// ready, and re-polls on every wake. Duplicate wakes coalesce harmlessly into
// a single re-poll.
func Await(a Awaitable) error {
	ready := make(chan struct{}, 1)
	wake := func() {
		select {
		case ready <- struct{}{}:
		default:
		}
	}

	for {
		done, err := a.Poll(wake)
		if done {
			return err
		}

		<-ready
	}
}
