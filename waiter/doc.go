// Package waiter provides pluggable wait strategies used to pace repeated
// operations such as retry loops and rate-limited calls.
//
// A Waiter models the delay between attempts. Two strategies are provided:
// Throttle, which always waits a fixed duration, and ExponentialBackoff, whose
// delay grows multiplicatively up to a cap and can be reset. Each strategy
// offers a blocking form (Wait) and a suspending form (AsyncWait); both are
// built on the same Timer primitive, so callers can choose between tying up
// the calling goroutine and cooperatively polling an Awaitable.
//
// Retry orchestration (attempt counts, deadlines, deciding which errors are
// worth retrying) is deliberately left to the caller.
package waiter
