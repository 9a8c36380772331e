package waiter

import "time"

// BackoffConfig bundles the ExponentialBackoff parameters so presets can be
// passed around and tweaked before building a strategy.
type BackoffConfig struct {
	Initial    time.Duration
	Multiplier float64
	Cap        time.Duration
}

// Build constructs an ExponentialBackoff from the config.
func (c BackoffConfig) Build(opts ...Option) *ExponentialBackoff {
	return NewExponentialBackoff(c.Initial, c.Multiplier, c.Cap, opts...)
}

// DefaultBackoffConfig provides balanced settings for most retry loops
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		Initial:    100 * time.Millisecond,
		Multiplier: 2.0,
		Cap:        10 * time.Second,
	}
}

// AggressiveBackoffConfig for calls that should retry quickly with shallow growth
func AggressiveBackoffConfig() BackoffConfig {
	return BackoffConfig{
		Initial:    50 * time.Millisecond,
		Multiplier: 1.5,
		Cap:        2 * time.Second,
	}
}

// ConservativeBackoffConfig for downstreams that need room to recover
func ConservativeBackoffConfig() BackoffConfig {
	return BackoffConfig{
		Initial:    250 * time.Millisecond,
		Multiplier: 2.0,
		Cap:        60 * time.Second,
	}
}
