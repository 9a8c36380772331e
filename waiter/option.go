package waiter

import (
	"github.com/LerianStudio/lib-waiter/waiter/log"
	"github.com/LerianStudio/lib-waiter/waiter/metrics"
)

// Option customizes a strategy's ambient collaborators.
type Option func(*options)

type options struct {
	logger  log.Logger
	metrics *metrics.MetricsFactory
}

func defaultOptions() options {
	return options{
		logger:  log.NewNop(),
		metrics: metrics.NewNopFactory(),
	}
}

// WithLogger attaches a structured logger. Strategies log every wait at debug
// level with the strategy name and a per-instance waiter_id.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics attaches a metrics factory recording wait durations and
// NotStarted failures.
func WithMetrics(factory *metrics.MetricsFactory) Option {
	return func(o *options) {
		if factory != nil {
			o.metrics = factory
		}
	}
}
