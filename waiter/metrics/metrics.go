package metrics

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/LerianStudio/lib-waiter/waiter/log"
)

// MetricsFactory is a thread-safe factory for creating and managing
// OpenTelemetry metrics with lazy initialization using sync.Map for
// concurrent access.
type MetricsFactory struct {
	meter      metric.Meter
	counters   sync.Map // string -> metric.Int64Counter
	histograms sync.Map // string -> metric.Float64Histogram
	logger     log.Logger
}

// ErrNilMeter indicates that a nil OTEL meter was provided.
var ErrNilMeter = errors.New("metric meter cannot be nil")

// Metric describes an instrument the factory can create.
type Metric struct {
	Name        string
	Description string
	Unit        string
	// For histograms: bucket boundaries
	Buckets []float64
}

// Attribute keys used by the waiter domain metrics.
const (
	AttrStrategy  = "strategy"
	AttrMode      = "mode"
	AttrOperation = "operation"
)

// Values for the mode attribute.
const (
	ModeBlocking  = "blocking"
	ModeSuspended = "suspended"
)

// DefaultWaitBuckets covers the usual retry-delay range (in seconds).
var DefaultWaitBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// Pre-configured metrics for the waiter domain.
var (
	// MetricWaitDuration measures the duration of individual waits.
	MetricWaitDuration = Metric{
		Name:        "waiter_wait_duration_seconds",
		Unit:        "s",
		Description: "Duration of individual waits, by strategy and mode.",
		Buckets:     DefaultWaitBuckets,
	}

	// MetricWaits counts waits performed.
	MetricWaits = Metric{
		Name:        "waiter_waits",
		Unit:        "1",
		Description: "Number of waits performed, by strategy and mode.",
	}

	// MetricNotStartedErrors counts operations rejected on unstarted strategies.
	MetricNotStartedErrors = Metric{
		Name:        "waiter_not_started_errors",
		Unit:        "1",
		Description: "Number of operations rejected because the strategy was never started.",
	}
)

// NewMetricsFactory creates a new MetricsFactory instance.
func NewMetricsFactory(meter metric.Meter, logger log.Logger) (*MetricsFactory, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}

	if logger == nil {
		logger = log.NewNop()
	}

	return &MetricsFactory{
		meter:  meter,
		logger: logger,
	}, nil
}

// NewNopFactory returns a MetricsFactory backed by OpenTelemetry's no-op
// meter. It is safe for use as a fallback when a real meter is unavailable.
func NewNopFactory() *MetricsFactory {
	return &MetricsFactory{
		meter:  noop.NewMeterProvider().Meter("nop"),
		logger: log.NewNop(),
	}
}

// Counter creates or retrieves a counter metric and returns a builder for it.
func (f *MetricsFactory) Counter(m Metric) (*CounterBuilder, error) {
	counter, err := f.getOrCreateCounter(m)
	if err != nil {
		return nil, err
	}

	return &CounterBuilder{counter: counter, name: m.Name}, nil
}

// Histogram creates or retrieves a histogram metric and returns a builder for it.
func (f *MetricsFactory) Histogram(m Metric) (*HistogramBuilder, error) {
	if m.Buckets == nil {
		m.Buckets = DefaultWaitBuckets
	}

	histogram, err := f.getOrCreateHistogram(m)
	if err != nil {
		return nil, err
	}

	return &HistogramBuilder{histogram: histogram, name: m.Name}, nil
}

// RecordWait records one wait of the given duration for a strategy and mode.
// Instrument failures are logged, never propagated: pacing must not fail
// because telemetry did.
func (f *MetricsFactory) RecordWait(ctx context.Context, strategy, mode string, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrStrategy, strategy),
		attribute.String(AttrMode, mode),
	}

	counter, err := f.Counter(MetricWaits)
	if err == nil {
		err = counter.WithAttributes(attrs...).AddOne(ctx)
	}

	if err != nil {
		f.logger.Log(ctx, log.LevelWarn, "recording wait counter failed", log.Err(err))
	}

	histogram, err := f.Histogram(MetricWaitDuration)
	if err == nil {
		err = histogram.WithAttributes(attrs...).Record(ctx, duration.Seconds())
	}

	if err != nil {
		f.logger.Log(ctx, log.LevelWarn, "recording wait duration failed", log.Err(err))
	}
}

// RecordNotStarted records an operation rejected on an unstarted strategy.
func (f *MetricsFactory) RecordNotStarted(ctx context.Context, strategy, operation string) {
	counter, err := f.Counter(MetricNotStartedErrors)
	if err == nil {
		err = counter.WithAttributes(
			attribute.String(AttrStrategy, strategy),
			attribute.String(AttrOperation, operation),
		).AddOne(ctx)
	}

	if err != nil {
		f.logger.Log(ctx, log.LevelWarn, "recording not-started counter failed", log.Err(err))
	}
}

func (f *MetricsFactory) getOrCreateCounter(m Metric) (metric.Int64Counter, error) {
	if cached, ok := f.counters.Load(m.Name); ok {
		return cached.(metric.Int64Counter), nil
	}

	counter, err := f.meter.Int64Counter(
		m.Name,
		metric.WithDescription(m.Description),
		metric.WithUnit(m.Unit),
	)
	if err != nil {
		return nil, err
	}

	actual, _ := f.counters.LoadOrStore(m.Name, counter)

	return actual.(metric.Int64Counter), nil
}

func (f *MetricsFactory) getOrCreateHistogram(m Metric) (metric.Float64Histogram, error) {
	if cached, ok := f.histograms.Load(m.Name); ok {
		return cached.(metric.Float64Histogram), nil
	}

	histogram, err := f.meter.Float64Histogram(
		m.Name,
		metric.WithDescription(m.Description),
		metric.WithUnit(m.Unit),
		metric.WithExplicitBucketBoundaries(m.Buckets...),
	)
	if err != nil {
		return nil, err
	}

	actual, _ := f.histograms.LoadOrStore(m.Name, histogram)

	return actual.(metric.Float64Histogram), nil
}
