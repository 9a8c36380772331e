//go:build unit

package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/LerianStudio/lib-waiter/waiter/log"
)

// newTestFactory creates a MetricsFactory wired to an in-memory ManualReader
// so we can collect and inspect metric data without any exporter.
func newTestFactory(t *testing.T) (*MetricsFactory, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	factory, err := NewMetricsFactory(provider.Meter("test-lib"), log.NewNop())
	require.NoError(t, err)

	return factory, reader
}

// collectMetrics drains the ManualReader into a ResourceMetrics snapshot.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)

	return rm
}

// findMetric searches a ResourceMetrics snapshot for a metric by name.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}

	return nil
}

func TestNewMetricsFactoryRejectsNilMeter(t *testing.T) {
	t.Parallel()

	factory, err := NewMetricsFactory(nil, log.NewNop())

	require.ErrorIs(t, err, ErrNilMeter)
	assert.Nil(t, factory)
}

func TestRecordWaitEmitsCounterAndHistogram(t *testing.T) {
	t.Parallel()

	factory, reader := newTestFactory(t)

	factory.RecordWait(context.Background(), "throttle", ModeBlocking, 250*time.Millisecond)

	rm := collectMetrics(t, reader)

	counted := findMetric(rm, MetricWaits.Name)
	require.NotNil(t, counted)

	sum, ok := counted.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)

	strategy, ok := sum.DataPoints[0].Attributes.Value(attribute.Key(AttrStrategy))
	require.True(t, ok)
	assert.Equal(t, "throttle", strategy.AsString())

	mode, ok := sum.DataPoints[0].Attributes.Value(attribute.Key(AttrMode))
	require.True(t, ok)
	assert.Equal(t, ModeBlocking, mode.AsString())

	recorded := findMetric(rm, MetricWaitDuration.Name)
	require.NotNil(t, recorded)

	histogram, ok := recorded.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.25, histogram.DataPoints[0].Sum, 1e-9)
}

func TestRecordWaitReusesCachedInstruments(t *testing.T) {
	t.Parallel()

	factory, reader := newTestFactory(t)
	ctx := context.Background()

	factory.RecordWait(ctx, "exponential_backoff", ModeSuspended, 100*time.Millisecond)
	factory.RecordWait(ctx, "exponential_backoff", ModeSuspended, 200*time.Millisecond)

	rm := collectMetrics(t, reader)

	counted := findMetric(rm, MetricWaits.Name)
	require.NotNil(t, counted)

	sum, ok := counted.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)
}

func TestRecordNotStartedEmitsCounter(t *testing.T) {
	t.Parallel()

	factory, reader := newTestFactory(t)

	factory.RecordNotStarted(context.Background(), "exponential_backoff", "restart")

	rm := collectMetrics(t, reader)

	counted := findMetric(rm, MetricNotStartedErrors.Name)
	require.NotNil(t, counted)

	sum, ok := counted.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)

	operation, ok := sum.DataPoints[0].Attributes.Value(attribute.Key(AttrOperation))
	require.True(t, ok)
	assert.Equal(t, "restart", operation.AsString())
}

func TestNopFactoryRecordsWithoutPanicking(t *testing.T) {
	t.Parallel()

	factory := NewNopFactory()

	assert.NotPanics(t, func() {
		factory.RecordWait(context.Background(), "throttle", ModeBlocking, time.Second)
		factory.RecordNotStarted(context.Background(), "exponential_backoff", "wait")
	})
}

func TestBuildersRejectNilInstruments(t *testing.T) {
	t.Parallel()

	counter := &CounterBuilder{}
	require.ErrorIs(t, counter.AddOne(context.Background()), ErrNilCounter)

	histogram := &HistogramBuilder{}
	require.ErrorIs(t, histogram.Record(context.Background(), 1), ErrNilHistogram)
}
