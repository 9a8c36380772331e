// Package metrics provides an OpenTelemetry metrics factory for wait
// instrumentation.
//
// MetricsFactory caches instruments and exposes builder-style APIs for
// counters and histograms. Convenience methods (RecordWait, RecordNotStarted)
// cover the waiter domain metrics so strategies never deal with instruments
// directly.
package metrics
