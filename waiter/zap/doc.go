// Package zap provides a zap-backed implementation of the log.Logger
// interface, with automatic trace correlation when the context carries an
// active OpenTelemetry span.
package zap
