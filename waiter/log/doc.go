// Package log defines the logging interface and typed logging fields used
// across lib-waiter.
//
// Adapters (such as the zap package) implement Logger so applications can plug
// their own logging backend into the library.
package log
