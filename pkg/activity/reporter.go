package activity

import (
	"context"
	"errors"
	"fmt"
)

// Stage identifies where in the fan-out a failure happened.
type Stage string

const (
	// StageResolve covers factory invocation.
	StageResolve Stage = "resolve"
	// StageReceive covers Subscriber.Receive.
	StageReceive Stage = "receive"
)

// ErrSubscriberTimeout is reported when a subscriber exceeds the configured
// delivery timeout.
var ErrSubscriberTimeout = errors.New("activity: subscriber timed out")

// FailureInfo describes the delivery a reported error belongs to.
type FailureInfo struct {
	Stage Stage
	// Index is the registration position of the factory.
	Index int
	Event Event
}

// DeliveryError wraps a resolve or receive failure.
type DeliveryError struct {
	Stage Stage
	Index int
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("activity: %s subscriber #%d: %v", e.Stage, e.Index, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// PanicError carries a value recovered from a factory or subscriber.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorReporter observes failures the manager recovers from.
type ErrorReporter interface {
	Report(ctx context.Context, err error, info FailureInfo)
}

// ReporterFunc adapts a function to the ErrorReporter interface.
type ReporterFunc func(ctx context.Context, err error, info FailureInfo)

// Report satisfies the ErrorReporter interface.
func (f ReporterFunc) Report(ctx context.Context, err error, info FailureInfo) {
	if f == nil {
		return
	}
	f(ctx, err, info)
}

// NopReporter drops every report.
type NopReporter struct{}

func (NopReporter) Report(context.Context, error, FailureInfo) {}

// MultiReporter forwards each report to every non-nil reporter.
type MultiReporter []ErrorReporter

// Report delivers the failure to each reporter in order.
func (m MultiReporter) Report(ctx context.Context, err error, info FailureInfo) {
	for _, r := range m {
		if r == nil {
			continue
		}
		r.Report(ctx, err, info)
	}
}

// Metrics records fan-out counters. Implementations must be safe for
// concurrent use.
type Metrics interface {
	Published()
	Delivered()
	Skipped()
}

type nopMetrics struct{}

func (nopMetrics) Published() {}
func (nopMetrics) Delivered() {}
func (nopMetrics) Skipped()   {}
