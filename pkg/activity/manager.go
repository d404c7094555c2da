package activity

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/goliatone/go-activity/pkg/interfaces/logger"
)

// Manager keeps the ordered list of subscriber factories and fans published
// events out to the subscribers they build. Failures in one subscriber are
// reported and never stop delivery to the rest, nor reach the publisher.
type Manager struct {
	mu        sync.RWMutex
	factories []Factory

	reporter ErrorReporter
	metrics  Metrics
	logger   logger.Logger
	timeout  time.Duration
}

// Option customises a Manager.
type Option func(*Manager)

// WithReporter routes recovered failures to the given reporter.
func WithReporter(r ErrorReporter) Option {
	return func(m *Manager) {
		if r != nil {
			m.reporter = r
		}
	}
}

// WithMetrics records publish counters.
func WithMetrics(metrics Metrics) Option {
	return func(m *Manager) {
		if metrics != nil {
			m.metrics = metrics
		}
	}
}

// WithLogger enables debug logging of each publish.
func WithLogger(lgr logger.Logger) Option {
	return func(m *Manager) {
		if lgr != nil {
			m.logger = lgr
		}
	}
}

// WithSubscriberTimeout bounds each Receive call. A subscriber still running
// after d is reported with ErrSubscriberTimeout and abandoned; its eventual
// result is discarded. Zero disables the guard.
func WithSubscriberTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// New returns an empty manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		reporter: NopReporter{},
		metrics:  nopMetrics{},
		logger:   &logger.Nop{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Register appends a factory. It is safe to call while Publish runs; the new
// factory may or may not take part in deliveries already in progress.
func (m *Manager) Register(factory Factory) {
	m.mu.Lock()
	m.factories = append(m.factories, factory)
	m.mu.Unlock()
}

// Len returns how many factories are registered.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.factories)
}

// Publish resolves every registered factory in registration order and hands
// each subscriber it yields its own copy of the event. It returns once every
// subscriber has finished, failed, or timed out.
func (m *Manager) Publish(ctx context.Context, evt Event) {
	if ctx == nil {
		ctx = context.Background()
	}
	factories := m.snapshot()
	m.metrics.Published()

	delivered := 0
	for idx, factory := range factories {
		sub, err := resolve(factory)
		if err != nil {
			m.report(ctx, StageResolve, idx, evt, err)
			continue
		}
		if isNil(sub) {
			m.metrics.Skipped()
			continue
		}
		if err := m.deliver(ctx, sub, evt.Clone()); err != nil {
			m.report(ctx, StageReceive, idx, evt, err)
			continue
		}
		delivered++
		m.metrics.Delivered()
	}

	m.logger.Debug("activity published",
		logger.Field{Key: "app", Value: evt.App},
		logger.Field{Key: "type", Value: evt.Type},
		logger.Field{Key: "factories", Value: len(factories)},
		logger.Field{Key: "delivered", Value: delivered},
	)
}

func (m *Manager) snapshot() []Factory {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.factories) == 0 {
		return nil
	}
	out := make([]Factory, len(m.factories))
	copy(out, m.factories)
	return out
}

func (m *Manager) deliver(ctx context.Context, sub Subscriber, evt Event) error {
	if m.timeout <= 0 {
		return receive(ctx, sub, evt)
	}

	dctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- receive(dctx, sub, evt)
	}()

	select {
	case err := <-done:
		return err
	case <-dctx.Done():
		select {
		case err := <-done:
			return err
		default:
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrSubscriberTimeout
	}
}

func (m *Manager) report(ctx context.Context, stage Stage, idx int, evt Event, err error) {
	defer func() {
		// reporter panics are dropped
		_ = recover()
	}()
	m.reporter.Report(ctx, &DeliveryError{Stage: stage, Index: idx, Err: err}, FailureInfo{
		Stage: stage,
		Index: idx,
		Event: evt,
	})
}

func resolve(factory Factory) (sub Subscriber, err error) {
	if factory == nil {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			sub = nil
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return factory()
}

func receive(ctx context.Context, sub Subscriber, evt Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return sub.Receive(ctx, evt)
}
