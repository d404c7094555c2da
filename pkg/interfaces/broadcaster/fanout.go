package broadcaster

import (
	"context"
	"errors"
	"strings"
)

// Func adapts a function to the Broadcaster interface.
type Func func(ctx context.Context, event Event) error

// Broadcast satisfies the Broadcaster interface.
func (f Func) Broadcast(ctx context.Context, event Event) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

// Fanout forwards events to multiple downstream transports.
type Fanout struct {
	targets []Broadcaster
}

// NewFanout assembles a broadcaster that multicasts to the provided targets.
func NewFanout(targets ...Broadcaster) *Fanout {
	filtered := make([]Broadcaster, 0, len(targets))
	for _, target := range targets {
		if target != nil {
			filtered = append(filtered, target)
		}
	}
	return &Fanout{targets: filtered}
}

var _ Broadcaster = (*Fanout)(nil)

// Broadcast delivers the event to every target and joins the failures.
func (f *Fanout) Broadcast(ctx context.Context, event Event) error {
	var errs []error
	for _, target := range f.targets {
		if err := target.Broadcast(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TopicFilter only forwards events whose topic starts with Prefix.
type TopicFilter struct {
	Prefix string
	Next   Broadcaster
}

func (t TopicFilter) Broadcast(ctx context.Context, event Event) error {
	if t.Next == nil || !strings.HasPrefix(event.Topic, t.Prefix) {
		return nil
	}
	return t.Next.Broadcast(ctx, event)
}
