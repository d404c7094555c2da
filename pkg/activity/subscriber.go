package activity

import (
	"context"
	"reflect"
)

// Subscriber receives published activity events.
type Subscriber interface {
	Receive(ctx context.Context, evt Event) error
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(ctx context.Context, evt Event) error

// Receive satisfies the Subscriber interface.
func (f SubscriberFunc) Receive(ctx context.Context, evt Event) error {
	if f == nil {
		return nil
	}
	return f(ctx, evt)
}

// Factory lazily builds a subscriber at publish time. Returning a nil
// subscriber opts out of the current delivery.
type Factory func() (Subscriber, error)

// Static returns a factory that always yields the provided subscriber.
func Static(sub Subscriber) Factory {
	return func() (Subscriber, error) {
		return sub, nil
	}
}

// Nop is a subscriber that discards events.
type Nop struct{}

var _ Subscriber = Nop{}

func (Nop) Receive(_ context.Context, _ Event) error { return nil }

// isNil catches typed-nil pointers wrapped in a non-nil interface.
func isNil(sub Subscriber) bool {
	if sub == nil {
		return true
	}
	v := reflect.ValueOf(sub)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
