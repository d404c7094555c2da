package broadcaster

import (
	"context"
	"errors"
	"testing"
)

func TestFanoutBroadcast(t *testing.T) {
	var received []Event
	fn := Func(func(ctx context.Context, evt Event) error {
		received = append(received, evt)
		return nil
	})
	f := NewFanout(fn, nil, fn)
	if err := f.Broadcast(context.Background(), Event{Topic: "activity.shared", Payload: "hello"}); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if len(received) != 2 {
		t.Fatalf("expected event fanout, got %d", len(received))
	}
}

func TestFanoutJoinsErrors(t *testing.T) {
	errFirst := errors.New("ws down")
	errSecond := errors.New("sse down")
	calls := 0
	f := NewFanout(
		Func(func(context.Context, Event) error { calls++; return errFirst }),
		Func(func(context.Context, Event) error { calls++; return nil }),
		Func(func(context.Context, Event) error { calls++; return errSecond }),
	)
	err := f.Broadcast(context.Background(), Event{})
	if !errors.Is(err, errFirst) || !errors.Is(err, errSecond) {
		t.Fatalf("expected both errors joined, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected every transport invoked, got %d", calls)
	}
}

func TestTopicFilter(t *testing.T) {
	var topics []string
	next := Func(func(_ context.Context, evt Event) error {
		topics = append(topics, evt.Topic)
		return nil
	})
	filter := TopicFilter{Prefix: "activity.", Next: next}
	_ = filter.Broadcast(context.Background(), Event{Topic: "activity.shared"})
	_ = filter.Broadcast(context.Background(), Event{Topic: "inbox.created"})
	if len(topics) != 1 || topics[0] != "activity.shared" {
		t.Fatalf("unexpected forwarded topics %v", topics)
	}
}
