package realtime

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-activity/pkg/interfaces/broadcaster"
)

func TestSubscriberBroadcastsToAffectedUser(t *testing.T) {
	var got []broadcaster.Event
	b := broadcaster.Func(func(_ context.Context, evt broadcaster.Event) error {
		got = append(got, evt)
		return nil
	})

	m := activity.New()
	m.Register(Factory(b, "feed"))
	m.Publish(context.Background(), activity.Event{App: "files", Type: "shared", AffectedUser: "alice"})

	if len(got) != 1 {
		t.Fatalf("expected one frame, got %d", len(got))
	}
	if got[0].Topic != "feed.shared" || got[0].Audience != "alice" {
		t.Fatalf("unexpected frame %+v", got[0])
	}
	payload, ok := got[0].Payload.(activity.Event)
	if !ok || payload.App != "files" {
		t.Fatalf("unexpected payload %#v", got[0].Payload)
	}
}

func TestFactoryWithoutBroadcasterOptsOut(t *testing.T) {
	sub, err := Factory(nil, "")()
	if err != nil || sub != nil {
		t.Fatalf("expected nil subscriber, got %v %v", sub, err)
	}
}

func TestSubscriberPropagatesTransportError(t *testing.T) {
	errDown := errors.New("down")
	sub := &Subscriber{Broadcaster: broadcaster.Func(func(context.Context, broadcaster.Event) error { return errDown })}
	if err := sub.Receive(context.Background(), activity.Event{Type: "x"}); !errors.Is(err, errDown) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestTopic(t *testing.T) {
	cases := []struct{ prefix, typ, want string }{
		{"", "shared", "activity.shared"},
		{"feed.", "comment", "feed.comment"},
		{"feed", "", "feed"},
	}
	for _, tc := range cases {
		if got := Topic(tc.prefix, tc.typ); got != tc.want {
			t.Fatalf("Topic(%q,%q) = %q want %q", tc.prefix, tc.typ, got, tc.want)
		}
	}
}
