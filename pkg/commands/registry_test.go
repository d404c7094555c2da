package commands

import (
	"context"
	"testing"

	"github.com/goliatone/go-activity/pkg/activity"
)

func TestRegistryRequiresManager(t *testing.T) {
	if _, err := New(Dependencies{}); err == nil {
		t.Fatalf("expected error without manager")
	}
}

func TestRegistryPublishes(t *testing.T) {
	mgr := activity.New()
	var got []activity.Event
	mgr.Register(activity.Static(activity.SubscriberFunc(func(_ context.Context, evt activity.Event) error {
		got = append(got, evt)
		return nil
	})))

	reg, err := New(Dependencies{Manager: mgr})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if len(reg.Commanders()) != 4 {
		t.Fatalf("expected 4 commanders")
	}
	if err := reg.PublishActivity.Execute(context.Background(), activity.Event{App: "files", Type: "shared", AffectedUser: "alice"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 1 || got[0].Timestamp.IsZero() {
		t.Fatalf("expected one stamped event, got %+v", got)
	}
	if err := reg.ListFeed.Execute(context.Background(), &ListFeed{User: "alice"}); err == nil {
		t.Fatalf("expected feed disabled error")
	}
}
