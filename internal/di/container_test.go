package di

import (
	"context"
	"sync"
	"testing"

	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-activity/pkg/config"
	"github.com/goliatone/go-activity/pkg/feed"
	"github.com/goliatone/go-activity/pkg/interfaces/broadcaster"
	"github.com/goliatone/go-users/pkg/types"
)

type captureBroadcaster struct {
	mu     sync.Mutex
	events []broadcaster.Event
}

func (c *captureBroadcaster) Broadcast(_ context.Context, evt broadcaster.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
	return nil
}

type captureSink struct {
	records []types.ActivityRecord
}

func (s *captureSink) Log(_ context.Context, rec types.ActivityRecord) error {
	s.records = append(s.records, rec)
	return nil
}

func TestContainerDefaults(t *testing.T) {
	c, err := New(Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.Manager == nil || c.Feed == nil || c.Commands == nil {
		t.Fatalf("expected manager, feed and commands")
	}
	if c.Manager.Len() != 1 {
		t.Fatalf("expected only the feed subscriber, got %d", c.Manager.Len())
	}
	if c.Metrics != nil {
		t.Fatalf("metrics disabled by default")
	}
}

func TestContainerWiresSubscribersInOrder(t *testing.T) {
	cfg := config.Defaults()
	cfg.Realtime.Enabled = true
	cfg.Reporting.MetricsEnabled = true

	var order []string
	bc := &captureBroadcaster{}
	sink := &captureSink{}
	c, err := New(Options{
		Config:       cfg,
		Broadcaster:  bc,
		ActivitySink: sink,
		Factories: []activity.Factory{
			activity.Static(activity.SubscriberFunc(func(context.Context, activity.Event) error {
				order = append(order, "custom")
				return nil
			})),
		},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.Manager.Len() != 4 {
		t.Fatalf("expected 4 factories, got %d", c.Manager.Len())
	}

	ctx := context.Background()
	c.Manager.Publish(ctx, activity.Event{App: "files", Type: "shared", AffectedUser: "alice", Subject: "shared"})

	page, err := c.Feed.List(ctx, feed.Query{User: "alice"})
	if err != nil {
		t.Fatalf("feed list: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected feed entry, got %d", page.Total)
	}
	if len(bc.events) != 1 || bc.events[0].Topic != "activity.shared" {
		t.Fatalf("expected realtime broadcast, got %+v", bc.events)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected go-users record")
	}
	if len(order) != 1 {
		t.Fatalf("expected custom subscriber called once")
	}
	if c.Metrics == nil {
		t.Fatalf("expected metrics reporter")
	}
}

func TestContainerFeedDisabled(t *testing.T) {
	cfg := config.Defaults()
	cfg.Feed.Enabled = false
	c, err := New(Options{Config: cfg})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.Feed != nil || c.Manager.Len() != 0 {
		t.Fatalf("expected no feed wiring")
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Logging.Format = "xml"
	if _, err := New(Options{Config: cfg}); err == nil {
		t.Fatalf("expected config error")
	}
}
