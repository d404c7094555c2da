package feedsink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-activity/internal/storage/memory"
	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-activity/pkg/domain"
	"github.com/goliatone/go-activity/pkg/interfaces/store"
	"github.com/goliatone/go-activity/pkg/render"
	"github.com/google/uuid"
)

func TestSubscriberStoresRenderedRecord(t *testing.T) {
	repo := memory.NewActivityRepository()
	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	sub := &Subscriber{
		Repo:     repo,
		Renderer: render.New(nil, "en"),
		Locale:   func(context.Context, string) string { return "de" },
	}

	err := sub.Receive(context.Background(), activity.Event{
		App:           "files",
		Type:          "shared",
		AffectedUser:  "alice",
		Author:        "bob",
		Subject:       "{0} shared {1} with you",
		SubjectParams: []any{"bob", "report.pdf"},
		Message:       "<b>%s</b>",
		MessageParams: []any{"hello"},
		Object:        activity.Object{Type: "file", ID: "42", Name: "/report.pdf"},
		Priority:      activity.PriorityHigh,
		Timestamp:     at,
		Metadata:      map[string]any{"share_id": "s-7"},
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}

	res, err := repo.ListByUser(context.Background(), "alice", store.FeedFilter{}, store.ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 1 {
		t.Fatalf("expected 1 record, got %d", res.Total)
	}
	rec := res.Items[0]
	if rec.Rendered != "bob shared report.pdf with you" {
		t.Fatalf("unexpected rendered subject %q", rec.Rendered)
	}
	if rec.Locale != "de" {
		t.Fatalf("expected resolved locale, got %q", rec.Locale)
	}
	if rec.ObjectID != "42" || rec.Priority != int(activity.PriorityHigh) || !rec.OccurredAt.Equal(at) {
		t.Fatalf("fields not mapped: %+v", rec)
	}
	if rec.RenderedBody == "" || rec.RenderedBody == "<b>hello</b>" {
		t.Fatalf("expected plain text body, got %q", rec.RenderedBody)
	}
	if rec.Metadata["share_id"] != "s-7" {
		t.Fatalf("metadata not stored: %v", rec.Metadata)
	}
}

func TestNewRecordCopiesMetadata(t *testing.T) {
	evt := activity.Event{App: "files", Type: "shared", AffectedUser: "alice", Metadata: map[string]any{"k": "v"}}
	rec := NewRecord(evt, render.Rendered{})
	rec.Metadata["k"] = "changed"
	if evt.Metadata["k"] != "v" {
		t.Fatalf("record shares metadata with event: %v", evt.Metadata)
	}
	if NewRecord(activity.Event{}, render.Rendered{}).Metadata != nil {
		t.Fatalf("expected nil metadata for events without it")
	}
}

func TestSubscriberRejectsIncompleteEvent(t *testing.T) {
	sub := &Subscriber{Repo: memory.NewActivityRepository()}
	if err := sub.Receive(context.Background(), activity.Event{App: "files"}); !errors.Is(err, errInvalidEvent) {
		t.Fatalf("expected invalid event error, got %v", err)
	}
}

type failingRepo struct {
	store.ActivityRepository
}

func (failingRepo) Create(context.Context, *domain.ActivityRecord) error {
	return errors.New("disk full")
}

func (failingRepo) GetByID(context.Context, uuid.UUID) (*domain.ActivityRecord, error) {
	return nil, store.ErrNotFound
}

func TestSubscriberWrapsStoreErrors(t *testing.T) {
	sub := &Subscriber{Repo: failingRepo{}}
	err := sub.Receive(context.Background(), activity.Event{App: "a", Type: "t", AffectedUser: "u"})
	if err == nil || err.Error() != "feedsink: store activity: disk full" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestFactoryOptsOutWithoutRepository(t *testing.T) {
	sub, err := Factory(nil, nil, nil)()
	if err != nil || sub != nil {
		t.Fatalf("expected nil subscriber, got %v %v", sub, err)
	}
	sub, err = Factory(memory.NewActivityRepository(), nil, nil)()
	if err != nil || sub == nil {
		t.Fatalf("expected subscriber, got %v %v", sub, err)
	}
}
