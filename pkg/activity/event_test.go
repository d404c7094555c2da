package activity

import (
	"errors"
	"testing"
	"time"
)

func TestEventValidate(t *testing.T) {
	if err := sharedEvent().Validate(); err != nil {
		t.Fatalf("expected valid event, got %v", err)
	}

	err := Event{App: " "}.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []error{errAppRequired, errTypeRequired, errUserRequired} {
		if !errors.Is(err, want) {
			t.Fatalf("expected %v in %v", want, err)
		}
	}
}

func TestEventCloneDetachesParams(t *testing.T) {
	evt := sharedEvent()
	clone := evt.Clone()
	clone.SubjectParams[0] = "changed"
	clone.Metadata["source"] = "changed"

	if evt.SubjectParams[0] != "report.pdf" {
		t.Fatalf("clone mutated original params: %v", evt.SubjectParams)
	}
	if evt.Metadata["source"] != "web" {
		t.Fatalf("clone mutated original metadata: %v", evt.Metadata)
	}
	empty := Event.Clone(Event{})
	if empty.SubjectParams != nil || empty.Metadata != nil {
		t.Fatalf("expected nil params and metadata to stay nil")
	}
}

func TestEventOccurredAt(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if got := (Event{Timestamp: at}).OccurredAt(); !got.Equal(at) {
		t.Fatalf("expected explicit timestamp, got %v", got)
	}
	if got := (Event{}).OccurredAt(); got.IsZero() {
		t.Fatalf("expected fallback timestamp")
	}
}

func TestPriorityString(t *testing.T) {
	cases := map[Priority]string{
		PriorityVeryLow:  "very_low",
		PriorityMedium:   "medium",
		PriorityVeryHigh: "very_high",
		Priority(7):      "custom",
	}
	for p, want := range cases {
		if got := p.String(); got != want {
			t.Fatalf("Priority(%d).String() = %q want %q", int(p), got, want)
		}
	}
}
