package activity

import (
	"errors"
	"strings"
	"time"
)

// Priority ranks how urgent an activity is for the affected user.
type Priority int

const (
	PriorityVeryLow  Priority = 10
	PriorityLow      Priority = 20
	PriorityMedium   Priority = 30
	PriorityHigh     Priority = 40
	PriorityVeryHigh Priority = 50
)

// String returns the lowercase label for known priorities.
func (p Priority) String() string {
	switch p {
	case PriorityVeryLow:
		return "very_low"
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityVeryHigh:
		return "very_high"
	default:
		return "custom"
	}
}

// Object references the file or entity an activity is about.
type Object struct {
	Type string `json:"type,omitempty"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// IsZero reports whether no object is attached.
func (o Object) IsZero() bool {
	return o.Type == "" && o.ID == "" && o.Name == ""
}

// Event describes one notable occurrence. Subject and Message are templates
// whose ordered params are substituted by whoever renders them; the manager
// treats every field as opaque payload.
type Event struct {
	App           string    `json:"app"`
	Type          string    `json:"type"`
	AffectedUser  string    `json:"affected_user"`
	Author        string    `json:"author,omitempty"`
	Subject       string    `json:"subject"`
	SubjectParams []any     `json:"subject_params,omitempty"`
	Message       string    `json:"message,omitempty"`
	MessageParams []any     `json:"message_params,omitempty"`
	Object        Object    `json:"object,omitempty"`
	Link          string    `json:"link,omitempty"`
	Priority      Priority  `json:"priority"`
	Timestamp     time.Time `json:"timestamp,omitempty"`
	// Metadata carries free-form attributes stored alongside the event.
	Metadata map[string]any `json:"metadata,omitempty"`
}

var (
	errAppRequired  = errors.New("activity: app is required")
	errTypeRequired = errors.New("activity: type is required")
	errUserRequired = errors.New("activity: affected user is required")
)

// Validate checks the fields a publisher must always provide.
func (e Event) Validate() error {
	var errs []error
	if strings.TrimSpace(e.App) == "" {
		errs = append(errs, errAppRequired)
	}
	if strings.TrimSpace(e.Type) == "" {
		errs = append(errs, errTypeRequired)
	}
	if strings.TrimSpace(e.AffectedUser) == "" {
		errs = append(errs, errUserRequired)
	}
	return errors.Join(errs...)
}

// Clone returns a copy whose params and metadata can be retained or mutated
// without touching the original.
func (e Event) Clone() Event {
	out := e
	out.SubjectParams = cloneParams(e.SubjectParams)
	out.MessageParams = cloneParams(e.MessageParams)
	out.Metadata = CloneMetadata(e.Metadata)
	return out
}

// CloneMetadata makes a shallow copy so subscribers can mutate without
// affecting callers.
func CloneMetadata(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// OccurredAt returns the event timestamp or now when unset.
func (e Event) OccurredAt() time.Time {
	if e.Timestamp.IsZero() {
		return time.Now().UTC()
	}
	return e.Timestamp
}

func cloneParams(src []any) []any {
	if len(src) == 0 {
		return nil
	}
	return append([]any(nil), src...)
}
