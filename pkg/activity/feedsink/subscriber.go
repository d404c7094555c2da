// Package feedsink stores rendered activity events so they can be listed as
// a per-user feed.
package feedsink

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-activity/pkg/domain"
	"github.com/goliatone/go-activity/pkg/interfaces/store"
	"github.com/goliatone/go-activity/pkg/render"
)

var errInvalidEvent = errors.New("feedsink: event missing app, type or affected user")

// LocaleResolver picks the render locale for the affected user.
type LocaleResolver func(ctx context.Context, user string) string

// Subscriber renders each event and persists it.
type Subscriber struct {
	Repo     store.ActivityRepository
	Renderer *render.Renderer
	Locale   LocaleResolver
}

var _ activity.Subscriber = (*Subscriber)(nil)

// Factory yields a Subscriber, or nil when no repository is configured.
func Factory(repo store.ActivityRepository, renderer *render.Renderer, locale LocaleResolver) activity.Factory {
	return func() (activity.Subscriber, error) {
		if repo == nil {
			return nil, nil
		}
		if renderer == nil {
			renderer = render.New(nil, "")
		}
		return &Subscriber{Repo: repo, Renderer: renderer, Locale: locale}, nil
	}
}

// Receive renders and stores the event.
func (s *Subscriber) Receive(ctx context.Context, evt activity.Event) error {
	if s.Repo == nil {
		return nil
	}
	if evt.App == "" || evt.Type == "" || evt.AffectedUser == "" {
		return errInvalidEvent
	}
	renderer := s.Renderer
	if renderer == nil {
		renderer = render.New(nil, "")
	}
	locale := ""
	if s.Locale != nil {
		locale = s.Locale(ctx, evt.AffectedUser)
	}
	out, err := renderer.Render(locale, evt)
	if err != nil {
		return err
	}
	record := NewRecord(evt, out)
	if err := s.Repo.Create(ctx, record); err != nil {
		return fmt.Errorf("feedsink: store activity: %w", err)
	}
	return nil
}

// NewRecord maps an event and its rendering into a storable record.
func NewRecord(evt activity.Event, out render.Rendered) *domain.ActivityRecord {
	return &domain.ActivityRecord{
		App:           evt.App,
		Type:          evt.Type,
		AffectedUser:  evt.AffectedUser,
		Author:        evt.Author,
		Subject:       evt.Subject,
		SubjectParams: domain.ParamList(cloneParams(evt.SubjectParams)),
		Message:       evt.Message,
		MessageParams: domain.ParamList(cloneParams(evt.MessageParams)),
		Rendered:      out.Subject,
		RenderedBody:  out.PlainMessage,
		Locale:        out.Locale,
		ObjectType:    evt.Object.Type,
		ObjectID:      evt.Object.ID,
		ObjectName:    evt.Object.Name,
		Link:          evt.Link,
		Priority:      int(evt.Priority),
		Metadata:      domain.JSONMap(activity.CloneMetadata(evt.Metadata)),
		OccurredAt:    evt.OccurredAt(),
	}
}

func cloneParams(in []any) []any {
	if len(in) == 0 {
		return nil
	}
	return append([]any(nil), in...)
}
