package usersink

import (
	"context"

	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Subscriber adapts activity events into go-users ActivitySink records.
type Subscriber struct {
	Sink types.ActivitySink
	// TenantID and OrgID scope every record written by this subscriber.
	TenantID string
	OrgID    string
}

var _ activity.Subscriber = (*Subscriber)(nil)

// Factory yields a Subscriber, or nil when no sink is configured.
func Factory(sink types.ActivitySink) activity.Factory {
	return func() (activity.Subscriber, error) {
		if sink == nil {
			return nil, nil
		}
		return &Subscriber{Sink: sink}, nil
	}
}

// Receive maps the event into a types.ActivityRecord and logs it.
func (s *Subscriber) Receive(ctx context.Context, evt activity.Event) error {
	if s.Sink == nil {
		return nil
	}
	record := types.ActivityRecord{
		ID:         uuid.New(),
		UserID:     parseUUID(evt.AffectedUser),
		ActorID:    parseUUID(evt.Author),
		Verb:       evt.Type,
		ObjectType: evt.Object.Type,
		ObjectID:   evt.Object.ID,
		Channel:    evt.App,
		TenantID:   parseUUID(s.TenantID),
		OrgID:      parseUUID(s.OrgID),
		Data:       buildData(evt),
		OccurredAt: evt.OccurredAt(),
	}
	return s.Sink.Log(ctx, record)
}

func buildData(evt activity.Event) map[string]any {
	data := activity.CloneMetadata(evt.Metadata)
	if data == nil {
		data = make(map[string]any, 8)
	}
	data["subject"] = evt.Subject
	data["priority"] = int(evt.Priority)
	data["affected_user"] = evt.AffectedUser
	if len(evt.SubjectParams) > 0 {
		data["subject_params"] = append([]any(nil), evt.SubjectParams...)
	}
	if evt.Message != "" {
		data["message"] = evt.Message
	}
	if len(evt.MessageParams) > 0 {
		data["message_params"] = append([]any(nil), evt.MessageParams...)
	}
	if evt.Object.Name != "" {
		data["object_name"] = evt.Object.Name
	}
	if evt.Link != "" {
		data["link"] = evt.Link
	}
	if evt.Author != "" {
		data["author"] = evt.Author
	}
	return data
}

func parseUUID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
