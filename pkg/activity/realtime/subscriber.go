// Package realtime pushes activity events to connected clients through a
// broadcaster.Broadcaster.
package realtime

import (
	"context"
	"strings"

	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-activity/pkg/interfaces/broadcaster"
)

// DefaultTopicPrefix namespaces activity topics.
const DefaultTopicPrefix = "activity"

// Subscriber forwards each event as a broadcaster frame addressed to the
// affected user.
type Subscriber struct {
	Broadcaster broadcaster.Broadcaster
	TopicPrefix string
}

var _ activity.Subscriber = (*Subscriber)(nil)

// Factory yields a Subscriber, or nil when no broadcaster is configured.
func Factory(b broadcaster.Broadcaster, prefix string) activity.Factory {
	return func() (activity.Subscriber, error) {
		if b == nil {
			return nil, nil
		}
		return &Subscriber{Broadcaster: b, TopicPrefix: prefix}, nil
	}
}

// Receive broadcasts the event on "<prefix>.<type>".
func (s *Subscriber) Receive(ctx context.Context, evt activity.Event) error {
	if s.Broadcaster == nil {
		return nil
	}
	return s.Broadcaster.Broadcast(ctx, broadcaster.Event{
		Topic:    Topic(s.TopicPrefix, evt.Type),
		Audience: evt.AffectedUser,
		Payload:  evt.Clone(),
	})
}

// Topic joins prefix and event type.
func Topic(prefix, eventType string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	if eventType == "" {
		return prefix
	}
	return prefix + "." + eventType
}
