package broadcaster

import "context"

// Event is a realtime frame pushed to connected clients.
type Event struct {
	Topic string
	// Audience narrows delivery to a single user when set.
	Audience string
	Payload  any
}

// Broadcaster pushes events to WebSocket/SSE/webhook transports.
type Broadcaster interface {
	Broadcast(ctx context.Context, event Event) error
}

// Nop broadcaster discards events.
type Nop struct{}

var _ Broadcaster = (*Nop)(nil)

func (n *Nop) Broadcast(ctx context.Context, event Event) error { return nil }
