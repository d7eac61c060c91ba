// Package ws is the WebSocket edge of the relay: it upgrades connections,
// decodes inbound frames into commands, and writes outbound events back.
// Transport faults are logged here and never reach the core state.
package ws

import (
	"chat-relay/domain/event"
	"context"
)

// Sink buffers outbound events for one connection. Consume is called by
// the router and must not block it; the write pump drains the channel.
type Sink struct {
	Events chan event.DomainEvent
}

func NewSink(bufferSize int) *Sink {
	return &Sink{Events: make(chan event.DomainEvent, bufferSize)}
}

// Consume hands the event to the connection's write pump. A full buffer
// drops the event: delivery is best-effort at-most-once, so Consume
// never blocks and never needs the context.
func (s *Sink) Consume(_ context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	default:
		// Slow consumer backpressure, the event is lost for this
		// connection only.
		return nil
	}
}
