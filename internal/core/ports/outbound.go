package ports

import "context"

// OutboundKind names a fire-and-forget side effect.
type OutboundKind string

const (
	OutboundRegistrationEmail  OutboundKind = "registration_email"
	OutboundPasswordResetEmail OutboundKind = "password_reset_email"
	OutboundTelemetryEvent     OutboundKind = "telemetry_event"
)

// OutboundEvent is a side effect dispatched after an identity mutation. Its
// delivery never alters the outcome of the operation that produced it.
type OutboundEvent struct {
	Kind      OutboundKind
	Recipient string
	Subject   string
	Meta      map[string]string
}

// OutboundDispatcher accepts events for asynchronous delivery. Enqueue fails
// only when the dispatcher cannot accept the event at all (stopped or full).
type OutboundDispatcher interface {
	Enqueue(event OutboundEvent) error
}

// OutboundSink delivers a single event to the outside world (mail relay,
// telemetry collector). Implementations are external collaborators.
type OutboundSink interface {
	Deliver(ctx context.Context, event OutboundEvent) error
}
