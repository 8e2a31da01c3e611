package outbound

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/identity-platform/auth-service/internal/core/ports"
)

// LogSink writes outbound events to the structured log. It stands in for the
// mail relay and telemetry collector in deployments that run without them;
// the dispatcher does not care which sink it feeds.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Deliver(_ context.Context, event ports.OutboundEvent) error {
	evt := s.log.Info().
		Str("kind", string(event.Kind)).
		Str("recipient", event.Recipient).
		Str("subject", event.Subject)
	for k, v := range event.Meta {
		evt = evt.Str(k, v)
	}
	evt.Msg("outbound event")
	return nil
}
