package events

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier mirrors every emitted event into the structured log.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(_ context.Context, event Event) error {
	n.Logger.Info().
		Str("event_id", event.ID).
		Str("topic", event.Topic).
		RawJSON("payload", event.Payload).
		Time("occurred_at", event.OccurredAt).
		Msg("domain_event")
	return nil
}
