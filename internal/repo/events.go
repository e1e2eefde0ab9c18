package repo

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/retail-console/internal/events"
	"github.com/noah-isme/retail-console/internal/storage/csvfile"
)

var eventsHeader = []string{"id", "topic", "payload", "occurred_at"}

// Events is the append-only CSV audit log behind the event bus. It
// implements events.EventStore.
type Events struct {
	table csvfile.Table
}

// NewEvents builds an event repository over the given file path.
func NewEvents(path string, log zerolog.Logger) *Events {
	return &Events{table: csvfile.Table{Path: path, Header: eventsHeader, Logger: log}}
}

// Append implements events.EventStore.
func (r *Events) Append(ev events.Event) error {
	return r.table.Append([]string{
		ev.ID,
		ev.Topic,
		string(ev.Payload),
		ev.OccurredAt.Format(time.RFC3339),
	})
}
