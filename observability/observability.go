// Package observability records business events for the zistal service
// in a sqlite side database: logins, conversions, debits. Writes are
// best-effort — a failing events store logs a warning and never blocks
// or fails the request that produced the event.
package observability

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/zistal/zistal/idgen"
)

// Event is a domain-level occurrence to record.
type Event struct {
	EventType string // "login", "login_failed", "conversion", "conversion_failed"
	UserID    string
	Pages     int    // pages processed, 0 when not applicable
	Tokens    int    // tokens debited, 0 when not applicable
	Detail    string // optional free text (e.g. failure reason tag)
	Success   bool
}

// EventLogger writes events and manages retention cleanup.
type EventLogger struct {
	db    *sql.DB
	newID idgen.Generator
}

// Option configures an EventLogger.
type Option func(*EventLogger)

// WithIDGenerator sets a custom ID generator for event IDs.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(l *EventLogger) { l.newID = gen }
}

// NewEventLogger creates a logger backed by the given database. The
// caller is expected to have applied Schema (dbopen.WithSchema(Schema)).
func NewEventLogger(db *sql.DB, opts ...Option) *EventLogger {
	l := &EventLogger{
		db:    db,
		newID: idgen.Prefixed("evt_", idgen.Default),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Log records an event. Non-blocking: errors are logged via slog but do
// not propagate.
func (l *EventLogger) Log(ctx context.Context, e Event) {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO business_events (
			event_id, event_type, user_id, pages, tokens, detail, success, created_at
		) VALUES (?,?,?,?,?,?,?,?)`,
		l.newID(), e.EventType, e.UserID, e.Pages, e.Tokens, e.Detail, e.Success,
		time.Now().Unix())
	if err != nil {
		slog.Warn("event log failed", "error", err, "event_type", e.EventType)
	}
}

// Cleanup deletes events older than days. Zero or negative days is a no-op.
func Cleanup(ctx context.Context, db *sql.DB, days int) error {
	if days <= 0 {
		return nil
	}
	cutoff := time.Now().Unix() - int64(days)*86400
	_, err := db.ExecContext(ctx, `DELETE FROM business_events WHERE created_at < ?`, cutoff)
	return err
}
