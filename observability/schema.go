package observability

// Schema is the DDL for the events table. Apply with
// dbopen.WithSchema(observability.Schema) or embed it in your own
// schema management.
const Schema = `
CREATE TABLE IF NOT EXISTS business_events (
    event_id TEXT PRIMARY KEY,
    event_type TEXT NOT NULL,
    user_id TEXT,
    pages INTEGER NOT NULL DEFAULT 0,
    tokens INTEGER NOT NULL DEFAULT 0,
    detail TEXT,
    success INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_type_time
    ON business_events(event_type, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_events_user_time
    ON business_events(user_id, created_at DESC);
`
