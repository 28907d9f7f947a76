package observability

import (
	"context"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/zistal/zistal/dbopen"
)

func TestEventLogger_Log(t *testing.T) {
	// WHAT: Log inserts one row per event with the typed fields intact.
	db := dbopen.OpenMemory(t, dbopen.WithSchema(Schema))
	l := NewEventLogger(db)
	ctx := context.Background()

	l.Log(ctx, Event{EventType: "conversion", UserID: "vishal", Pages: 5, Tokens: 5, Success: true})
	l.Log(ctx, Event{EventType: "login_failed", UserID: "vishal", Detail: "bad password", Success: false})

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM business_events`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("rows = %d, want 2", count)
	}

	var pages, tokens int
	err := db.QueryRow(`SELECT pages, tokens FROM business_events WHERE event_type = 'conversion'`).
		Scan(&pages, &tokens)
	if err != nil {
		t.Fatal(err)
	}
	if pages != 5 || tokens != 5 {
		t.Errorf("pages=%d tokens=%d, want 5/5", pages, tokens)
	}
}

func TestEventLogger_NonBlockingOnBadTable(t *testing.T) {
	// WHAT: Logging into a database without the schema must not panic or
	// propagate; the caller's request goes on.
	db := dbopen.OpenMemory(t)
	l := NewEventLogger(db)
	l.Log(context.Background(), Event{EventType: "conversion", UserID: "x", Success: true})
}

func TestCleanup(t *testing.T) {
	// WHAT: Cleanup removes rows older than the retention window only.
	db := dbopen.OpenMemory(t, dbopen.WithSchema(Schema))
	ctx := context.Background()

	old := int64(1000) // far in the past
	if _, err := db.Exec(`INSERT INTO business_events (event_id, event_type, success, created_at)
		VALUES ('evt_old', 'conversion', 1, ?)`, old); err != nil {
		t.Fatal(err)
	}
	NewEventLogger(db).Log(ctx, Event{EventType: "conversion", Success: true})

	if err := Cleanup(ctx, db, 30); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM business_events`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("rows after cleanup = %d, want 1", count)
	}
}
