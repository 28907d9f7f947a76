package ledger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	// WHAT: Load on a nonexistent path returns an empty map, no error.
	// WHY: "No data yet" and "file absent" are the same condition.
	s := NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
}

func TestFileStore_CorruptFileIsEmpty(t *testing.T) {
	// WHAT: Unparseable JSON degrades to an empty map.
	// WHY: Corruption is swallowed, never raised to the caller.
	path := filepath.Join(t.TempDir(), "tokens.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	// WHAT: Save then Load returns the same mapping; the file is a plain
	// JSON object keyed by username.
	path := filepath.Join(t.TempDir(), "state", "tokens.json")
	s := NewFileStore(path)
	ctx := context.Background()

	want := map[string]int{"vishal": 970, "other": 1000}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) || got["vishal"] != 970 || got["other"] != 1000 {
		t.Errorf("Load = %v, want %v", got, want)
	}

	// The on-disk layout is one JSON object with integer values.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var onDisk map[string]int
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("on-disk layout: %v", err)
	}
}

func TestFileStore_SaveOverwritesWholeFile(t *testing.T) {
	// WHAT: A second Save replaces the full mapping, dropping absent keys.
	// WHY: The store contract is whole-file rewrite, not merge.
	path := filepath.Join(t.TempDir(), "tokens.json")
	s := NewFileStore(path)
	ctx := context.Background()

	if err := s.Save(ctx, map[string]int{"a": 1, "b": 2}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, map[string]int{"a": 3}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got["a"] != 3 {
		t.Errorf("Load = %v, want map[a:3]", got)
	}
}
