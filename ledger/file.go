package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore persists balances as one pretty-printed JSON object keyed by
// username. Every Save rewrites the whole file; there is no journaling
// and no rename dance, matching the whole-file read/rewrite contract.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the JSON file at path. Parent
// directories are created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the full balance map. A missing or unparseable file yields
// an empty map: the ledger starts over rather than refusing to serve.
func (s *FileStore) Load(_ context.Context) (map[string]int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]int{}, nil
		}
		return nil, fmt.Errorf("ledger: read %s: %w", s.path, err)
	}
	balances := map[string]int{}
	if err := json.Unmarshal(data, &balances); err != nil {
		// Corrupt state degrades to an empty ledger.
		return map[string]int{}, nil
	}
	return balances, nil
}

// Save overwrites the whole file with the given mapping.
func (s *FileStore) Save(_ context.Context, balances map[string]int) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ledger: mkdir %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(balances, "", "  ")
	if err != nil {
		return fmt.Errorf("ledger: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("ledger: write %s: %w", s.path, err)
	}
	return nil
}
