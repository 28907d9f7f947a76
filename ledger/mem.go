package ledger

import (
	"context"
	"maps"
)

// MemStore is an in-memory Store for tests.
type MemStore struct {
	balances map[string]int
	// SaveCount records how many times Save ran, so tests can assert
	// that failed conversions leave the ledger untouched.
	SaveCount int
}

// NewMemStore creates an empty in-memory store, optionally seeded.
func NewMemStore(seed map[string]int) *MemStore {
	m := &MemStore{balances: map[string]int{}}
	maps.Copy(m.balances, seed)
	return m
}

// Load returns a copy of the current mapping.
func (m *MemStore) Load(_ context.Context) (map[string]int, error) {
	out := map[string]int{}
	maps.Copy(out, m.balances)
	return out, nil
}

// Save replaces the mapping with a copy of the argument.
func (m *MemStore) Save(_ context.Context, balances map[string]int) error {
	m.balances = map[string]int{}
	maps.Copy(m.balances, balances)
	m.SaveCount++
	return nil
}
