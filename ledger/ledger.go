// Package ledger tracks per-user conversion credits.
//
// The Ledger is a thin read-modify-write service over a pluggable Store.
// Every mutation loads the whole balance map, changes it in memory and
// writes the whole map back. There is deliberately no cross-request
// locking: two concurrent conversions for the same user can interleave
// and lose a debit. The service is built for the single demo account;
// callers that need atomic debits must serialize access themselves.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
)

// StartTokens is the balance granted to a user on first login.
const StartTokens = 1000

// Store persists the complete username → token-count mapping.
// Load returns an empty map when no state exists or the persisted state
// is unreadable; corruption is treated as "no data yet", never surfaced.
type Store interface {
	Load(ctx context.Context) (map[string]int, error)
	Save(ctx context.Context, balances map[string]int) error
}

// Ledger is the credit balance service.
type Ledger struct {
	store  Store
	logger *slog.Logger
}

// New creates a Ledger over the given store.
func New(store Store, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{store: store, logger: logger}
}

// GetOrInit returns the user's balance, creating the entry with
// StartTokens and persisting it immediately when the user is absent.
// Called at login only; read paths must use Balance instead.
func (l *Ledger) GetOrInit(ctx context.Context, user string) (int, error) {
	balances, err := l.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("ledger: load: %w", err)
	}
	if b, ok := balances[user]; ok {
		return b, nil
	}
	balances[user] = StartTokens
	if err := l.store.Save(ctx, balances); err != nil {
		return 0, fmt.Errorf("ledger: save: %w", err)
	}
	l.logger.Info("ledger entry created", "user", user, "tokens", StartTokens)
	return StartTokens, nil
}

// Balance returns the user's current balance without persisting anything.
// An absent user defaults to StartTokens; the entry is only materialized
// by GetOrInit at login.
func (l *Ledger) Balance(ctx context.Context, user string) (int, error) {
	balances, err := l.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("ledger: load: %w", err)
	}
	if b, ok := balances[user]; ok {
		return b, nil
	}
	return StartTokens, nil
}

// Debit subtracts n tokens from the user's balance and persists the new
// mapping. The caller must have verified balance >= n beforehand; Debit
// refuses to persist a negative balance.
func (l *Ledger) Debit(ctx context.Context, user string, n int) (int, error) {
	balances, err := l.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("ledger: load: %w", err)
	}
	b, ok := balances[user]
	if !ok {
		b = StartTokens
	}
	if n > b {
		return b, fmt.Errorf("ledger: debit %d exceeds balance %d for %s", n, b, user)
	}
	b -= n
	balances[user] = b
	if err := l.store.Save(ctx, balances); err != nil {
		return 0, fmt.Errorf("ledger: save: %w", err)
	}
	l.logger.Info("tokens debited", "user", user, "debited", n, "remaining", b)
	return b, nil
}
