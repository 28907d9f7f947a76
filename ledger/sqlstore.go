package ledger

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLSchema is the DDL for the sqlite-backed store.
const SQLSchema = `
CREATE TABLE IF NOT EXISTS balances (
    username TEXT PRIMARY KEY,
    tokens INTEGER NOT NULL CHECK (tokens >= 0)
);
`

// SQLStore keeps balances in a sqlite table. It preserves the
// whole-read/whole-write semantics of the file store observably: Load
// selects every row, Save replaces every row in one transaction.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates the store and applies its schema.
func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	if _, err := db.Exec(SQLSchema); err != nil {
		return nil, fmt.Errorf("ledger: schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Load returns all persisted balances.
func (s *SQLStore) Load(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT username, tokens FROM balances`)
	if err != nil {
		return nil, fmt.Errorf("ledger: select: %w", err)
	}
	defer rows.Close()

	balances := map[string]int{}
	for rows.Next() {
		var user string
		var tokens int
		if err := rows.Scan(&user, &tokens); err != nil {
			return nil, fmt.Errorf("ledger: scan: %w", err)
		}
		balances[user] = tokens
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: rows: %w", err)
	}
	return balances, nil
}

// Save replaces the entire table with the given mapping.
func (s *SQLStore) Save(ctx context.Context, balances map[string]int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ledger: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM balances`); err != nil {
		return fmt.Errorf("ledger: clear: %w", err)
	}
	for user, tokens := range balances {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO balances (username, tokens) VALUES (?, ?)`, user, tokens); err != nil {
			return fmt.Errorf("ledger: insert %s: %w", user, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ledger: commit: %w", err)
	}
	return nil
}
