package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/myrjola/coachplan/internal/sqlite"
)

// SQLiteStore persists key-value pairs in the kv_entries table.
type SQLiteStore struct {
	db *sqlite.Database
}

// NewSQLiteStore creates a store backed by the given database.
func NewSQLiteStore(db *sqlite.Database) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.ReadOnly.QueryRowContext(ctx, `
		SELECT value
		FROM kv_entries
		WHERE key = ?`, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load key %s: %w", key, err)
	}

	return value, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)

	if err != nil {
		return fmt.Errorf("save key %s: %w", key, err)
	}

	return nil
}
