// Package sqlite provides a SQLite-backed implementation of the storage.Backend interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/finanzas/internal/storage"
)

// Ensure SQLiteStore implements storage.Backend
var _ storage.Backend = (*SQLiteStore)(nil)

// SQLiteStore keeps each collection's JSON array in one row of the
// collections table.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed an empty array for every collection
	now := time.Now().Unix()
	for _, name := range storage.CollectionNames {
		_, err := db.Exec(
			"INSERT OR IGNORE INTO collections (name, body, updated_at) VALUES (?, ?, ?)",
			name, "[]", now,
		)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize collection %s: %w", name, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Blob returns the row-backed blob for the named collection.
func (s *SQLiteStore) Blob(name string) storage.Blob {
	return &rowBlob{db: s.db, name: name}
}

type rowBlob struct {
	db   *sql.DB
	name string
}

func (b *rowBlob) Read(ctx context.Context) ([]byte, error) {
	var body string
	err := b.db.QueryRowContext(ctx,
		"SELECT body FROM collections WHERE name = ?",
		b.name,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}
	return []byte(body), nil
}

func (b *rowBlob) Write(ctx context.Context, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO collections (name, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, b.name, string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write collection: %w", err)
	}
	return nil
}
