package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend stores one row per category
type SQLiteBackend struct {
	db *sql.DB
}

// DefaultSQLitePath returns the XDG data location of the history database
func DefaultSQLitePath() (string, error) {
	return xdg.DataFile("ezchat/history.db")
}

// NewSQLiteBackend opens (and creates if needed) the history database at path
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS history_values (
			category TEXT PRIMARY KEY,
			items TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteBackend{db: db}, nil
}

// Get returns the serialized list stored for key
func (b *SQLiteBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var items string
	err := b.db.QueryRowContext(ctx,
		"SELECT items FROM history_values WHERE category = ?", key,
	).Scan(&items)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return items, true, nil
}

// Put replaces the serialized list for key
func (b *SQLiteBackend) Put(ctx context.Context, key, value string) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO history_values (category, items, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(category) DO UPDATE SET
			items = excluded.items,
			updated_at = excluded.updated_at
	`, key, value)
	return err
}

// Close closes the database connection
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
