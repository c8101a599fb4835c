package capture

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const captureSchema = `
CREATE TABLE IF NOT EXISTS subscribers (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    subscribed_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS ideas (
    id           TEXT PRIMARY KEY,
    text         TEXT NOT NULL,
    submitted_at TEXT NOT NULL
);
`

// SQLiteBackend stores capture records locally when no Firestore project is
// configured, so a development or self-hosted deployment loses nothing.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

// OpenSQLiteBackend creates or opens capture.db inside the data directory.
func OpenSQLiteBackend(dataDir string) (*SQLiteBackend, error) {
	dbPath := filepath.Join(dataDir, "capture.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open capture db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(captureSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply capture schema: %w", err)
	}
	return &SQLiteBackend{db: db, path: dbPath}, nil
}

// SubscriberExists checks for an exact match on the normalized email.
func (b *SQLiteBackend) SubscriberExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := b.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM subscribers WHERE email = ?`, email,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query subscriber: %w", err)
	}
	return count > 0, nil
}

// AddSubscriber inserts a subscriber row stamped with the current time.
func (b *SQLiteBackend) AddSubscriber(ctx context.Context, id, email string) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := b.db.ExecContext(ctx,
		`INSERT INTO subscribers (id, email, subscribed_at) VALUES (?, ?, ?)`,
		id, email, timestamp,
	); err != nil {
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

// AddIdea inserts an idea row stamped with the current time.
func (b *SQLiteBackend) AddIdea(ctx context.Context, id, text string) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := b.db.ExecContext(ctx,
		`INSERT INTO ideas (id, text, submitted_at) VALUES (?, ?, ?)`,
		id, text, timestamp,
	); err != nil {
		return fmt.Errorf("insert idea: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (b *SQLiteBackend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Path returns the database file location, for status reporting.
func (b *SQLiteBackend) Path() string { return b.path }
