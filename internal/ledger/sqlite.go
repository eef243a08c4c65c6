package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

const createProcessed = `CREATE TABLE IF NOT EXISTS processed_videos (
	video_id TEXT PRIMARY KEY,
	processed_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// SQLite is a ledger backed by a single-table sqlite database. The
// in-memory set mirrors the table after Load and screens duplicate
// appends before they reach the database.
type SQLite struct {
	conn *sql.DB

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewSQLite opens (creating if needed) the database at path.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ledger: create dir: %w", err)
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=FULL",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ledger: %s: %w", pragma, err)
		}
	}
	if _, err := conn.Exec(createProcessed); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ledger: create table: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

// Load reads every processed id into memory.
func (l *SQLite) Load(ctx context.Context) error {
	rows, err := l.conn.QueryContext(ctx, `SELECT video_id FROM processed_videos`)
	if err != nil {
		return fmt.Errorf("ledger: load: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("ledger: scan: %w", err)
		}
		seen[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("ledger: load: %w", err)
	}

	l.mu.Lock()
	l.seen = seen
	l.mu.Unlock()
	return nil
}

// Contains reports whether id was already processed.
func (l *SQLite) Contains(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[id]
	return ok
}

// Append durably records id. A duplicate reports ErrAlreadyProcessed;
// INSERT OR IGNORE additionally covers ids written by another process
// since Load.
func (l *SQLite) Append(ctx context.Context, id string) error {
	l.mu.Lock()
	if l.seen == nil {
		l.mu.Unlock()
		return ErrNotLoaded
	}
	if _, ok := l.seen[id]; ok {
		l.mu.Unlock()
		return ErrAlreadyProcessed
	}
	l.mu.Unlock()

	if _, err := l.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO processed_videos (video_id) VALUES (?)`, id); err != nil {
		return fmt.Errorf("ledger: append %s: %w", id, err)
	}

	l.mu.Lock()
	l.seen[id] = struct{}{}
	l.mu.Unlock()
	return nil
}

// Close releases the database connection.
func (l *SQLite) Close() error { return l.conn.Close() }

var _ Store = (*SQLite)(nil)
