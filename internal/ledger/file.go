package ledger

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File is a line-oriented ledger: one video id per line, appended with
// fsync so a crash immediately after Append cannot lose the write. The
// file stays human-inspectable; duplicate or blank lines are tolerated
// on load.
type File struct {
	path string

	mu   sync.Mutex
	seen map[string]struct{}
	f    *os.File
}

// NewFile returns an unloaded file ledger at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads the whole ledger into memory and opens the file for
// appends. A missing file is an empty ledger.
func (l *File) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("ledger: create dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("ledger: open %s: %w", l.path, err)
	}

	seen := make(map[string]struct{})
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		id := strings.TrimSpace(sc.Text())
		if id == "" {
			continue
		}
		seen[id] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		f.Close()
		return fmt.Errorf("ledger: read %s: %w", l.path, err)
	}

	l.seen = seen
	l.f = f
	return nil
}

// Contains reports whether id was already processed.
func (l *File) Contains(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[id]
	return ok
}

// Append durably records id. An id already present leaves the file
// untouched and reports ErrAlreadyProcessed.
func (l *File) Append(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return ErrNotLoaded
	}
	if _, ok := l.seen[id]; ok {
		return ErrAlreadyProcessed
	}
	if _, err := fmt.Fprintln(l.f, id); err != nil {
		return fmt.Errorf("ledger: append %s: %w", id, err)
	}
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("ledger: sync: %w", err)
	}
	l.seen[id] = struct{}{}
	return nil
}

// Close releases the underlying file.
func (l *File) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

var _ Store = (*File)(nil)
