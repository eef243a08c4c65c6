// Package ledger persists the set of video ids already processed so no
// source video is handled twice across runs.
package ledger

import (
	"context"
	"errors"
	"fmt"
)

// Backend names for configuration.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var (
	// ErrNotLoaded indicates Contains or Append was called before Load.
	ErrNotLoaded = errors.New("ledger: not loaded")
	// ErrAlreadyProcessed indicates an Append for an id the ledger
	// already holds. Callers treating reprocessing as benign check
	// with errors.Is.
	ErrAlreadyProcessed = errors.New("ledger: already processed")
)

// Store is the durable, append-only record of processed video ids.
// Load runs once per run start; Append must be durable before it
// returns, and appending an id already present leaves the store
// unchanged and reports ErrAlreadyProcessed. Implementations must be
// safe for concurrent Append of different ids.
type Store interface {
	Load(ctx context.Context) error
	Contains(id string) bool
	Append(ctx context.Context, id string) error
	Close() error
}

// Open constructs a store for the named backend at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFile(path), nil
	case BackendSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("ledger: unknown backend %q", backend)
	}
}
