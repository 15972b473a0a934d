// Package store provides the key-value persistence backends for mess records.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// Store maps string keys to opaque values. Implementations are safe for use
// by a single process; there is no cross-process locking beyond what the
// backend itself provides.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys lists all stored keys in lexical order.
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite   = "sqlite"
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Backends lists every supported backend name.
var Backends = []string{BackendSQLite, BackendBolt, BackendPostgres, BackendMemory}

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Options selects and configures a backend.
type Options struct {
	Backend string
	DataDir string // sqlite and bolt files live here
	DSN     string // postgres only
}

// Open returns the configured backend. An empty backend means sqlite.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		return OpenSQLite(ctx, SQLitePath(opts.DataDir))
	case BackendBolt:
		return OpenBolt(BoltPath(opts.DataDir))
	case BackendPostgres:
		if opts.DSN == "" {
			return nil, errors.New("postgres backend requires a DSN")
		}
		return OpenPostgres(ctx, opts.DSN)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// SQLitePath returns the sqlite database file inside dataDir.
func SQLitePath(dataDir string) string {
	return filepath.Join(dataDir, "messbook.db")
}

// BoltPath returns the bolt database file inside dataDir.
func BoltPath(dataDir string) string {
	return filepath.Join(dataDir, "messbook.bolt")
}
