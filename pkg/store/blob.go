// Package store provides the string-keyed blob stores the journal persists
// into.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Blob is a string-keyed store of string values. Get reports ok=false with a
// nil error when the key has never been set.
type Blob interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}

// Backend is a Blob that holds resources until closed.
type Backend interface {
	Blob
	Close() error
}

const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	sqliteFile = "journal.db"
)

// Backends lists the names accepted by Open.
func Backends() []string {
	return []string{BackendDiskv, BackendSQLite, BackendMemory}
}

// Open creates the named backend rooted at basePath. For diskv basePath is
// the directory holding one file per key; for sqlite the database file lives
// inside it.
func Open(backend, basePath string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendDiskv:
		return NewDiskv(basePath), nil
	case BackendSQLite:
		return NewSQLite(filepath.Join(basePath, sqliteFile))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
}
