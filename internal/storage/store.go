package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("storage: not found")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// Store is the key-value persistence port. Get reports ok=false when the key
// has never been written.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Backend is a Store that owns a resource. Delete returns ErrNotFound when
// the key was never written.
type Backend interface {
	Store
	Delete(ctx context.Context, key string) error
	Close() error
}

// Stamped is implemented by backends that record when each key was written.
type Stamped interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

type Options struct {
	Backend   string
	DBPath    string
	StateFile string
}

func Open(opts Options) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case BackendSQLite, "":
		return OpenSQLite(opts.DBPath)
	case BackendFile:
		return NewFileStore(opts.StateFile)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
