// Package store opens the durable home of the session record.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eagl/console/internal/store/codec"
	"github.com/eagl/console/internal/store/drivers/file"
	"github.com/eagl/console/internal/store/drivers/sqlite"
	"github.com/eagl/console/pkg/cryptox"
	"github.com/eagl/console/pkg/session"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("store: unknown driver")

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Store is a session.Storage holding resources that Close releases.
type Store interface {
	session.Storage
	Close() error
}

// Options select and configure a driver.
type Options struct {
	Driver string

	// Path is the record file for the file driver or the database file for
	// the sqlite driver. Ignored by the memory driver.
	Path string

	// Sealer, when set, encrypts the record at rest.
	Sealer *cryptox.Sealer
}

// Open returns the configured driver, ready for use.
func Open(_ context.Context, opts Options) (Store, error) {
	c := codec.Codec{Sealer: opts.Sealer}

	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverMemory:
		return memoryStore{session.NewMemoryStorage()}, nil

	case DriverFile:
		s, err := file.NewStore(opts.Path, c)
		if err != nil {
			return nil, err
		}
		return s, nil

	case DriverSQLite:
		if opts.Path == "" {
			return nil, errors.New("store: sqlite driver needs a path")
		}
		s, err := sqlite.NewStore(sqlite.DSN(opts.Path), c)
		if err != nil {
			return nil, fmt.Errorf("store: open sqlite: %w", err)
		}
		if err := s.ApplyMigrations(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("store: apply migrations: %w", err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

type memoryStore struct {
	*session.MemoryStorage
}

func (memoryStore) Close() error { return nil }
