// Package file stores the session record in a single file on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/eagl/console/internal/store/codec"
	"github.com/eagl/console/pkg/session"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// Store implements session.Storage on top of one file. Writes replace the
// file atomically.
type Store struct {
	path  string
	codec codec.Codec

	mu sync.Mutex
}

// NewStore creates the parent directory of path if needed.
func NewStore(path string, c codec.Codec) (*Store, error) {
	if path == "" {
		return nil, errors.New("file store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, fmt.Errorf("file store: create directory: %w", err)
	}
	return &Store{path: path, codec: c}, nil
}

// Path returns the file the record lives in.
func (s *Store) Path() string { return s.path }

func (s *Store) Load(_ context.Context) (session.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return session.Record{}, session.ErrNoRecord
	}
	if err != nil {
		return session.Record{}, fmt.Errorf("file store: read: %w", err)
	}
	return s.codec.Decode(data)
}

func (s *Store) Save(_ context.Context, r session.Record) error {
	data, err := s.codec.Encode(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 1. Write a sibling temp file so a crash never leaves a torn record.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("file store: create temp: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file store: chmod: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file store: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file store: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file store: close: %w", err)
	}

	// 2. Swap it into place.
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("file store: rename: %w", err)
	}
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file store: remove: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
