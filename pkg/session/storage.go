package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNoRecord is returned by Storage.Load when nothing is persisted.
var ErrNoRecord = errors.New("session: no record")

// Storage persists the single session record.
type Storage interface {
	// Load returns the stored record or ErrNoRecord when absent. Content that
	// can't be decoded is reported as ErrInvalidRecord; any other error means
	// the storage itself could not be read.
	Load(ctx context.Context) (Record, error)

	// Save overwrites the stored record.
	Save(ctx context.Context, r Record) error

	// Clear removes the stored record. Clearing an absent record is not an error.
	Clear(ctx context.Context) error
}

// MemoryStorage keeps the encoded record in memory. It goes through the same
// codec as the durable drivers.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStorage() *MemoryStorage { return &MemoryStorage{} }

func (m *MemoryStorage) Load(_ context.Context) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return Record{}, ErrNoRecord
	}
	return UnmarshalRecord(m.data)
}

func (m *MemoryStorage) Save(_ context.Context, r Record) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}

func (m *MemoryStorage) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// Raw returns the stored bytes, nil when empty. Intended for tests and
// diagnostics.
func (m *MemoryStorage) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil
	}
	return append([]byte(nil), m.data...)
}

// SetRaw stores arbitrary bytes, bypassing the codec.
func (m *MemoryStorage) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}
