// Package sqlite stores the session record in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eagl/console/internal/store/codec"
	"github.com/eagl/console/pkg/session"
	_ "modernc.org/sqlite"
)

type Store struct {
	db    *sql.DB
	codec codec.Codec
	key   string
}

// NewStore opens the database at dsn. Call ApplyMigrations before use.
func NewStore(dsn string, c codec.Codec) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, codec: c, key: session.StorageKey}, nil
}

// DSN builds the connection string for a database file.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Load(ctx context.Context) (session.Record, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM session_records WHERE key = ?`, s.key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Record{}, session.ErrNoRecord
	}
	if err != nil {
		return session.Record{}, fmt.Errorf("sqlite store: load: %w", err)
	}
	return s.codec.Decode(payload)
}

func (s *Store) Save(ctx context.Context, r session.Record) error {
	payload, err := s.codec.Encode(r)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_records (key, payload, sealed, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			sealed = excluded.sealed,
			updated_at = excluded.updated_at`,
		s.key, payload, s.codec.Sealer != nil,
	)
	if err != nil {
		return fmt.Errorf("sqlite store: save: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_records WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("sqlite store: clear: %w", err)
	}
	return nil
}
