package sqlite

import (
	"errors"
	"fmt"

	"github.com/eagl/console/internal/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// migrationsTable keeps the schema version apart from anything else that
// shares the database file.
const migrationsTable = "session_schema_migrations"

// ApplyMigrations brings the session schema up to date from the migration
// files embedded in the binary. An already current schema is not an error.
func (s *Store) ApplyMigrations() error {
	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return fmt.Errorf("read embedded migrations: %w", err)
	}

	target, err := sqlite.WithInstance(s.db, &sqlite.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("prepare session schema: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", target)
	if err != nil {
		return fmt.Errorf("prepare session schema: %w", err)
	}

	err = m.Up()
	switch {
	case err == nil, errors.Is(err, migrate.ErrNoChange):
		return nil
	default:
		return fmt.Errorf("migrate session schema: %w", err)
	}
}
