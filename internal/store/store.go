// Package store opens the local SQLite database backing the
// authentication state (face profile, settings, PIN credential, master
// secret) and wires up the repositories. The encrypted vault blob and
// the audit log live in plain files, not in this database.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/facevault/facevault/internal/store/faces"
	"github.com/facevault/facevault/internal/store/migrations"
	"github.com/facevault/facevault/internal/store/pins"
	"github.com/facevault/facevault/internal/store/secrets"
	"github.com/facevault/facevault/internal/store/settings"
	"github.com/pressly/goose/v3"
)

// Store bundles the database handle and its repositories.
type Store struct {
	DB       *sql.DB
	Faces    faces.Repository
	Settings settings.Repository
	Pins     pins.Repository
	Secrets  secrets.Repository
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Open opens (creating if necessary) the SQLite database at dsn, runs
// migrations and returns the wired Store. The caller must register a
// database/sql driver named "sqlite" (blank import of modernc.org/sqlite).
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		DB:       db,
		Faces:    faces.NewSQLiteRepository(db),
		Settings: settings.NewSQLiteRepository(db),
		Pins:     pins.NewSQLiteRepository(db),
		Secrets:  secrets.NewSQLiteRepository(db),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}
