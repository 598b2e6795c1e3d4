// Package migrations versiona el esquema SQL de los backends postgres y sqlite.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed files/postgres/*.sql files/sqlite/*.sql
var migrationFiles embed.FS

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) dir() (string, error) {
	switch d {
	case Postgres:
		return "files/postgres", nil
	case SQLite:
		return "files/sqlite", nil
	default:
		return "", fmt.Errorf("unknown migration dialect: %q", d)
	}
}

// Status describe la versión actual frente a la última embebida.
type Status struct {
	Version uint
	Latest  uint
	Dirty   bool
}

func (s Status) UpToDate() bool { return !s.Dirty && s.Version == s.Latest }

// MigrateUp aplica las migraciones pendientes. Sin cambios no es error.
func MigrateUp(db *sql.DB, d Dialect) error {
	m, err := newMigrate(db, d)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// No se cierra m: cerraría la conexión, que es del caller.

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// MigrateTo deja el esquema exactamente en version (sube o baja).
func MigrateTo(db *sql.DB, d Dialect, version uint) error {
	m, err := newMigrate(db, d)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	if err := m.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration to %d failed: %w", version, err)
	}
	return nil
}

// CurrentStatus lee la versión del esquema. Una base sin migrar devuelve Version 0.
func CurrentStatus(db *sql.DB, d Dialect) (Status, error) {
	m, err := newMigrate(db, d)
	if err != nil {
		return Status{}, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	latest, err := LatestVersion(d)
	if err != nil {
		return Status{}, err
	}

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return Status{Latest: latest}, nil
		}
		return Status{}, fmt.Errorf("failed to get database version: %w", err)
	}
	return Status{Version: version, Latest: latest, Dirty: dirty}, nil
}

// CheckDBMigrationStatus devuelve nil solo si la base está en la última versión.
func CheckDBMigrationStatus(db *sql.DB, d Dialect) error {
	st, err := CurrentStatus(db, d)
	if err != nil {
		return err
	}
	switch {
	case st.Dirty:
		return fmt.Errorf("database is in dirty state at version %d (migration failed previously)", st.Version)
	case st.Version == 0:
		return fmt.Errorf("database has no schema version (needs migration)")
	case st.Version < st.Latest:
		return fmt.Errorf("database is at version %d but latest is %d (%d migrations behind)",
			st.Version, st.Latest, st.Latest-st.Version)
	case st.Version > st.Latest:
		return fmt.Errorf("database version %d is ahead of binary version %d (binary needs update)",
			st.Version, st.Latest)
	}
	return nil
}

// LatestVersion es la versión más alta embebida para el dialecto.
func LatestVersion(d Dialect) (uint, error) {
	dir, err := d.dir()
	if err != nil {
		return 0, err
	}
	src, err := iofs.New(migrationFiles, dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read migration files: %w", err)
	}
	defer src.Close()
	return getLatestVersion(src)
}

func newMigrate(db *sql.DB, d Dialect) (*migrate.Migrate, error) {
	dir, err := d.dir()
	if err != nil {
		return nil, err
	}

	sourceDriver, err := iofs.New(migrationFiles, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create source driver: %w", err)
	}

	var dbDriver database.Driver
	switch d {
	case Postgres:
		dbDriver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	case SQLite:
		dbDriver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	}
	if err != nil {
		sourceDriver.Close()
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, string(d), dbDriver)
	if err != nil {
		sourceDriver.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func getLatestVersion(src source.Driver) (uint, error) {
	version, err := src.First()
	if err != nil {
		return 0, err
	}

	latest := version
	for {
		next, err := src.Next(latest)
		if err != nil {
			// fin de la lista
			break
		}
		latest = next
	}
	return latest, nil
}
