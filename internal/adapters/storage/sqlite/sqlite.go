// Package sqlite es el backend local de un solo archivo (o :memory:).
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"cat-lifecycle/internal/adapters/storage/sqlstore"
	"cat-lifecycle/internal/ports/auth"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// OpenConnection abre la base y activa foreign keys (cascada al borrar gatos).
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Una sola conexión: ":memory:" es por conexión y SQLite serializa escrituras igual.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return db, nil
}

func NewBackend(db *sql.DB, provider auth.Provider, opts ...sqlstore.Option) *sqlstore.Store {
	return sqlstore.New(db, Dialect{}, provider, "sqlite", opts...)
}

type Dialect struct{}

func (Dialect) DriverName() string { return "sqlite3" }

var (
	noSuchColumnRe = regexp.MustCompile(`no such column: (?:[A-Za-z0-9_]+\.)?([A-Za-z0-9_]+)`)
	noColumnNamed  = regexp.MustCompile(`has no column named ([A-Za-z0-9_]+)`)
)

func (Dialect) ColumnError(err error) (string, bool) {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return "", false
	}
	msg := se.Error()
	for _, re := range []*regexp.Regexp{noSuchColumnRe, noColumnNamed} {
		if m := re.FindStringSubmatch(msg); m != nil {
			return m[1], true
		}
	}
	return "", false
}
