package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"cat-lifecycle/internal/adapters/storage/sqlstore"
	"cat-lifecycle/internal/ports/auth"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// NewBackend arma el backend postgres; la identidad la resuelve provider.
func NewBackend(db *sql.DB, provider auth.Provider, opts ...sqlstore.Option) *sqlstore.Store {
	return sqlstore.New(db, Dialect{}, provider, "postgres", opts...)
}

type Dialect struct{}

func (Dialect) DriverName() string { return "pgx" }

const undefinedColumn = "42703"

var columnNameRe = regexp.MustCompile(`column "?(?:[A-Za-z0-9_]+\.)?([A-Za-z0-9_]+)"?`)

func (Dialect) ColumnError(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != undefinedColumn {
		return "", false
	}
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName, true
	}
	m := columnNameRe.FindStringSubmatch(pgErr.Message)
	if m == nil {
		return "", false
	}
	return m[1], true
}
