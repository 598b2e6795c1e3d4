package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestDialect_ColumnError(t *testing.T) {
	d := Dialect{}

	err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "42703", Message: `column "bcs" of relation "cats" does not exist`})
	col, ok := d.ColumnError(err)
	require.True(t, ok)
	require.Equal(t, "bcs", col)

	col, ok = d.ColumnError(&pgconn.PgError{Code: "42703", Message: "column cats.bcs does not exist"})
	require.True(t, ok)
	require.Equal(t, "bcs", col)

	_, ok = d.ColumnError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})
	require.False(t, ok)

	_, ok = d.ColumnError(errors.New("boom"))
	require.False(t, ok)
}

func TestOpen_BadDSN(t *testing.T) {
	_, err := Open("postgres://nobody@127.0.0.1:1/none?connect_timeout=1")
	require.Error(t, err)
}
