package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLatestVersion(t *testing.T) {
	for _, d := range []Dialect{Postgres, SQLite} {
		v, err := LatestVersion(d)
		require.NoError(t, err)
		require.Equal(t, uint(2), v, d)
	}
	_, err := LatestVersion("oracle")
	require.Error(t, err)
}

func TestMigrateUp_SQLite(t *testing.T) {
	db := openSQLite(t)

	require.Error(t, CheckDBMigrationStatus(db, SQLite))

	require.NoError(t, MigrateUp(db, SQLite))
	require.NoError(t, CheckDBMigrationStatus(db, SQLite))

	// idempotente
	require.NoError(t, MigrateUp(db, SQLite))

	_, err := db.Exec(`INSERT INTO cats (id, user_id, name, bcs) VALUES ('c1', 'u1', '나비', 5)`)
	require.NoError(t, err)
}

func TestMigrateTo_WithoutBCS(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, MigrateTo(db, SQLite, 1))

	st, err := CurrentStatus(db, SQLite)
	require.NoError(t, err)
	require.Equal(t, uint(1), st.Version)
	require.False(t, st.UpToDate())

	_, err = db.Exec(`INSERT INTO cats (id, user_id, name, bcs) VALUES ('c1', 'u1', '나비', 5)`)
	require.Error(t, err)
}
