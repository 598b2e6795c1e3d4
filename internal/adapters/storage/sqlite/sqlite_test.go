package sqlite

import (
	"context"
	"encoding/json"
	"testing"

	"cat-lifecycle/internal/adapters/storage/migrations"
	"cat-lifecycle/internal/ports/persistence"

	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, version uint) persistence.Tables {
	t.Helper()
	db, err := OpenConnection(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.MigrateTo(db, migrations.SQLite, version))
	return NewBackend(db, nil)
}

func TestBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t, 2)

	row, err := b.Insert(ctx, persistence.Cats, json.RawMessage(
		`{"user_id":"u1","name":"나비","birth_date":"2020-03-01","is_neutered":true,"weight_kg":4.2,"bcs":5}`))
	require.NoError(t, err)

	var cat map[string]any
	require.NoError(t, json.Unmarshal(row, &cat))
	require.NotEmpty(t, cat["id"])
	require.NotEmpty(t, cat["created_at"])
	require.Equal(t, true, cat["is_neutered"])
	require.Equal(t, "2020-03-01", cat["birth_date"])
	catID := cat["id"].(string)

	_, err = b.Insert(ctx, persistence.HealthLogs, json.RawMessage(
		`{"cat_id":"`+catID+`","log_type":"WEIGHT","visit_date":"2024-05-01","value":4.4}`))
	require.NoError(t, err)

	res, err := b.Select(ctx, persistence.HealthLogs, persistence.Select().
		Where(persistence.In("cat_id", catID)).WithCount())
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Contains(t, string(res.Rows[0]), `"value":"4.4"`)

	require.NoError(t, b.Update(ctx, persistence.Cats, catID, json.RawMessage(`{"weight_kg":4.4}`)))

	// Borrar el gato cascadea a sus registros.
	require.NoError(t, b.Delete(ctx, persistence.Cats, catID))
	res, err = b.Select(ctx, persistence.HealthLogs, persistence.Select().Where(persistence.Eq("cat_id", catID)))
	require.NoError(t, err)
	require.Empty(t, res.Rows)
}

func TestBackend_MissingBCSColumn(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t, 1)

	row, err := b.Insert(ctx, persistence.Cats, json.RawMessage(`{"user_id":"u1","name":"나비"}`))
	require.NoError(t, err)
	var cat struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(row, &cat))

	err = b.Update(ctx, persistence.Cats, cat.ID, json.RawMessage(`{"bcs":5,"name":"나비2"}`))
	col, ok := persistence.MissingColumn(err)
	require.True(t, ok, "got %v", err)
	require.Equal(t, "bcs", col)

	_, err = b.Insert(ctx, persistence.Cats, json.RawMessage(`{"user_id":"u1","name":"x","bcs":3}`))
	col, ok = persistence.MissingColumn(err)
	require.True(t, ok, "got %v", err)
	require.Equal(t, "bcs", col)
}
