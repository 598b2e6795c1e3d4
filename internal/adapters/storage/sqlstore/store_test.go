package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"cat-lifecycle/internal/ports/persistence"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

type fakeDialect struct{}

func (fakeDialect) DriverName() string { return "sqlite3" }

func (fakeDialect) ColumnError(err error) (string, bool) {
	const p = "no such column: "
	if i := strings.Index(err.Error(), p); i >= 0 {
		return err.Error()[i+len(p):], true
	}
	return "", false
}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return New(db, fakeDialect{}, nil, "test", WithIDs(func() string { return "new-id" })), mock
}

func TestInsert_AssignsIDAndDecodesRow(t *testing.T) {
	s, mock := newMockStore(t)

	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO health_logs (cat_id, log_type, value, visit_date, id) VALUES (?, ?, ?, ?, ?) RETURNING *`).
		WithArgs("c1", "WEIGHT", "4.5", "2024-05-01", "new-id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "cat_id", "log_type", "value", "visit_date", "created_at"}).
			AddRow("new-id", "c1", "WEIGHT", []byte("4.5"), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), created))

	row, err := s.Insert(context.Background(), persistence.HealthLogs,
		json.RawMessage(`{"cat_id":"c1","log_type":"WEIGHT","value":4.5,"visit_date":"2024-05-01"}`))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(row, &got))
	require.Equal(t, "new-id", got["id"])
	require.Equal(t, "4.5", got["value"])
	require.Equal(t, "2024-05-01", got["visit_date"])
	require.Equal(t, "2024-05-01T09:00:00Z", got["created_at"])
}

func TestUpdate_StripsIDAndReportsMissingRow(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE cats SET is_neutered = ?, name = ? WHERE id = ?`).
		WithArgs(true, "나비", "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE cats SET name = ? WHERE id = ?`).
		WithArgs("x", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Update(context.Background(), persistence.Cats, "c1",
		json.RawMessage(`{"id":"other","name":"나비","is_neutered":true}`)))

	err := s.Update(context.Background(), persistence.Cats, "missing", json.RawMessage(`{"name":"x"}`))
	require.ErrorIs(t, err, persistence.ErrNotFound)
}

func TestUpdate_MissingColumn(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE cats SET bcs = ? WHERE id = ?`).
		WithArgs(int64(5), "c1").
		WillReturnError(errors.New("no such column: bcs"))

	err := s.Update(context.Background(), persistence.Cats, "c1", json.RawMessage(`{"bcs":5}`))
	col, ok := persistence.MissingColumn(err)
	require.True(t, ok)
	require.Equal(t, "bcs", col)
}

func TestSelect_FiltersOrderAndCount(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT(*) FROM todos WHERE cat_id IN (?, ?)`).
		WithArgs("c1", "c2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT * FROM todos WHERE cat_id IN (?, ?) ORDER BY created_at DESC NULLS LAST`).
		WithArgs("c1", "c2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_completed"}).
			AddRow("t2", int64(1)).
			AddRow("t1", int64(0)))

	q := persistence.Select().Where(persistence.In("cat_id", "c1", "c2")).OrderBy("created_at", true).WithCount()
	res, err := s.Select(context.Background(), persistence.Todos, q)
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)
	require.Len(t, res.Rows, 2)
	require.JSONEq(t, `{"id":"t2","is_completed":true}`, string(res.Rows[0]))
	require.JSONEq(t, `{"id":"t1","is_completed":false}`, string(res.Rows[1]))
}

func TestSelect_EmptyInAndBadInput(t *testing.T) {
	s, _ := newMockStore(t)

	res, err := s.Select(context.Background(), persistence.Todos, persistence.Select().Where(persistence.In("cat_id")))
	require.NoError(t, err)
	require.Empty(t, res.Rows)

	_, err = s.Select(context.Background(), "users", persistence.Select())
	require.ErrorIs(t, err, persistence.ErrUnknownTable)

	_, err = s.Insert(context.Background(), persistence.Cats, json.RawMessage(`{"name; drop":"x"}`))
	require.ErrorIs(t, err, persistence.ErrInvalidQuery)
}

func TestFromColumn(t *testing.T) {
	require.Equal(t, true, fromColumn(kindBool, int64(1)))
	require.Equal(t, "2024-02-29", fromColumn(kindDate, "2024-02-29"))
	require.Equal(t, "hello", fromColumn(kindAny, []byte("hello")))
	require.Nil(t, fromColumn(kindDate, nil))
}
