package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"cat-lifecycle/internal/domain/accounts"
	"cat-lifecycle/internal/ports/persistence"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func fixedClock() func() time.Time {
	t := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestTables_InsertAssignsIDAndTimestamp(t *testing.T) {
	tb := NewTables(WithIDs(seqIDs()), WithClock(fixedClock()))
	ctx := context.Background()

	row, err := tb.Insert(ctx, persistence.Todos, json.RawMessage(`{"cat_id":"c1","content":"빗질"}`))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	var m map[string]any
	_ = json.Unmarshal(row, &m)
	if m["id"] != "id-1" || m["created_at"] != "2024-05-01T09:00:01Z" || m["content"] != "빗질" {
		t.Fatalf("unexpected row: %s", row)
	}

	if _, err := tb.Insert(ctx, persistence.Todos, json.RawMessage(`{"id":"id-1"}`)); err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if _, err := tb.Insert(ctx, "nope", json.RawMessage(`{}`)); !errors.Is(err, persistence.ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
}

func TestTables_SelectFiltersOrderAndCount(t *testing.T) {
	tb := NewTables(WithIDs(seqIDs()), WithClock(fixedClock()))
	ctx := context.Background()

	for _, doc := range []string{
		`{"cat_id":"c1","date":"2024-06-01","weight":4.5}`,
		`{"cat_id":"c2","date":"2024-05-01","weight":10}`,
		`{"cat_id":"c1","date":"2024-05-15","weight":4.25}`,
		`{"cat_id":"c3","date":"2024-04-01","weight":3}`,
	} {
		if _, err := tb.Insert(ctx, persistence.Appointments, json.RawMessage(doc)); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	res, err := tb.Select(ctx, persistence.Appointments,
		persistence.Select().Where(persistence.In("cat_id", "c1", "c2")).OrderBy("date", false).WithCount())
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if res.Count != 3 || len(res.Rows) != 3 {
		t.Fatalf("expected 3 rows, got count=%d rows=%d", res.Count, len(res.Rows))
	}
	var got []string
	for _, r := range res.Rows {
		var m map[string]any
		_ = json.Unmarshal(r, &m)
		got = append(got, m["date"].(string))
	}
	if got[0] != "2024-05-01" || got[1] != "2024-05-15" || got[2] != "2024-06-01" {
		t.Fatalf("unexpected order: %v", got)
	}

	// Orden numérico, no lexicográfico.
	res, _ = tb.Select(ctx, persistence.Appointments, persistence.Select().OrderBy("weight", true).WithLimit(2))
	var first map[string]any
	_ = json.Unmarshal(res.Rows[0], &first)
	if first["weight"] != float64(10) || len(res.Rows) != 2 {
		t.Fatalf("expected numeric desc order with limit, got %s (%d rows)", res.Rows[0], len(res.Rows))
	}

	n, err := persistence.Count(ctx, tb, persistence.Appointments)
	if err != nil || n != 4 {
		t.Fatalf("count = %d err=%v", n, err)
	}
}

func TestTables_UpdateAndDelete(t *testing.T) {
	tb := NewTables(WithIDs(seqIDs()))
	ctx := context.Background()

	if _, err := tb.Insert(ctx, persistence.Cats, json.RawMessage(`{"name":"치즈","weight_kg":4.5}`)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := tb.Update(ctx, persistence.Cats, "id-1", json.RawMessage(`{"weight_kg":4.2,"id":"hijack"}`)); err != nil {
		t.Fatalf("update: %v", err)
	}

	res, _ := tb.Select(ctx, persistence.Cats, persistence.Select().Where(persistence.Eq("id", "id-1")))
	var m map[string]any
	_ = json.Unmarshal(res.Rows[0], &m)
	if m["weight_kg"] != 4.2 || m["name"] != "치즈" || m["id"] != "id-1" {
		t.Fatalf("unexpected row after patch: %s", res.Rows[0])
	}

	if err := tb.Update(ctx, persistence.Cats, "missing", json.RawMessage(`{}`)); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := tb.Delete(ctx, persistence.Cats, "id-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if tb.Len(persistence.Cats) != 0 {
		t.Fatalf("row should be gone")
	}
}

func TestTables_MissingColumn(t *testing.T) {
	tb := NewTables(WithIDs(seqIDs()), WithoutColumns(persistence.Cats, "bcs"))
	ctx := context.Background()

	_, _ = tb.Insert(ctx, persistence.Cats, json.RawMessage(`{"name":"치즈"}`))
	err := tb.Update(ctx, persistence.Cats, "id-1", json.RawMessage(`{"bcs":5,"name":"나비"}`))
	col, ok := persistence.MissingColumn(err)
	if !ok || col != "bcs" {
		t.Fatalf("expected missing bcs column, got %v", err)
	}
}

func TestNewDemoBackend_Fixture(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	b, err := NewDemoBackend(func() time.Time { return now })
	if err != nil {
		t.Fatalf("demo backend: %v", err)
	}
	ctx := context.Background()

	id, err := b.Auth().CurrentUser(ctx)
	if err != nil || id == nil || id.ID != accounts.DemoUserID {
		t.Fatalf("unexpected demo identity %+v err=%v", id, err)
	}

	profiles, err := persistence.SelectAs[accounts.Profile](ctx, b, persistence.Profiles, persistence.Select())
	if err != nil || len(profiles) != 1 || !profiles[0].IsAdmin || profiles[0].SubscriptionTier != accounts.TierBeta {
		t.Fatalf("unexpected demo profile %+v err=%v", profiles, err)
	}

	res, _ := b.Select(ctx, persistence.Appointments, persistence.Select().Where(persistence.Eq("id", DemoAppointmentID)))
	if len(res.Rows) != 1 {
		t.Fatalf("demo appointment missing")
	}
	var apt map[string]any
	_ = json.Unmarshal(res.Rows[0], &apt)
	if apt["date"] != "2024-05-13" || apt["time"] != "14:00" {
		t.Fatalf("unexpected demo appointment: %s", res.Rows[0])
	}

	if b.Len(persistence.HealthTips) != 10 {
		t.Fatalf("demo tips = %d", b.Len(persistence.HealthTips))
	}

	if _, err := b.Auth().SignInWithOAuth(ctx, "google", ""); err == nil {
		t.Fatalf("demo backend must not support oauth")
	}
	_ = b.Auth().SignOut(ctx)
	if id, _ := b.Auth().CurrentUser(ctx); id != nil {
		t.Fatalf("identity should be cleared after sign out")
	}
}
