package persistence

import (
	"errors"
	"fmt"
	"testing"
)

func TestQuery_Validate(t *testing.T) {
	ok := Select().Where(Eq("user_id", "u1"), In("cat_id", "a", "b")).OrderBy("created_at", true).WithCount()
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	bad := []Query{
		Select().Where(Eq("user_id; drop table cats", "x")),
		Select().OrderBy("Created-At", false),
		Select().Where(Filter{Column: "id", Op: "like", Values: []string{"x"}}),
		Select().Where(Filter{Column: "id", Op: OpEq}),
		Select().WithLimit(-1),
	}
	for i, q := range bad {
		if err := q.Validate(); !errors.Is(err, ErrInvalidQuery) {
			t.Fatalf("case %d: expected ErrInvalidQuery, got %v", i, err)
		}
	}
}

func TestQuery_WhereDoesNotAlias(t *testing.T) {
	base := Select().Where(Eq("a", "1"))
	q1 := base.Where(Eq("b", "2"))
	q2 := base.Where(Eq("c", "3"))
	if len(base.Filters) != 1 || q1.Filters[1].Column != "b" || q2.Filters[1].Column != "c" {
		t.Fatalf("builder must copy filters: base=%v q1=%v q2=%v", base.Filters, q1.Filters, q2.Filters)
	}
	if !Select().Where(In("cat_id")).Empty() {
		t.Fatalf("empty in-filter should mark the query as empty")
	}
}

func TestMissingColumn(t *testing.T) {
	err := fmt.Errorf("update cats: %w", &ColumnError{Table: Cats, Column: "bcs"})
	col, ok := MissingColumn(err)
	if !ok || col != "bcs" {
		t.Fatalf("expected bcs, got %q ok=%v", col, ok)
	}
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("ColumnError should match ErrColumnNotFound")
	}
	if _, ok := MissingColumn(errors.New("boom")); ok {
		t.Fatalf("plain error is not a column error")
	}
}
