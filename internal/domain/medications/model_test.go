package medications

import (
	"errors"
	"testing"
	"time"

	"cat-lifecycle/internal/platform/civil"
)

func TestActive(t *testing.T) {
	now := time.Date(2024, 5, 10, 23, 0, 0, 0, time.UTC)
	list := []Medication{
		{ID: "open", CatID: "c1", StartDate: civil.MustParse("2024-05-01")},
		{ID: "ends-today", CatID: "c1", StartDate: civil.MustParse("2024-05-01"), EndDate: civil.MustParse("2024-05-10")},
		{ID: "ended", CatID: "c1", StartDate: civil.MustParse("2024-04-01"), EndDate: civil.MustParse("2024-05-09")},
		{ID: "future", CatID: "c1", StartDate: civil.MustParse("2024-05-11")},
		{ID: "starts-today", CatID: "c1", StartDate: civil.MustParse("2024-05-10")},
		{ID: "other", CatID: "c2", StartDate: civil.MustParse("2024-05-01")},
	}

	got := Active(list, "c1", now)
	ids := map[string]bool{}
	for _, m := range got {
		ids[m.ID] = true
	}
	if len(got) != 3 || !ids["open"] || !ids["ends-today"] || !ids["starts-today"] {
		t.Fatalf("unexpected active set: %v", ids)
	}
}

func TestValidate_EndBeforeStart(t *testing.T) {
	d := Draft{CatID: "c1", Name: "항생제", StartDate: civil.MustParse("2024-05-10"), EndDate: civil.MustParse("2024-05-01")}
	if _, err := d.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	cur := Medication{StartDate: civil.MustParse("2024-05-01"), EndDate: civil.MustParse("2024-05-20")}
	start := civil.MustParse("2024-05-25")
	if _, err := (Patch{StartDate: &start}).Validate(cur); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("patch moving start after end must fail, got %v", err)
	}

	clear := civil.Date{}
	p, err := (Patch{StartDate: &start, EndDate: &clear}).Validate(cur)
	if err != nil {
		t.Fatalf("clearing end date should be valid: %v", err)
	}
	if !p.Apply(cur).EndDate.IsZero() {
		t.Fatalf("end date should be cleared")
	}
}
