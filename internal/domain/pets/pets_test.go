package pets

import (
	"encoding/json"
	"errors"
	"testing"

	"cat-lifecycle/internal/platform/civil"
)

func intPtr(v int) *int { return &v }

func TestBreeds_Catalog(t *testing.T) {
	all := Breeds()
	if len(all) != 20 {
		t.Fatalf("expected 20 breeds, got %d", len(all))
	}
	if all[0].Code != "KSH" || all[len(all)-1].Code != "MIX" {
		t.Fatalf("unexpected catalog order: first=%s last=%s", all[0].Code, all[len(all)-1].Code)
	}

	b, ok := LookupBreed("rus")
	if !ok || b.Name != "러시안 블루" {
		t.Fatalf("lookup RUS failed: %+v ok=%v", b, ok)
	}
	if _, ok := LookupBreed("XXX"); ok {
		t.Fatalf("unknown code should not resolve")
	}
}

func TestDraft_Validate(t *testing.T) {
	base := Draft{
		UserID:    "u1",
		Name:      "  치즈 ",
		BirthDate: civil.MustParse("2023-01-01"),
		Gender:    GenderMale,
		WeightKg:  4.5,
	}

	got, err := base.Validate()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Name != "치즈" {
		t.Fatalf("name not trimmed: %q", got.Name)
	}

	bad := []Draft{
		func() Draft { d := base; d.Name = " "; return d }(),
		func() Draft { d := base; d.BirthDate = civil.Date{}; return d }(),
		func() Draft { d := base; d.Gender = "X"; return d }(),
		func() Draft { d := base; d.BCS = intPtr(10); return d }(),
		func() Draft { d := base; d.BCS = intPtr(0); return d }(),
		func() Draft { d := base; d.BreedCode = "ZZZ"; return d }(),
		func() Draft { d := base; d.WeightKg = -1; return d }(),
		func() Draft { d := base; d.UserID = ""; return d }(),
	}
	for i, d := range bad {
		if _, err := d.Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestPatch_ApplyAndJSON(t *testing.T) {
	w := 5.1
	name := "나비"
	p := Patch{Name: &name, WeightKg: &w, BCS: intPtr(6)}

	c := Cat{ID: "c1", Name: "치즈", WeightKg: 4.5}
	out := p.Apply(c)
	if out.Name != "나비" || out.WeightKg != 5.1 || out.BCS == nil || *out.BCS != 6 {
		t.Fatalf("apply mismatch: %+v", out)
	}
	if c.Name != "치즈" {
		t.Fatalf("apply must not mutate the input")
	}

	b, _ := json.Marshal(p.WithoutBCS())
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if _, ok := m["bcs"]; ok {
		t.Fatalf("bcs must be stripped: %s", b)
	}
	if len(m) != 2 {
		t.Fatalf("only present fields should be encoded: %s", b)
	}

	if _, err := (Patch{}).Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty patch must be invalid, got %v", err)
	}
}

func TestOwnership(t *testing.T) {
	cats := []Cat{{ID: "a", UserID: "u1"}, {ID: "b", UserID: "u2"}}

	if i := IndexOf(cats, "b"); i != 1 {
		t.Fatalf("expected index 1, got %d", i)
	}
	if i := IndexOf(cats, "zz"); i != -1 {
		t.Fatalf("expected -1 for unknown id, got %d", i)
	}
	if !OwnedBy(cats[0], "u1") || OwnedBy(cats[1], "u1") {
		t.Fatalf("ownership mismatch")
	}
	if OwnedBy(Cat{ID: "c"}, "") {
		t.Fatalf("empty user must not own anything")
	}
	if ids := IDs(cats); len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
