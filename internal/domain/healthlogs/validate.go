package healthlogs

import (
	"fmt"
	"strings"
)

func (d Draft) Validate() (Draft, error) {
	d.CatID = strings.TrimSpace(d.CatID)
	d.Note = strings.TrimSpace(d.Note)
	d.ImageURL = strings.TrimSpace(d.ImageURL)

	if d.CatID == "" {
		return Draft{}, fmt.Errorf("%w: cat_id required", ErrInvalidInput)
	}
	if !d.Category.Valid() {
		return Draft{}, fmt.Errorf("%w: unknown log_type %q", ErrInvalidInput, d.Category)
	}
	if d.VisitDate.IsZero() {
		return Draft{}, fmt.Errorf("%w: visit_date required", ErrInvalidInput)
	}
	if err := validateValue(d.Category, d.Value, true); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// Validate valida el patch contra la categoría del registro existente.
func (p Patch) Validate(c Category) (Patch, error) {
	if p.IsEmpty() {
		return Patch{}, fmt.Errorf("%w: empty patch", ErrInvalidInput)
	}
	if p.VisitDate != nil && p.VisitDate.IsZero() {
		return Patch{}, fmt.Errorf("%w: visit_date required", ErrInvalidInput)
	}
	if p.Value != nil {
		if err := validateValue(c, p.Value, false); err != nil {
			return Patch{}, err
		}
	}
	if p.Note != nil {
		n := strings.TrimSpace(*p.Note)
		p.Note = &n
	}
	return p, nil
}

func validateValue(c Category, v Value, required bool) error {
	if v == nil {
		if required && c.Numeric() || required && c == CategoryStool {
			return fmt.Errorf("%w: value required for %s", ErrInvalidInput, c)
		}
		return nil
	}
	if v.Category() != c {
		return fmt.Errorf("%w: value of type %s does not match log_type %s", ErrInvalidInput, v.Category(), c)
	}
	switch x := v.(type) {
	case NumericValue:
		if x.Number() < 0 {
			return fmt.Errorf("%w: value must be >= 0", ErrInvalidInput)
		}
		if c == CategoryWeight && x.Number() == 0 {
			return fmt.Errorf("%w: weight must be > 0", ErrInvalidInput)
		}
	case StoolValue:
		if !x.Status.Valid() {
			return fmt.Errorf("%w: unknown stool status %q", ErrInvalidInput, x.Status)
		}
	}
	return nil
}
