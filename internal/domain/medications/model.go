package medications

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cat-lifecycle/internal/platform/civil"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
)

// Medication es un tratamiento. "Activo" se calcula, no se guarda.
type Medication struct {
	ID        string     `json:"id"`
	CatID     string     `json:"cat_id"`
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage"`
	Frequency string     `json:"frequency"`
	StartDate civil.Date `json:"start_date"`
	EndDate   civil.Date `json:"end_date"` // cero = sin fin
	Notes     string     `json:"notes,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type Draft struct {
	CatID     string     `json:"cat_id"`
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage"`
	Frequency string     `json:"frequency"`
	StartDate civil.Date `json:"start_date"`
	EndDate   civil.Date `json:"end_date"`
	Notes     string     `json:"notes,omitempty"`
}

type Patch struct {
	Name      *string     `json:"name,omitempty"`
	Dosage    *string     `json:"dosage,omitempty"`
	Frequency *string     `json:"frequency,omitempty"`
	StartDate *civil.Date `json:"start_date,omitempty"`
	EndDate   *civil.Date `json:"end_date,omitempty"` // puntero a fecha cero = quitar fin
	Notes     *string     `json:"notes,omitempty"`
}

func (d Draft) Validate() (Draft, error) {
	d.CatID = strings.TrimSpace(d.CatID)
	d.Name = strings.TrimSpace(d.Name)
	d.Dosage = strings.TrimSpace(d.Dosage)
	d.Frequency = strings.TrimSpace(d.Frequency)
	d.Notes = strings.TrimSpace(d.Notes)

	if d.CatID == "" || d.Name == "" {
		return Draft{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if d.StartDate.IsZero() {
		return Draft{}, fmt.Errorf("%w: start_date required", ErrInvalidInput)
	}
	if !d.EndDate.IsZero() && d.EndDate.Before(d.StartDate) {
		return Draft{}, fmt.Errorf("%w: end_date before start_date", ErrInvalidInput)
	}
	return d, nil
}

func (p Patch) Validate(current Medication) (Patch, error) {
	if p == (Patch{}) {
		return Patch{}, fmt.Errorf("%w: empty patch", ErrInvalidInput)
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Patch{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if p.StartDate != nil && p.StartDate.IsZero() {
		return Patch{}, fmt.Errorf("%w: start_date required", ErrInvalidInput)
	}
	next := p.Apply(current)
	if !next.EndDate.IsZero() && next.EndDate.Before(next.StartDate) {
		return Patch{}, fmt.Errorf("%w: end_date before start_date", ErrInvalidInput)
	}
	return p, nil
}

func (p Patch) Apply(m Medication) Medication {
	if p.Name != nil {
		m.Name = strings.TrimSpace(*p.Name)
	}
	if p.Dosage != nil {
		m.Dosage = *p.Dosage
	}
	if p.Frequency != nil {
		m.Frequency = *p.Frequency
	}
	if p.StartDate != nil {
		m.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		m.EndDate = *p.EndDate
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	return m
}

// IsActive: start <= hoy <= end (días completos; end cero = sin fin).
func (m Medication) IsActive(now time.Time) bool {
	today := civil.Of(now)
	if today.Before(m.StartDate) {
		return false
	}
	return m.EndDate.IsZero() || !today.After(m.EndDate)
}

// Active filtra los tratamientos vigentes de un gato.
func Active(list []Medication, catID string, now time.Time) []Medication {
	out := make([]Medication, 0)
	for _, m := range list {
		if m.CatID == catID && m.IsActive(now) {
			out = append(out, m)
		}
	}
	return out
}
