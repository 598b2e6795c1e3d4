package appointments

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cat-lifecycle/internal/platform/civil"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("appointment not found")
)

// TimeLayout es el formato de la hora del turno.
const TimeLayout = "15:04"

// Appointment es una visita al hospital agendada. No tiene estado:
// "próxima" o "pasada" se calcula contra el reloj.
type Appointment struct {
	ID           string     `json:"id"`
	CatID        string     `json:"cat_id"`
	Title        string     `json:"title"`
	Date         civil.Date `json:"date"`
	Time         string     `json:"time"`
	HospitalName string     `json:"hospital_name"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

type Draft struct {
	CatID        string     `json:"cat_id"`
	Title        string     `json:"title"`
	Date         civil.Date `json:"date"`
	Time         string     `json:"time"`
	HospitalName string     `json:"hospital_name"`
	Notes        string     `json:"notes,omitempty"`
}

type Patch struct {
	Title        *string     `json:"title,omitempty"`
	Date         *civil.Date `json:"date,omitempty"`
	Time         *string     `json:"time,omitempty"`
	HospitalName *string     `json:"hospital_name,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
}

func (d Draft) Validate() (Draft, error) {
	d.CatID = strings.TrimSpace(d.CatID)
	d.Title = strings.TrimSpace(d.Title)
	d.Time = strings.TrimSpace(d.Time)
	d.HospitalName = strings.TrimSpace(d.HospitalName)
	d.Notes = strings.TrimSpace(d.Notes)

	if d.CatID == "" || d.Title == "" || d.Date.IsZero() || d.HospitalName == "" {
		return Draft{}, fmt.Errorf("%w: title, date, time and hospital_name are required", ErrInvalidInput)
	}
	if _, err := time.Parse(TimeLayout, d.Time); err != nil {
		return Draft{}, fmt.Errorf("%w: time must be HH:mm", ErrInvalidInput)
	}
	return d, nil
}

func (p Patch) Validate() (Patch, error) {
	if p == (Patch{}) {
		return Patch{}, fmt.Errorf("%w: empty patch", ErrInvalidInput)
	}
	for _, f := range []*string{p.Title, p.HospitalName} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return Patch{}, fmt.Errorf("%w: title and hospital_name cannot be empty", ErrInvalidInput)
		}
	}
	if p.Date != nil && p.Date.IsZero() {
		return Patch{}, fmt.Errorf("%w: date required", ErrInvalidInput)
	}
	if p.Time != nil {
		if _, err := time.Parse(TimeLayout, strings.TrimSpace(*p.Time)); err != nil {
			return Patch{}, fmt.Errorf("%w: time must be HH:mm", ErrInvalidInput)
		}
	}
	return p, nil
}

func (p Patch) Apply(a Appointment) Appointment {
	if p.Title != nil {
		a.Title = strings.TrimSpace(*p.Title)
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Time != nil {
		a.Time = strings.TrimSpace(*p.Time)
	}
	if p.HospitalName != nil {
		a.HospitalName = strings.TrimSpace(*p.HospitalName)
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	return a
}

// At combina fecha y hora en loc. Una hora ilegible cuenta como medianoche.
func (a Appointment) At(loc *time.Location) time.Time {
	t := a.Date.In(loc)
	if hm, err := time.Parse(TimeLayout, a.Time); err == nil {
		t = t.Add(time.Duration(hm.Hour())*time.Hour + time.Duration(hm.Minute())*time.Minute)
	}
	return t
}

// SortByDate ordena ascendente por fecha (estable, la hora no participa).
func SortByDate(list []Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date.Before(list[j].Date)
	})
}

// Upcoming devuelve el turno más cercano del gato con fecha+hora >= now, o nil.
func Upcoming(list []Appointment, catID string, now time.Time) *Appointment {
	var best *Appointment
	for i := range list {
		a := list[i]
		if a.CatID != catID {
			continue
		}
		at := a.At(now.Location())
		if at.Before(now) {
			continue
		}
		if best == nil || at.Before(best.At(now.Location())) {
			cp := a
			best = &cp
		}
	}
	return best
}
