package healthlogs

import (
	"encoding/json"
	"errors"
	"time"

	"cat-lifecycle/internal/platform/civil"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("health log not found")
)

// Category es el tipo de registro. No cambia después del alta.
type Category string

const (
	CategoryWeight   Category = "WEIGHT"
	CategoryHospital Category = "HOSPITAL"
	CategorySymptom  Category = "SYMPTOM"
	CategoryWater    Category = "WATER"
	CategoryStool    Category = "STOOL"
	CategoryActivity Category = "ACTIVITY"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWeight, CategoryHospital, CategorySymptom, CategoryWater, CategoryStool, CategoryActivity:
		return true
	default:
		return false
	}
}

// Numeric indica si la categoría lleva un valor numérico.
func (c Category) Numeric() bool {
	return c == CategoryWeight || c == CategoryWater || c == CategoryActivity
}

// Entry es una observación puntual de salud.
type Entry struct {
	ID        string
	CatID     string
	Category  Category
	VisitDate civil.Date
	Value     Value // puede ser nil (HOSPITAL/SYMPTOM sin detalle)
	Note      string
	ImageURL  string
	CreatedAt *time.Time
}

type entryJSON struct {
	ID        string          `json:"id,omitempty"`
	CatID     string          `json:"cat_id"`
	Category  Category        `json:"log_type"`
	VisitDate civil.Date      `json:"visit_date"`
	Value     json.RawMessage `json:"value,omitempty"`
	Note      string          `json:"note,omitempty"`
	ImageURL  string          `json:"image_url,omitempty"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	raw, err := EncodeValue(e.Value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entryJSON{
		ID:        e.ID,
		CatID:     e.CatID,
		Category:  e.Category,
		VisitDate: e.VisitDate,
		Value:     raw,
		Note:      e.Note,
		ImageURL:  e.ImageURL,
		CreatedAt: e.CreatedAt,
	})
}

// UnmarshalJSON es tolerante con el valor: filas con un valor ilegible quedan con Value nil
// (los agregados lo cuentan como 0).
func (e *Entry) UnmarshalJSON(b []byte) error {
	var in entryJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	v, err := DecodeValue(in.Category, in.Value)
	if err != nil {
		v = nil
	}
	*e = Entry{
		ID:        in.ID,
		CatID:     in.CatID,
		Category:  in.Category,
		VisitDate: in.VisitDate,
		Value:     v,
		Note:      in.Note,
		ImageURL:  in.ImageURL,
		CreatedAt: in.CreatedAt,
	}
	return nil
}

// Number devuelve el valor numérico del registro, o 0 si no tiene.
func (e Entry) Number() float64 {
	if n, ok := e.Value.(NumericValue); ok {
		return n.Number()
	}
	return 0
}

// Draft es el documento de alta.
type Draft struct {
	CatID     string
	Category  Category
	VisitDate civil.Date
	Value     Value
	Note      string
	ImageURL  string
}

func (d Draft) MarshalJSON() ([]byte, error) {
	raw, err := EncodeValue(d.Value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entryJSON{
		CatID:     d.CatID,
		Category:  d.Category,
		VisitDate: d.VisitDate,
		Value:     raw,
		Note:      d.Note,
		ImageURL:  d.ImageURL,
	})
}

// Patch edita un registro existente. La categoría no se puede cambiar.
type Patch struct {
	VisitDate *civil.Date
	Value     Value
	Note      *string
	ImageURL  *string
}

func (p Patch) IsEmpty() bool {
	return p.VisitDate == nil && p.Value == nil && p.Note == nil && p.ImageURL == nil
}

func (p Patch) MarshalJSON() ([]byte, error) {
	m := map[string]any{}
	if p.VisitDate != nil {
		m["visit_date"] = *p.VisitDate
	}
	if p.Value != nil {
		raw, err := EncodeValue(p.Value)
		if err != nil {
			return nil, err
		}
		m["value"] = raw
	}
	if p.Note != nil {
		m["note"] = *p.Note
	}
	if p.ImageURL != nil {
		m["image_url"] = *p.ImageURL
	}
	return json.Marshal(m)
}

func (p Patch) Apply(e Entry) Entry {
	if p.VisitDate != nil {
		e.VisitDate = *p.VisitDate
	}
	if p.Value != nil {
		e.Value = p.Value
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
	if p.ImageURL != nil {
		e.ImageURL = *p.ImageURL
	}
	return e
}
