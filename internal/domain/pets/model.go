package pets

import (
	"errors"
	"time"

	"cat-lifecycle/internal/platform/civil"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("cat not found")
)

// Gender define el sexo del gato.
// @Enum M, F
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

func (g Gender) Valid() bool { return g == GenderMale || g == GenderFemale }

// Límites del Body Condition Score.
const (
	MinBCS = 1
	MaxBCS = 9
)

// MaxImageBytes es el tamaño máximo de la foto de perfil.
const MaxImageBytes = 1 << 20

// Cat es el perfil de un gato. Pertenece a exactamente una cuenta.
type Cat struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	BirthDate  civil.Date `json:"birth_date"`
	BreedCode  string     `json:"breed_code,omitempty"`
	Gender     Gender     `json:"gender"`
	IsNeutered bool       `json:"is_neutered"`
	ImageURL   string     `json:"image_url,omitempty"`
	WeightKg   float64    `json:"weight_kg"`
	BCS        *int       `json:"bcs,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// Draft es el documento de alta; id y created_at los asigna el backend.
type Draft struct {
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	BirthDate  civil.Date `json:"birth_date"`
	BreedCode  string     `json:"breed_code,omitempty"`
	Gender     Gender     `json:"gender"`
	IsNeutered bool       `json:"is_neutered"`
	ImageURL   string     `json:"image_url,omitempty"`
	WeightKg   float64    `json:"weight_kg"`
	BCS        *int       `json:"bcs,omitempty"`
}

// Patch es un PATCH real: nil = no tocar.
type Patch struct {
	Name       *string     `json:"name,omitempty"`
	BirthDate  *civil.Date `json:"birth_date,omitempty"`
	BreedCode  *string     `json:"breed_code,omitempty"`
	Gender     *Gender     `json:"gender,omitempty"`
	IsNeutered *bool       `json:"is_neutered,omitempty"`
	ImageURL   *string     `json:"image_url,omitempty"`
	WeightKg   *float64    `json:"weight_kg,omitempty"`
	BCS        *int        `json:"bcs,omitempty"`
}

func (p Patch) IsEmpty() bool { return p == Patch{} }

// WithoutBCS devuelve el mismo patch sin el campo bcs.
func (p Patch) WithoutBCS() Patch {
	p.BCS = nil
	return p
}

// Apply aplica el patch sobre c y devuelve la copia resultante.
func (p Patch) Apply(c Cat) Cat {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.BirthDate != nil {
		c.BirthDate = *p.BirthDate
	}
	if p.BreedCode != nil {
		c.BreedCode = *p.BreedCode
	}
	if p.Gender != nil {
		c.Gender = *p.Gender
	}
	if p.IsNeutered != nil {
		c.IsNeutered = *p.IsNeutered
	}
	if p.ImageURL != nil {
		c.ImageURL = *p.ImageURL
	}
	if p.WeightKg != nil {
		c.WeightKg = *p.WeightKg
	}
	if p.BCS != nil {
		v := *p.BCS
		c.BCS = &v
	}
	return c
}
