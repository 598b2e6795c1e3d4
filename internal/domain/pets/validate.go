package pets

import (
	"fmt"
	"strings"
)

// Validate normaliza y valida el alta. Se llama antes de tocar el backend.
func (d Draft) Validate() (Draft, error) {
	d.UserID = strings.TrimSpace(d.UserID)
	d.Name = strings.TrimSpace(d.Name)
	d.BreedCode = strings.TrimSpace(d.BreedCode)
	d.ImageURL = strings.TrimSpace(d.ImageURL)

	if d.UserID == "" {
		return Draft{}, fmt.Errorf("%w: user_id required", ErrInvalidInput)
	}
	if d.Name == "" {
		return Draft{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if d.BirthDate.IsZero() {
		return Draft{}, fmt.Errorf("%w: birth_date required", ErrInvalidInput)
	}
	if !d.Gender.Valid() {
		return Draft{}, fmt.Errorf("%w: gender must be M or F", ErrInvalidInput)
	}
	if err := validateBreed(d.BreedCode); err != nil {
		return Draft{}, err
	}
	if d.WeightKg < 0 {
		return Draft{}, fmt.Errorf("%w: weight_kg must be >= 0", ErrInvalidInput)
	}
	if err := validateBCS(d.BCS); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func (p Patch) Validate() (Patch, error) {
	if p.IsEmpty() {
		return Patch{}, fmt.Errorf("%w: empty patch", ErrInvalidInput)
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return Patch{}, fmt.Errorf("%w: name required", ErrInvalidInput)
		}
		p.Name = &name
	}
	if p.BirthDate != nil && p.BirthDate.IsZero() {
		return Patch{}, fmt.Errorf("%w: birth_date required", ErrInvalidInput)
	}
	if p.Gender != nil && !p.Gender.Valid() {
		return Patch{}, fmt.Errorf("%w: gender must be M or F", ErrInvalidInput)
	}
	if p.BreedCode != nil {
		code := strings.TrimSpace(*p.BreedCode)
		if err := validateBreed(code); err != nil {
			return Patch{}, err
		}
		p.BreedCode = &code
	}
	if p.WeightKg != nil && *p.WeightKg < 0 {
		return Patch{}, fmt.Errorf("%w: weight_kg must be >= 0", ErrInvalidInput)
	}
	if err := validateBCS(p.BCS); err != nil {
		return Patch{}, err
	}
	return p, nil
}

func validateBreed(code string) error {
	if code == "" {
		return nil
	}
	if _, ok := LookupBreed(code); !ok {
		return fmt.Errorf("%w: unknown breed_code %q", ErrInvalidInput, code)
	}
	return nil
}

func validateBCS(v *int) error {
	if v == nil {
		return nil
	}
	if *v < MinBCS || *v > MaxBCS {
		return fmt.Errorf("%w: bcs must be between %d and %d", ErrInvalidInput, MinBCS, MaxBCS)
	}
	return nil
}
