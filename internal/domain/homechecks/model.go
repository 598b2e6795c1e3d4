package homechecks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cat-lifecycle/internal/platform/civil"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("home check not found")
)

type CheckType string

const (
	CheckUrine  CheckType = "URINE"
	CheckDental CheckType = "DENTAL"
)

func (c CheckType) Valid() bool { return c == CheckUrine || c == CheckDental }

type Result string

const (
	ResultNormal  Result = "NORMAL"
	ResultWarning Result = "WARNING"
	ResultDanger  Result = "DANGER"
)

func (r Result) Valid() bool {
	return r == ResultNormal || r == ResultWarning || r == ResultDanger
}

// Check es un chequeo hecho en casa (orina o dientes).
type Check struct {
	ID        string     `json:"id"`
	CatID     string     `json:"cat_id"`
	CheckType CheckType  `json:"check_type"`
	Result    Result     `json:"result"`
	CheckDate civil.Date `json:"check_date"`
	Note      string     `json:"note,omitempty"`
	ImageURL  string     `json:"image_url,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type Draft struct {
	CatID     string     `json:"cat_id"`
	CheckType CheckType  `json:"check_type"`
	Result    Result     `json:"result"`
	CheckDate civil.Date `json:"check_date"`
	Note      string     `json:"note,omitempty"`
	ImageURL  string     `json:"image_url,omitempty"`
}

type Patch struct {
	Result    *Result     `json:"result,omitempty"`
	CheckDate *civil.Date `json:"check_date,omitempty"`
	Note      *string     `json:"note,omitempty"`
	ImageURL  *string     `json:"image_url,omitempty"`
}

func (d Draft) Validate() (Draft, error) {
	d.CatID = strings.TrimSpace(d.CatID)
	d.Note = strings.TrimSpace(d.Note)
	if d.CatID == "" {
		return Draft{}, fmt.Errorf("%w: cat_id required", ErrInvalidInput)
	}
	if !d.CheckType.Valid() {
		return Draft{}, fmt.Errorf("%w: check_type must be URINE or DENTAL", ErrInvalidInput)
	}
	if !d.Result.Valid() {
		return Draft{}, fmt.Errorf("%w: result must be NORMAL, WARNING or DANGER", ErrInvalidInput)
	}
	if d.CheckDate.IsZero() {
		return Draft{}, fmt.Errorf("%w: check_date required", ErrInvalidInput)
	}
	return d, nil
}

func (p Patch) Validate() (Patch, error) {
	if p == (Patch{}) {
		return Patch{}, fmt.Errorf("%w: empty patch", ErrInvalidInput)
	}
	if p.Result != nil && !p.Result.Valid() {
		return Patch{}, fmt.Errorf("%w: invalid result", ErrInvalidInput)
	}
	if p.CheckDate != nil && p.CheckDate.IsZero() {
		return Patch{}, fmt.Errorf("%w: check_date required", ErrInvalidInput)
	}
	return p, nil
}

func (p Patch) Apply(c Check) Check {
	if p.Result != nil {
		c.Result = *p.Result
	}
	if p.CheckDate != nil {
		c.CheckDate = *p.CheckDate
	}
	if p.Note != nil {
		c.Note = *p.Note
	}
	if p.ImageURL != nil {
		c.ImageURL = *p.ImageURL
	}
	return c
}
