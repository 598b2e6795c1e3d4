package todos

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cat-lifecycle/internal/platform/civil"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("todo not found")
)

// Todo es un ítem del checklist de un gato.
type Todo struct {
	ID          string     `json:"id"`
	CatID       string     `json:"cat_id"`
	Content     string     `json:"content"`
	IsCompleted bool       `json:"is_completed"`
	DueDate     civil.Date `json:"due_date"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

type Draft struct {
	CatID       string     `json:"cat_id"`
	Content     string     `json:"content"`
	IsCompleted bool       `json:"is_completed"`
	DueDate     civil.Date `json:"due_date"`
}

// Toggle es el único patch que admite un todo.
type Toggle struct {
	IsCompleted bool `json:"is_completed"`
}

func (d Draft) Validate() (Draft, error) {
	d.CatID = strings.TrimSpace(d.CatID)
	d.Content = strings.TrimSpace(d.Content)
	if d.CatID == "" || d.Content == "" {
		return Draft{}, fmt.Errorf("%w: content required", ErrInvalidInput)
	}
	return d, nil
}
