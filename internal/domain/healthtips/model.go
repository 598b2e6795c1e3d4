package healthtips

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("health tip not found")
)

// MaxThumbnailBytes es el tamaño máximo de la miniatura subida desde el panel admin.
const MaxThumbnailBytes = 5 << 20

type Category string

const (
	CategoryHealth   Category = "HEALTH"
	CategoryBehavior Category = "BEHAVIOR"
	CategoryFood     Category = "FOOD"
)

func (c Category) Valid() bool {
	return c == CategoryHealth || c == CategoryBehavior || c == CategoryFood
}

// Tip es contenido editorial de la plataforma (no pertenece a ninguna cuenta).
type Tip struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Category     Category   `json:"category"`
	Content      string     `json:"content"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	VideoURL     string     `json:"video_url,omitempty"`
	IsPublished  bool       `json:"is_published"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

type Draft struct {
	Title        string   `json:"title" yaml:"title"`
	Category     Category `json:"category" yaml:"category"`
	Content      string   `json:"content" yaml:"content"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty" yaml:"thumbnail_url"`
	VideoURL     string   `json:"video_url,omitempty" yaml:"video_url"`
	IsPublished  bool     `json:"is_published" yaml:"is_published"`
}

type Patch struct {
	Title        *string   `json:"title,omitempty"`
	Category     *Category `json:"category,omitempty"`
	Content      *string   `json:"content,omitempty"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	VideoURL     *string   `json:"video_url,omitempty"`
	IsPublished  *bool     `json:"is_published,omitempty"`
}

func (d Draft) Validate() (Draft, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)
	if d.Title == "" || d.Content == "" {
		return Draft{}, fmt.Errorf("%w: title and content required", ErrInvalidInput)
	}
	if !d.Category.Valid() {
		return Draft{}, fmt.Errorf("%w: category must be HEALTH, BEHAVIOR or FOOD", ErrInvalidInput)
	}
	return d, nil
}

func (p Patch) Validate() (Patch, error) {
	if p == (Patch{}) {
		return Patch{}, fmt.Errorf("%w: empty patch", ErrInvalidInput)
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return Patch{}, fmt.Errorf("%w: title required", ErrInvalidInput)
	}
	if p.Category != nil && !p.Category.Valid() {
		return Patch{}, fmt.Errorf("%w: invalid category", ErrInvalidInput)
	}
	return p, nil
}

func (p Patch) Apply(t Tip) Tip {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Content != nil {
		t.Content = *p.Content
	}
	if p.ThumbnailURL != nil {
		t.ThumbnailURL = *p.ThumbnailURL
	}
	if p.VideoURL != nil {
		t.VideoURL = *p.VideoURL
	}
	if p.IsPublished != nil {
		t.IsPublished = *p.IsPublished
	}
	return t
}

// Published filtra lo que ve un usuario no administrador.
func Published(list []Tip) []Tip {
	out := make([]Tip, 0, len(list))
	for _, t := range list {
		if t.IsPublished {
			out = append(out, t)
		}
	}
	return out
}
