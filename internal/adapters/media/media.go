// Package media convierte archivos subidos en algo embebible en un documento:
// un data URL o la URL pública de un objeto.
package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTooLarge = errors.New("media: file too large")
	ErrEmpty    = errors.New("media: empty file")
)

// File es el archivo tal como lo entrega la vista.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Encoder devuelve el string que se guarda en image_url / thumbnail_url.
type Encoder interface {
	Encode(ctx context.Context, f File, maxBytes int64) (string, error)
}

func check(f File, maxBytes int64) (string, error) {
	if len(f.Data) == 0 {
		return "", ErrEmpty
	}
	if maxBytes > 0 && int64(len(f.Data)) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(f.Data), maxBytes)
	}
	// Los formularios multipart mandan octet-stream cuando el navegador no sabe el tipo.
	ct := f.ContentType
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(f.Data)
	}
	return ct, nil
}
