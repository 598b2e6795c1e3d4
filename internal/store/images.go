package store

import (
	"context"

	"cat-lifecycle/internal/adapters/media"
	"cat-lifecycle/internal/domain/healthtips"
	"cat-lifecycle/internal/domain/pets"
)

// EncodeCatImage convierte la foto de perfil en lo que se guarda en image_url.
func (s *Store) EncodeCatImage(ctx context.Context, f media.File) (string, error) {
	return s.media.Encode(ctx, f, pets.MaxImageBytes)
}

// EncodeThumbnail hace lo mismo para la miniatura de un tip.
func (s *Store) EncodeThumbnail(ctx context.Context, f media.File) (string, error) {
	return s.media.Encode(ctx, f, healthtips.MaxThumbnailBytes)
}

// EncodeAttachment es para fotos de registros y chequeos; usa el límite de la foto de perfil.
func (s *Store) EncodeAttachment(ctx context.Context, f media.File) (string, error) {
	return s.media.Encode(ctx, f, pets.MaxImageBytes)
}
