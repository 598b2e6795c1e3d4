package httpapi

import (
	"io"
	"net/http"
	"strings"
	"time"

	"cat-lifecycle/internal/adapters/media"
	"cat-lifecycle/internal/platform/civil"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes cubre el límite más grande (miniaturas) más el overhead multipart.
const maxUploadBytes = 6 << 20

// now usa ?date=YYYY-MM-DD si viene (para ver otro mes); si no, el reloj del store.
func (h *handlers) now(r *http.Request) (time.Time, error) {
	now := h.s.Now()
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return now, nil
	}
	d, err := civil.Parse(raw)
	if err != nil {
		return time.Time{}, err
	}
	return d.In(now.Location()).Add(12 * time.Hour), nil
}

func (h *handlers) dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, err := h.now(r)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		d := h.s.Dashboard(now)
		if d == nil {
			http.Error(w, "no active pet", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}

func (h *handlers) report() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, err := h.now(r)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		rep := h.s.Report(now)
		if rep == nil {
			http.Error(w, "no active pet", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

// upload recibe multipart "file" y devuelve la URL a guardar en image_url / thumbnail_url.
// kind: cat | tip | attachment.
func (h *handlers) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		data := make([]byte, hdr.Size)
		if _, err := io.ReadFull(f, data); err != nil {
			http.Error(w, "could not read file", http.StatusBadRequest)
			return
		}
		file := media.File{Name: hdr.Filename, ContentType: hdr.Header.Get("Content-Type"), Data: data}

		var url string
		switch chi.URLParam(r, "kind") {
		case "cat":
			url, err = h.s.EncodeCatImage(r.Context(), file)
		case "tip":
			url, err = h.s.EncodeThumbnail(r.Context(), file)
		case "attachment":
			url, err = h.s.EncodeAttachment(r.Context(), file)
		default:
			http.Error(w, "unknown upload kind", http.StatusNotFound)
			return
		}
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"url": url})
	}
}
