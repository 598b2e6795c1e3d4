// Package httpapi expone el store como una superficie JSON local para la vista.
// Los handlers son closures sobre el store, uno por acción.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"cat-lifecycle/internal/adapters/media"
	"cat-lifecycle/internal/domain/accounts"
	"cat-lifecycle/internal/domain/appointments"
	"cat-lifecycle/internal/domain/healthlogs"
	"cat-lifecycle/internal/domain/healthtips"
	"cat-lifecycle/internal/domain/homechecks"
	"cat-lifecycle/internal/domain/medications"
	"cat-lifecycle/internal/domain/pets"
	"cat-lifecycle/internal/domain/todos"
	"cat-lifecycle/internal/middleware"
	"cat-lifecycle/internal/platform/logger"
	"cat-lifecycle/internal/ports/auth"
	"cat-lifecycle/internal/ports/persistence"
	"cat-lifecycle/internal/store"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta todas las rutas de la vista sobre r.
func RegisterRoutes(r chi.Router, s *store.Store, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	h := &handlers{s: s, log: log}

	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", h.login())
		ar.Post("/email", h.loginWithEmail())
		ar.Get("/callback", h.callback())
		ar.Post("/session", h.setSession())
		ar.Post("/demo", h.demo())
		ar.Post("/logout", h.logout())
	})
	r.Post("/session/load", h.load())
	r.Get("/state", h.state())
	r.Get("/breeds", h.breeds())
	r.Get("/vaccines/schedule", h.vaccineSchedule())

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAccount(s))

		pr.Get("/dashboard", h.dashboard())
		pr.Get("/report", h.report())
		pr.Post("/uploads/{kind}", h.upload())

		pr.Route("/cats", func(cr chi.Router) {
			cr.Post("/", h.addCat())
			cr.Patch("/{id}", h.updateCat())
			cr.Delete("/{id}", h.deleteCat())
			cr.Post("/{id}/select", h.selectCat())
		})
		pr.Route("/logs", func(lr chi.Router) {
			lr.Post("/", h.addLog())
			lr.Patch("/{id}", h.updateLog())
			lr.Delete("/{id}", h.deleteLog())
		})
		pr.Route("/todos", func(tr chi.Router) {
			tr.Post("/", h.addTodo())
			tr.Post("/{id}/toggle", h.toggleTodo())
			tr.Delete("/{id}", h.deleteTodo())
		})
		pr.Route("/home-checks", func(hr chi.Router) {
			hr.Post("/", h.addHomeCheck())
			hr.Patch("/{id}", h.updateHomeCheck())
			hr.Delete("/{id}", h.deleteHomeCheck())
		})
		pr.Route("/appointments", func(ar chi.Router) {
			ar.Post("/", h.addAppointment())
			ar.Patch("/{id}", h.updateAppointment())
			ar.Delete("/{id}", h.deleteAppointment())
		})
		pr.Route("/medications", func(mr chi.Router) {
			mr.Post("/", h.addMedication())
			mr.Patch("/{id}", h.updateMedication())
			mr.Delete("/{id}", h.deleteMedication())
		})
	})

	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAdmin(s))

		ar.Route("/tips", func(tr chi.Router) {
			tr.Post("/", h.addTip())
			tr.Patch("/{id}", h.updateTip())
			tr.Delete("/{id}", h.deleteTip())
		})
		ar.Route("/admin", func(adm chi.Router) {
			adm.Get("/profiles", h.listProfiles())
			adm.Put("/profiles/{id}/admin", h.setAdmin())
			adm.Get("/stats", h.adminStats())
		})
	})
}

type handlers struct {
	s   *store.Store
	log logger.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

var invalidInput = []error{
	accounts.ErrInvalidInput,
	pets.ErrInvalidInput,
	healthlogs.ErrInvalidInput,
	todos.ErrInvalidInput,
	homechecks.ErrInvalidInput,
	appointments.ErrInvalidInput,
	medications.ErrInvalidInput,
	healthtips.ErrInvalidInput,
	media.ErrTooLarge,
	media.ErrEmpty,
	store.ErrNoActivePet,
}

var notFound = []error{
	persistence.ErrNotFound,
	pets.ErrNotFound,
	healthlogs.ErrNotFound,
	todos.ErrNotFound,
	homechecks.ErrNotFound,
	appointments.ErrNotFound,
	medications.ErrNotFound,
	healthtips.ErrNotFound,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// statusFor traduce errores del store a códigos HTTP.
func statusFor(err error) int {
	var (
		backendErr *persistence.BackendError
		columnErr  *persistence.ColumnError
	)
	switch {
	case isAny(err, invalidInput):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, accounts.ErrForbidden):
		return http.StatusForbidden
	case isAny(err, notFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrUnsupported):
		return http.StatusNotImplemented
	case errors.Is(err, store.ErrNoBackend):
		return http.StatusServiceUnavailable
	case errors.As(err, &backendErr), errors.As(err, &columnErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail escribe el error; los 500 no exponen el mensaje.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", map[string]any{"path": r.URL.Path, "err": err})
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func (h *handlers) writeState(w http.ResponseWriter, status int) {
	writeJSON(w, status, h.s.Snapshot())
}
