package httpapi

import (
	"encoding/json"
	"net/http"

	"cat-lifecycle/internal/domain/appointments"
	"cat-lifecycle/internal/domain/healthlogs"
	"cat-lifecycle/internal/domain/homechecks"
	"cat-lifecycle/internal/domain/medications"
	"cat-lifecycle/internal/domain/pets"
	"cat-lifecycle/internal/domain/todos"
	"cat-lifecycle/internal/platform/civil"

	"github.com/go-chi/chi/v5"
)

// ---- Cats ----

func (h *handlers) addCat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pets.Draft
		if !decode(w, r, &req) {
			return
		}
		c, err := h.s.AddCat(r.Context(), req)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func (h *handlers) updateCat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pets.Patch
		if !decode(w, r, &req) {
			return
		}
		if err := h.s.UpdateCat(r.Context(), chi.URLParam(r, "id"), req); err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, h.s.CurrentCat())
	}
}

func (h *handlers) deleteCat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.s.DeleteCat(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handlers) selectCat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.s.SetCurrentCat(chi.URLParam(r, "id")); err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, h.s.CurrentCat())
	}
}

// ---- Health logs ----

// El valor depende de log_type, así que llega crudo y se decodifica después.
type logRequest struct {
	CatID     string              `json:"cat_id"`
	LogType   healthlogs.Category `json:"log_type"`
	VisitDate civil.Date          `json:"visit_date"`
	Value     json.RawMessage     `json:"value"`
	Note      string              `json:"note"`
	ImageURL  string              `json:"image_url"`
}

type logPatchRequest struct {
	VisitDate *civil.Date     `json:"visit_date"`
	Value     json.RawMessage `json:"value"`
	Note      *string         `json:"note"`
	ImageURL  *string         `json:"image_url"`
}

func (h *handlers) addLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req logRequest
		if !decode(w, r, &req) {
			return
		}
		v, err := healthlogs.DecodeValue(req.LogType, req.Value)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		e, err := h.s.AddLog(r.Context(), healthlogs.Draft{
			CatID:     req.CatID,
			Category:  req.LogType,
			VisitDate: req.VisitDate,
			Value:     v,
			Note:      req.Note,
			ImageURL:  req.ImageURL,
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, e)
	}
}

func (h *handlers) updateLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req logPatchRequest
		if !decode(w, r, &req) {
			return
		}

		p := healthlogs.Patch{VisitDate: req.VisitDate, Note: req.Note, ImageURL: req.ImageURL}
		if len(req.Value) > 0 {
			current, ok := h.findLog(id)
			if !ok {
				http.Error(w, healthlogs.ErrNotFound.Error(), http.StatusNotFound)
				return
			}
			v, err := healthlogs.DecodeValue(current.Category, req.Value)
			if err != nil {
				h.fail(w, r, err)
				return
			}
			p.Value = v
		}

		if err := h.s.UpdateLog(r.Context(), id, p); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handlers) findLog(id string) (healthlogs.Entry, bool) {
	for _, e := range h.s.Snapshot().Logs {
		if e.ID == id {
			return e, true
		}
	}
	return healthlogs.Entry{}, false
}

func (h *handlers) deleteLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.s.DeleteLog(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ---- Todos ----

func (h *handlers) addTodo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req todos.Draft
		if !decode(w, r, &req) {
			return
		}
		t, err := h.s.AddTodo(r.Context(), req)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

func (h *handlers) toggleTodo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.s.ToggleTodo(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handlers) deleteTodo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.s.DeleteTodo(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ---- Home checks ----

func (h *handlers) addHomeCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req homechecks.Draft
		if !decode(w, r, &req) {
			return
		}
		c, err := h.s.AddHomeCheck(r.Context(), req)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func (h *handlers) updateHomeCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req homechecks.Patch
		if !decode(w, r, &req) {
			return
		}
		if err := h.s.UpdateHomeCheck(r.Context(), chi.URLParam(r, "id"), req); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handlers) deleteHomeCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.s.DeleteHomeCheck(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ---- Appointments ----

func (h *handlers) addAppointment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req appointments.Draft
		if !decode(w, r, &req) {
			return
		}
		a, err := h.s.AddAppointment(r.Context(), req)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

func (h *handlers) updateAppointment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req appointments.Patch
		if !decode(w, r, &req) {
			return
		}
		if err := h.s.UpdateAppointment(r.Context(), chi.URLParam(r, "id"), req); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handlers) deleteAppointment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.s.DeleteAppointment(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ---- Medications ----

func (h *handlers) addMedication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medications.Draft
		if !decode(w, r, &req) {
			return
		}
		m, err := h.s.AddMedication(r.Context(), req)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func (h *handlers) updateMedication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medications.Patch
		if !decode(w, r, &req) {
			return
		}
		if err := h.s.UpdateMedication(r.Context(), chi.URLParam(r, "id"), req); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handlers) deleteMedication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.s.DeleteMedication(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
