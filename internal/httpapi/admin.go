package httpapi

import (
	"net/http"

	"cat-lifecycle/internal/domain/accounts"
	"cat-lifecycle/internal/domain/healthtips"

	"github.com/go-chi/chi/v5"
)

func (h *handlers) addTip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req healthtips.Draft
		if !decode(w, r, &req) {
			return
		}
		t, err := h.s.AddHealthTip(r.Context(), req)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

func (h *handlers) updateTip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req healthtips.Patch
		if !decode(w, r, &req) {
			return
		}
		if err := h.s.UpdateHealthTip(r.Context(), chi.URLParam(r, "id"), req); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handlers) deleteTip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.s.DeleteHealthTip(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handlers) listProfiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := h.s.ListProfiles(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (h *handlers) setAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req accounts.AdminPatch
		if !decode(w, r, &req) {
			return
		}
		if err := h.s.SetAdmin(r.Context(), chi.URLParam(r, "id"), req.IsAdmin); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handlers) adminStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := h.s.AdminStats(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}
