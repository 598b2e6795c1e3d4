package httpapi

import (
	"net/http"
	"strings"

	"cat-lifecycle/internal/domain/lifecycle"
	"cat-lifecycle/internal/domain/pets"
	"cat-lifecycle/internal/ports/auth"
)

type loginRequest struct {
	Provider string `json:"provider"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type sessionRequest struct {
	AccessToken string `json:"access_token"`
}

type sessionResponse struct {
	SessionToken string `json:"session_token"`
}

// login devuelve la URL de OAuth; provider vacío = google.
func (h *handlers) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decode(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Provider) == "" {
			req.Provider = auth.ProviderGoogle
		}
		url, err := h.s.Login(r.Context(), req.Provider)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}

func (h *handlers) loginWithEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req emailRequest
		if !decode(w, r, &req) {
			return
		}
		if err := h.s.LoginWithEmail(r.Context(), req.Email); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

// callback recibe el link de acceso (?token=...). Devuelve el token de sesión.
func (h *handlers) callback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.URL.Query().Get("token"))
		if token == "" {
			http.Error(w, "token required", http.StatusBadRequest)
			return
		}
		session, err := h.s.CompleteSignIn(r.Context(), token)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{SessionToken: session})
	}
}

// setSession recibe el access token que la vista sacó del fragmento de la redirección OAuth.
func (h *handlers) setSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if !decode(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.AccessToken) == "" {
			http.Error(w, "access_token required", http.StatusBadRequest)
			return
		}
		if err := h.s.SetSessionToken(r.Context(), strings.TrimSpace(req.AccessToken)); err != nil {
			h.fail(w, r, err)
			return
		}
		h.writeState(w, http.StatusOK)
	}
}

func (h *handlers) demo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.s.LoginAsDemo(r.Context()); err != nil {
			h.fail(w, r, err)
			return
		}
		h.writeState(w, http.StatusOK)
	}
}

func (h *handlers) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.s.Logout(r.Context()); err != nil {
			// El estado ya quedó limpio; solo se informa.
			h.log.Warn("logout: backend sign out failed", map[string]any{"err": err})
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handlers) load() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.s.LoadInitialData(r.Context()); err != nil {
			h.fail(w, r, err)
			return
		}
		h.writeState(w, http.StatusOK)
	}
}

type stateResponse struct {
	IsDemo  bool   `json:"is_demo"`
	Backend string `json:"backend"`
	State   any    `json:"state"`
}

func (h *handlers) state() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stateResponse{
			IsDemo:  h.s.IsDemo(),
			Backend: h.s.BackendName(),
			State:   h.s.Snapshot(),
		})
	}
}

func (h *handlers) breeds() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, pets.Breeds())
	}
}

func (h *handlers) vaccineSchedule() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, lifecycle.Schedule())
	}
}
