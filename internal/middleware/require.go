package middleware

import (
	"net/http"

	"cat-lifecycle/internal/domain/accounts"
)

// AccountSource expone la cuenta de la sesión cargada.
type AccountSource interface {
	User() *accounts.Profile
}

// RequireAccount corta con 401 si no hay sesión cargada. Si el request trae un
// token verificado, tiene que ser de la misma cuenta (403 si no).
func RequireAccount(src AccountSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := src.User()
			if u == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if claims, ok := GetClaims(r.Context()); ok && claims.UserID != "" && claims.UserID != u.ID {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin exige además el flag de administrador.
func RequireAdmin(src AccountSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireAccount(src)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u := src.User(); u == nil || !u.IsAdmin {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
