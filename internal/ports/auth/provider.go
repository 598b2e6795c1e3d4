package auth

import (
	"context"
	"errors"
)

var (
	// ErrUnsupported lo devuelve un proveedor que no implementa un método de login.
	ErrUnsupported = errors.New("auth: sign-in method not supported by this backend")
)

// Provider es la parte de identidad del servicio de persistencia.
type Provider interface {
	// SignInWithOAuth devuelve la URL a la que hay que redirigir al usuario.
	SignInWithOAuth(ctx context.Context, provider, redirectTo string) (string, error)
	// SignInWithOTP envía el link de acceso por email.
	SignInWithOTP(ctx context.Context, email, redirectTo string) error
	// SignOut invalida la sesión remota y olvida el token local.
	SignOut(ctx context.Context) error
	// CurrentUser devuelve nil (sin error) cuando no hay sesión.
	CurrentUser(ctx context.Context) (*Identity, error)
	// SetSession guarda el access token obtenido por la vista tras la redirección.
	SetSession(token string)
}
