package memory

import (
	"context"
	"sync"

	"cat-lifecycle/internal/ports/auth"
)

// Auth es un proveedor de identidad local: la identidad existe hasta SignOut.
// No soporta OAuth ni links por email.
type Auth struct {
	mu       sync.RWMutex
	identity *auth.Identity
}

func NewAuth(identity *auth.Identity) *Auth {
	a := &Auth{}
	if identity != nil {
		cp := *identity
		a.identity = &cp
	}
	return a
}

func (a *Auth) SignInWithOAuth(ctx context.Context, provider, redirectTo string) (string, error) {
	return "", auth.ErrUnsupported
}

func (a *Auth) SignInWithOTP(ctx context.Context, email, redirectTo string) error {
	return auth.ErrUnsupported
}

func (a *Auth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.identity = nil
	return nil
}

func (a *Auth) CurrentUser(ctx context.Context) (*auth.Identity, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.identity == nil {
		return nil, nil
	}
	cp := *a.identity
	return &cp, nil
}

func (a *Auth) SetSession(token string) {}

// SignIn fija la identidad actual (tests y modo demo).
func (a *Auth) SignIn(identity auth.Identity) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.identity = &identity
}
