package memory

import (
	"cat-lifecycle/internal/ports/auth"
)

// Backend junta tablas en memoria con un proveedor de identidad local.
type Backend struct {
	*Tables
	auth *Auth
	name string
}

func NewBackend(identity *auth.Identity, opts ...Option) *Backend {
	return &Backend{
		Tables: NewTables(opts...),
		auth:   NewAuth(identity),
		name:   "memory",
	}
}

func (b *Backend) Auth() auth.Provider { return b.auth }

// Identity expone el proveedor concreto para poder hacer SignIn en tests.
func (b *Backend) Identity() *Auth { return b.auth }

func (b *Backend) Name() string { return b.name }
