package accounts

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// Tier es el plan de suscripción de la cuenta.
type Tier string

const (
	TierFree Tier = "FREE"
	TierPro  Tier = "PRO"
	TierBeta Tier = "BETA"
)

func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierPro, TierBeta:
		return true
	default:
		return false
	}
}

// Identidad reservada del modo demo.
const (
	DemoUserID = "demo-user-id"
	DemoEmail  = "demo@nyanglife.com"
)

// Profile es la cuenta: identidad + plan + flag de administrador.
type Profile struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	SubscriptionTier Tier       `json:"subscription_tier"`
	IsAdmin          bool       `json:"is_admin"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
}

// Default arma el perfil que se crea en el primer login.
func Default(id, email string) Profile {
	return Profile{
		ID:               strings.TrimSpace(id),
		Email:            strings.TrimSpace(email),
		SubscriptionTier: TierBeta,
	}
}

// Normalize completa valores faltantes de filas viejas (tier vacío => BETA).
func (p Profile) Normalize() Profile {
	if !p.SubscriptionTier.Valid() {
		p.SubscriptionTier = TierBeta
	}
	return p
}

func (p Profile) IsDemo() bool { return p.ID == DemoUserID }

// AdminPatch cambia el flag de administrador de otra cuenta.
type AdminPatch struct {
	IsAdmin bool `json:"is_admin"`
}

// Stats es el resumen del panel de administración.
type Stats struct {
	Users int `json:"users"`
	Cats  int `json:"cats"`
	Logs  int `json:"logs"`
	Tips  int `json:"tips"`
}
