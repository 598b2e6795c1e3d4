package accounts

import "strings"

// Capability es una acción protegida de la app.
type Capability string

const (
	CapManageTips  Capability = "tips:manage"
	CapManageUsers Capability = "users:manage"
	CapViewStats   Capability = "stats:view"
)

// CapabilityCheck describe la pregunta "¿puede este usuario hacer X?".
type CapabilityCheck struct {
	UserID     string
	Capability Capability
}

// Has responde en base al perfil cargado. Hoy todas las capabilities
// protegidas son de administrador; el tier no habilita nada extra.
func Has(p *Profile, in CapabilityCheck) bool {
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return false
	}
	if in.UserID != "" && in.UserID != p.ID {
		return false
	}
	switch in.Capability {
	case CapManageTips, CapManageUsers, CapViewStats:
		return p.IsAdmin
	default:
		return false
	}
}

// Require devuelve ErrForbidden si p no tiene la capability.
func Require(p *Profile, c Capability) error {
	if !Has(p, CapabilityCheck{Capability: c}) {
		return ErrForbidden
	}
	return nil
}
