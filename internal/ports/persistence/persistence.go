// Package persistence define el contrato con el servicio de persistencia:
// tablas de documentos JSON con insert/update/delete/select e identidad.
package persistence

import (
	"context"
	"encoding/json"
	"regexp"

	"cat-lifecycle/internal/ports/auth"
)

// Table es una colección del backend.
type Table string

const (
	Profiles     Table = "profiles"
	Cats         Table = "cats"
	HealthLogs   Table = "health_logs"
	Todos        Table = "todos"
	HomeChecks   Table = "home_checks"
	HealthTips   Table = "health_tips"
	Appointments Table = "appointments"
	Medications  Table = "medications"
)

func AllTables() []Table {
	return []Table{Profiles, Cats, HealthLogs, Todos, HomeChecks, HealthTips, Appointments, Medications}
}

func (t Table) Valid() bool {
	for _, v := range AllTables() {
		if v == t {
			return true
		}
	}
	return false
}

var columnRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidColumn acepta solo identificadores simples (snake_case).
func ValidColumn(name string) bool { return columnRe.MatchString(name) }

// Result es el resultado de un Select. Count solo se llena si Query.Count.
type Result struct {
	Rows  []json.RawMessage
	Count int
}

// Tables son las operaciones por tipo de entidad.
type Tables interface {
	// Insert devuelve la fila creada con id y created_at asignados por el backend.
	Insert(ctx context.Context, table Table, doc json.RawMessage) (json.RawMessage, error)
	// Update aplica un patch parcial a la fila id.
	Update(ctx context.Context, table Table, id string, patch json.RawMessage) error
	Delete(ctx context.Context, table Table, id string) error
	Select(ctx context.Context, table Table, q Query) (Result, error)
}

// Backend es el servicio de persistencia completo: tablas + identidad.
type Backend interface {
	Tables
	Auth() auth.Provider
	// Name identifica la implementación en logs y métricas.
	Name() string
}
