package sqlstore

import "cat-lifecycle/internal/ports/persistence"

type kind int

const (
	kindAny kind = iota
	kindBool
	kindDate
	kindTimestamp
	// kindJSONText guarda cualquier valor JSON como texto (health_logs.value).
	kindJSONText
)

var columnKinds = map[persistence.Table]map[string]kind{
	persistence.Profiles: {
		"is_admin":   kindBool,
		"created_at": kindTimestamp,
	},
	persistence.Cats: {
		"birth_date":  kindDate,
		"is_neutered": kindBool,
		"created_at":  kindTimestamp,
	},
	persistence.HealthLogs: {
		"visit_date": kindDate,
		"value":      kindJSONText,
		"created_at": kindTimestamp,
	},
	persistence.Todos: {
		"is_completed": kindBool,
		"due_date":     kindDate,
		"created_at":   kindTimestamp,
	},
	persistence.HomeChecks: {
		"check_date": kindDate,
		"created_at": kindTimestamp,
	},
	persistence.HealthTips: {
		"is_published": kindBool,
		"created_at":   kindTimestamp,
	},
	persistence.Appointments: {
		"date":       kindDate,
		"created_at": kindTimestamp,
	},
	persistence.Medications: {
		"start_date": kindDate,
		"end_date":   kindDate,
		"created_at": kindTimestamp,
	},
}

func columnKind(table persistence.Table, column string) kind {
	return columnKinds[table][column]
}
