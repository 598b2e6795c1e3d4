package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"cat-lifecycle/internal/ports/persistence"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Tables guarda documentos JSON por tabla, en orden de inserción.
type Tables struct {
	mu      sync.RWMutex
	rows    map[persistence.Table][]json.RawMessage
	missing map[persistence.Table]map[string]struct{}
	now     func() time.Time
	newID   func() string
}

type Option func(*Tables)

// WithClock fija el reloj usado para created_at.
func WithClock(now func() time.Time) Option {
	return func(t *Tables) { t.now = now }
}

// WithIDs reemplaza el generador de ids.
func WithIDs(next func() string) Option {
	return func(t *Tables) { t.newID = next }
}

// WithoutColumns simula un esquema sin migrar: escribir esas columnas falla con ColumnError.
func WithoutColumns(table persistence.Table, columns ...string) Option {
	return func(t *Tables) {
		set := t.missing[table]
		if set == nil {
			set = map[string]struct{}{}
			t.missing[table] = set
		}
		for _, c := range columns {
			set[c] = struct{}{}
		}
	}
}

func NewTables(opts ...Option) *Tables {
	t := &Tables{
		rows:    make(map[persistence.Table][]json.RawMessage),
		missing: make(map[persistence.Table]map[string]struct{}),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Tables) Insert(ctx context.Context, table persistence.Table, doc json.RawMessage) (json.RawMessage, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("%w: %s", persistence.ErrUnknownTable, table)
	}

	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, fmt.Errorf("memory: insert %s: %w", table, err)
	}
	if err := t.checkColumns(table, m); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if id, _ := m["id"].(string); strings.TrimSpace(id) == "" {
		m["id"] = t.newID()
	} else if t.indexOf(table, id) >= 0 {
		return nil, &persistence.BackendError{Op: "insert", Table: table, Message: fmt.Sprintf("duplicate key value: id=%s", id)}
	}
	if _, ok := m["created_at"]; !ok {
		m["created_at"] = t.now().UTC().Format(time.RFC3339Nano)
	}

	row, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("memory: insert %s: %w", table, err)
	}
	t.rows[table] = append(t.rows[table], row)

	return cloneRaw(row), nil
}

func (t *Tables) Update(ctx context.Context, table persistence.Table, id string, patch json.RawMessage) error {
	if !table.Valid() {
		return fmt.Errorf("%w: %s", persistence.ErrUnknownTable, table)
	}

	var p map[string]any
	if err := json.Unmarshal(patch, &p); err != nil {
		return fmt.Errorf("memory: update %s: %w", table, err)
	}
	if err := t.checkColumns(table, p); err != nil {
		return err
	}
	delete(p, "id")

	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(table, id)
	if i < 0 {
		return fmt.Errorf("update %s %s: %w", table, id, persistence.ErrNotFound)
	}

	var cur map[string]any
	if err := json.Unmarshal(t.rows[table][i], &cur); err != nil {
		return fmt.Errorf("memory: update %s: %w", table, err)
	}
	for k, v := range p {
		cur[k] = v
	}
	row, err := json.Marshal(cur)
	if err != nil {
		return fmt.Errorf("memory: update %s: %w", table, err)
	}
	t.rows[table][i] = row
	return nil
}

func (t *Tables) Delete(ctx context.Context, table persistence.Table, id string) error {
	if !table.Valid() {
		return fmt.Errorf("%w: %s", persistence.ErrUnknownTable, table)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(table, id)
	if i < 0 {
		return fmt.Errorf("delete %s %s: %w", table, id, persistence.ErrNotFound)
	}
	rows := t.rows[table]
	t.rows[table] = append(rows[:i:i], rows[i+1:]...)
	return nil
}

func (t *Tables) Select(ctx context.Context, table persistence.Table, q persistence.Query) (persistence.Result, error) {
	if !table.Valid() {
		return persistence.Result{}, fmt.Errorf("%w: %s", persistence.ErrUnknownTable, table)
	}
	if err := q.Validate(); err != nil {
		return persistence.Result{}, err
	}

	t.mu.RLock()
	matched := make([]json.RawMessage, 0)
	for _, row := range t.rows[table] {
		if matches(row, q.Filters) {
			matched = append(matched, cloneRaw(row))
		}
	}
	t.mu.RUnlock()

	if q.Order != nil {
		col, desc := q.Order.Column, q.Order.Desc
		sort.SliceStable(matched, func(i, j int) bool {
			c := compare(gjson.GetBytes(matched[i], col), gjson.GetBytes(matched[j], col))
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	res := persistence.Result{}
	if q.Count {
		res.Count = len(matched)
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	res.Rows = matched
	return res, nil
}

// Len devuelve cuántas filas tiene la tabla (útil en tests).
func (t *Tables) Len(table persistence.Table) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows[table])
}

func (t *Tables) checkColumns(table persistence.Table, doc map[string]any) error {
	missing := t.missing[table]
	for col := range doc {
		if _, ok := missing[col]; ok {
			return &persistence.ColumnError{
				Table:   table,
				Column:  col,
				Message: fmt.Sprintf("Could not find the '%s' column of '%s' in the schema cache", col, table),
			}
		}
	}
	return nil
}

// indexOf requiere el lock tomado.
func (t *Tables) indexOf(table persistence.Table, id string) int {
	for i, row := range t.rows[table] {
		if gjson.GetBytes(row, "id").String() == id {
			return i
		}
	}
	return -1
}

func matches(row json.RawMessage, filters []persistence.Filter) bool {
	for _, f := range filters {
		v := gjson.GetBytes(row, f.Column)
		if !v.Exists() {
			return false
		}
		s := v.String()
		found := false
		for _, want := range f.Values {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// compare ordena números como números y el resto como texto (fechas ISO ordenan bien así).
// Los nulos van al final en ascendente.
func compare(a, b gjson.Result) int {
	aNull := !a.Exists() || a.Type == gjson.Null
	bNull := !b.Exists() || b.Type == gjson.Null
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return 1
	case bNull:
		return -1
	}

	if a.Type == gjson.Number && b.Type == gjson.Number {
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.String(), b.String())
}

func cloneRaw(b json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(b))
	copy(out, b)
	return out
}
