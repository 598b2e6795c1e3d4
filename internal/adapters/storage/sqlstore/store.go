// Package sqlstore implementa persistence.Tables sobre database/sql + sqlx.
// Postgres y SQLite comparten este código y solo aportan un Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cat-lifecycle/internal/ports/auth"
	"cat-lifecycle/internal/ports/persistence"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Dialect aporta lo que cambia entre motores.
type Dialect interface {
	// DriverName es el nombre registrado en database/sql (define el bindvar de sqlx).
	DriverName() string
	// ColumnError reconoce el error de "columna inexistente" del motor.
	ColumnError(err error) (column string, ok bool)
}

// Store es un backend SQL completo: tablas + proveedor de identidad.
type Store struct {
	db      *sqlx.DB
	dialect Dialect
	auth    auth.Provider
	name    string
	newID   func() string
}

type Option func(*Store)

func WithIDs(fn func() string) Option { return func(s *Store) { s.newID = fn } }

func New(db *sql.DB, d Dialect, provider auth.Provider, name string, opts ...Option) *Store {
	s := &Store{
		db:      sqlx.NewDb(db, d.DriverName()),
		dialect: d,
		auth:    provider,
		name:    name,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Name() string        { return s.name }
func (s *Store) Auth() auth.Provider { return s.auth }
func (s *Store) DB() *sqlx.DB        { return s.db }

func (s *Store) Insert(ctx context.Context, table persistence.Table, doc json.RawMessage) (json.RawMessage, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("%w: %s", persistence.ErrUnknownTable, table)
	}
	cols, args, err := decodeDoc(table, doc)
	if err != nil {
		return nil, err
	}

	if i := indexOf(cols, "id"); i < 0 {
		cols = append(cols, "id")
		args = append(args, s.newID())
	} else if args[i] == nil || args[i] == "" {
		args[i] = s.newID()
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(cols, ", "), placeholders(len(cols)))

	row := map[string]any{}
	if err := s.db.QueryRowxContext(ctx, s.db.Rebind(q), args...).MapScan(row); err != nil {
		return nil, s.mapError("insert", table, err)
	}
	return encodeRow(table, row)
}

func (s *Store) Update(ctx context.Context, table persistence.Table, id string, patch json.RawMessage) error {
	if !table.Valid() {
		return fmt.Errorf("%w: %s", persistence.ErrUnknownTable, table)
	}
	cols, args, err := decodeDoc(table, patch)
	if err != nil {
		return err
	}
	if i := indexOf(cols, "id"); i >= 0 {
		cols = append(cols[:i], cols[i+1:]...)
		args = append(args[:i], args[i+1:]...)
	}
	if len(cols) == 0 {
		return nil
	}

	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		sets = append(sets, c+" = ?")
	}
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))

	res, err := s.db.ExecContext(ctx, s.db.Rebind(q), append(args, id)...)
	if err != nil {
		return s.mapError("update", table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update %s %s: %w", table, id, persistence.ErrNotFound)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, table persistence.Table, id string) error {
	if !table.Valid() {
		return fmt.Errorf("%w: %s", persistence.ErrUnknownTable, table)
	}
	q := fmt.Sprintf("DELETE FROM %s WHERE id = ?", table)
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(q), id); err != nil {
		return s.mapError("delete", table, err)
	}
	return nil
}

func (s *Store) Select(ctx context.Context, table persistence.Table, q persistence.Query) (persistence.Result, error) {
	if !table.Valid() {
		return persistence.Result{}, fmt.Errorf("%w: %s", persistence.ErrUnknownTable, table)
	}
	if err := q.Validate(); err != nil {
		return persistence.Result{}, err
	}
	if q.Empty() {
		return persistence.Result{Rows: []json.RawMessage{}}, nil
	}

	where, args, err := whereClause(q.Filters)
	if err != nil {
		return persistence.Result{}, err
	}

	out := persistence.Result{Rows: []json.RawMessage{}}
	if q.Count {
		cq := s.db.Rebind(fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, where))
		if err := s.db.GetContext(ctx, &out.Count, cq, args...); err != nil {
			return persistence.Result{}, s.mapError("select", table, err)
		}
	}

	sq := fmt.Sprintf("SELECT * FROM %s%s", table, where)
	if q.Order != nil {
		dir := "ASC"
		if q.Order.Desc {
			dir = "DESC"
		}
		sq += fmt.Sprintf(" ORDER BY %s %s NULLS LAST", q.Order.Column, dir)
	}
	if q.Limit > 0 {
		sq += " LIMIT " + strconv.Itoa(q.Limit)
	}

	rows, err := s.db.QueryxContext(ctx, s.db.Rebind(sq), args...)
	if err != nil {
		return persistence.Result{}, s.mapError("select", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		m := map[string]any{}
		if err := rows.MapScan(m); err != nil {
			return persistence.Result{}, s.mapError("select", table, err)
		}
		doc, err := encodeRow(table, m)
		if err != nil {
			return persistence.Result{}, err
		}
		out.Rows = append(out.Rows, doc)
	}
	if err := rows.Err(); err != nil {
		return persistence.Result{}, s.mapError("select", table, err)
	}
	return out, nil
}

// whereClause arma "WHERE a = ? AND b IN (?, ?)" con bindvars "?" (se reescriben con Rebind).
func whereClause(filters []persistence.Filter) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}
	parts := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for _, f := range filters {
		switch f.Op {
		case persistence.OpEq:
			parts = append(parts, f.Column+" = ?")
			args = append(args, f.Values[0])
		case persistence.OpIn:
			parts = append(parts, f.Column+" IN (?)")
			args = append(args, f.Values)
		}
	}
	q, expanded, err := sqlx.In(" WHERE "+strings.Join(parts, " AND "), args...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", persistence.ErrInvalidQuery, err)
	}
	return q, expanded, nil
}

func (s *Store) mapError(op string, table persistence.Table, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &persistence.BackendError{Op: op, Table: table, Err: persistence.ErrNotFound}
	}
	if col, ok := s.dialect.ColumnError(err); ok {
		return &persistence.ColumnError{Table: table, Column: col, Message: err.Error()}
	}
	return &persistence.BackendError{Op: op, Table: table, Message: err.Error(), Err: err}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func indexOf(cols []string, c string) int {
	for i, v := range cols {
		if v == c {
			return i
		}
	}
	return -1
}
