package persistence

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("persistence: not found")
	ErrColumnNotFound = errors.New("persistence: column not found")
	ErrInvalidQuery   = errors.New("persistence: invalid query")
	ErrUnknownTable   = errors.New("persistence: unknown table")
)

// ColumnError indica que el backend no conoce una columna (esquema sin migrar).
type ColumnError struct {
	Table   Table
	Column  string
	Message string
}

func (e *ColumnError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("could not find the '%s' column of '%s'", e.Column, e.Table)
}

func (e *ColumnError) Unwrap() error { return ErrColumnNotFound }

// MissingColumn devuelve la columna si err es un ColumnError.
func MissingColumn(err error) (string, bool) {
	var ce *ColumnError
	if errors.As(err, &ce) {
		return ce.Column, true
	}
	return "", false
}

// BackendError lleva el mensaje del backend para mostrarlo tal cual.
type BackendError struct {
	Op         string
	Table      Table
	StatusCode int
	Message    string
	Err        error
}

func (e *BackendError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Table != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Table, msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *BackendError) Unwrap() error { return e.Err }
