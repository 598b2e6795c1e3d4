package supabase

import (
	"encoding/json"
	"errors"
	"regexp"

	"cat-lifecycle/internal/platform/httpclient"
	"cat-lifecycle/internal/ports/persistence"
)

// postgrestError es el cuerpo de error de PostgREST.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
	// GoTrue usa otros nombres.
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

var (
	// PGRST204: "Could not find the 'bcs' column of 'cats' in the schema cache"
	schemaCacheColumnRe = regexp.MustCompile(`'([A-Za-z0-9_]+)' column`)
	// 42703: `column cats.bcs does not exist` / `column "bcs" of relation "cats" does not exist`
	undefinedColumnRe = regexp.MustCompile(`column "?(?:[A-Za-z0-9_]+\.)?([A-Za-z0-9_]+)"?`)
)

func mapError(op string, table persistence.Table, err error) error {
	var he *httpclient.HTTPError
	if !errors.As(err, &he) {
		return &persistence.BackendError{Op: op, Table: table, Err: err}
	}

	var body postgrestError
	_ = json.Unmarshal([]byte(he.Body), &body)

	msg := firstNonEmpty(body.Message, body.Msg, body.ErrorDescription, he.Body)

	switch body.Code {
	case "PGRST204":
		if m := schemaCacheColumnRe.FindStringSubmatch(msg); m != nil {
			return &persistence.ColumnError{Table: table, Column: m[1], Message: msg}
		}
	case "42703":
		if m := undefinedColumnRe.FindStringSubmatch(msg); m != nil {
			return &persistence.ColumnError{Table: table, Column: m[1], Message: msg}
		}
	case "PGRST116":
		return &persistence.BackendError{Op: op, Table: table, StatusCode: he.StatusCode, Message: msg, Err: persistence.ErrNotFound}
	}

	return &persistence.BackendError{Op: op, Table: table, StatusCode: he.StatusCode, Message: msg, Err: he}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
