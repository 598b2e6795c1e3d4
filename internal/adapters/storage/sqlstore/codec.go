package sqlstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"cat-lifecycle/internal/platform/civil"
	"cat-lifecycle/internal/ports/persistence"
)

// decodeDoc convierte un documento JSON en columnas ordenadas y argumentos para el driver.
func decodeDoc(table persistence.Table, doc json.RawMessage) ([]string, []any, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	var m map[string]json.RawMessage
	if err := dec.Decode(&m); err != nil {
		return nil, nil, fmt.Errorf("%w: document must be a json object", persistence.ErrInvalidQuery)
	}

	cols := make([]string, 0, len(m))
	for c := range m {
		if !persistence.ValidColumn(c) {
			return nil, nil, fmt.Errorf("%w: bad column %q", persistence.ErrInvalidQuery, c)
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)

	args := make([]any, 0, len(cols))
	for _, c := range cols {
		v, err := toArg(columnKind(table, c), m[c])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: column %s: %v", persistence.ErrInvalidQuery, c, err)
		}
		args = append(args, v)
	}
	return cols, args, nil
}

func toArg(k kind, raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	if k == kindJSONText {
		if raw[0] == '"' {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, err
			}
			return s, nil
		}
		return string(raw), nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return b, nil
	case '{', '[':
		return string(raw), nil
	default:
		n := json.Number(raw)
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

// encodeRow convierte una fila escaneada (MapScan) en el documento JSON del puerto.
func encodeRow(table persistence.Table, row map[string]any) (json.RawMessage, error) {
	out := make(map[string]any, len(row))
	for col, v := range row {
		out[col] = fromColumn(columnKind(table, col), v)
	}
	return json.Marshal(out)
}

func fromColumn(k kind, v any) any {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if v == nil {
		return nil
	}

	switch k {
	case kindBool:
		switch x := v.(type) {
		case int64:
			return x != 0
		case string:
			b, err := strconv.ParseBool(x)
			if err == nil {
				return b
			}
		}
	case kindDate:
		switch x := v.(type) {
		case time.Time:
			return civil.Of(x).String()
		case string:
			if d, err := civil.Parse(x); err == nil {
				return d.String()
			}
		}
	case kindTimestamp:
		if x, ok := v.(time.Time); ok {
			return x.UTC().Format(time.RFC3339Nano)
		}
	case kindJSONText:
		// Texto que ya es JSON válido (número, objeto) vuelve como tal.
		if s, ok := v.(string); ok {
			t := strings.TrimSpace(s)
			if t != "" && (t[0] == '{' || t[0] == '[') && json.Valid([]byte(t)) {
				return json.RawMessage(t)
			}
		}
	}
	return v
}
