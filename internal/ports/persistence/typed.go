package persistence

import (
	"context"
	"encoding/json"
	"fmt"
)

// InsertAs serializa doc, lo inserta y decodifica la fila devuelta en T.
func InsertAs[T any](ctx context.Context, t Tables, table Table, doc any) (T, error) {
	var zero T
	b, err := json.Marshal(doc)
	if err != nil {
		return zero, fmt.Errorf("persistence: marshal %s: %w", table, err)
	}
	row, err := t.Insert(ctx, table, b)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(row, &out); err != nil {
		return zero, fmt.Errorf("persistence: decode %s row: %w", table, err)
	}
	return out, nil
}

// UpdateWith serializa patch y lo aplica a la fila id.
func UpdateWith(ctx context.Context, t Tables, table Table, id string, patch any) error {
	b, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("persistence: marshal %s patch: %w", table, err)
	}
	return t.Update(ctx, table, id, b)
}

// SelectAs decodifica todas las filas del select en T.
func SelectAs[T any](ctx context.Context, t Tables, table Table, q Query) ([]T, error) {
	res, err := t.Select(ctx, table, q)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(res.Rows))
	for _, row := range res.Rows {
		var v T
		if err := json.Unmarshal(row, &v); err != nil {
			return nil, fmt.Errorf("persistence: decode %s row: %w", table, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Count devuelve el conteo exacto de filas que cumplen los filtros.
func Count(ctx context.Context, t Tables, table Table, filters ...Filter) (int, error) {
	res, err := t.Select(ctx, table, Select().Where(filters...).WithCount().WithLimit(1))
	if err != nil {
		return 0, err
	}
	return res.Count, nil
}
