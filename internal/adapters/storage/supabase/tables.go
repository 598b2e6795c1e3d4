package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cat-lifecycle/internal/ports/persistence"
)

func restPath(table persistence.Table, q url.Values) string {
	p := "/rest/v1/" + string(table)
	if len(q) > 0 {
		p += "?" + q.Encode()
	}
	return p
}

func (c *Client) Insert(ctx context.Context, table persistence.Table, doc json.RawMessage) (json.RawMessage, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("%w: %s", persistence.ErrUnknownTable, table)
	}

	var rows []json.RawMessage
	_, err := c.http.Do(ctx, http.MethodPost, restPath(table, nil),
		c.headers(map[string]string{"Prefer": "return=representation"}), doc, &rows)
	if err != nil {
		return nil, mapError("insert", table, err)
	}
	if len(rows) == 0 {
		return nil, &persistence.BackendError{Op: "insert", Table: table, Message: "no row returned"}
	}
	return rows[0], nil
}

func (c *Client) Update(ctx context.Context, table persistence.Table, id string, patch json.RawMessage) error {
	if !table.Valid() {
		return fmt.Errorf("%w: %s", persistence.ErrUnknownTable, table)
	}

	q := url.Values{}
	q.Set("id", "eq."+id)
	_, err := c.http.Do(ctx, http.MethodPatch, restPath(table, q),
		c.headers(map[string]string{"Prefer": "return=minimal"}), patch, nil)
	if err != nil {
		return mapError("update", table, err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, table persistence.Table, id string) error {
	if !table.Valid() {
		return fmt.Errorf("%w: %s", persistence.ErrUnknownTable, table)
	}

	q := url.Values{}
	q.Set("id", "eq."+id)
	if _, err := c.http.Do(ctx, http.MethodDelete, restPath(table, q), c.headers(nil), nil, nil); err != nil {
		return mapError("delete", table, err)
	}
	return nil
}

func (c *Client) Select(ctx context.Context, table persistence.Table, q persistence.Query) (persistence.Result, error) {
	if !table.Valid() {
		return persistence.Result{}, fmt.Errorf("%w: %s", persistence.ErrUnknownTable, table)
	}
	if err := q.Validate(); err != nil {
		return persistence.Result{}, err
	}
	if q.Empty() {
		return persistence.Result{Rows: []json.RawMessage{}}, nil
	}

	params := url.Values{}
	params.Set("select", "*")
	for _, f := range q.Filters {
		switch f.Op {
		case persistence.OpEq:
			params.Add(f.Column, "eq."+f.Values[0])
		case persistence.OpIn:
			params.Add(f.Column, "in.("+quoteList(f.Values)+")")
		}
	}
	if q.Order != nil {
		dir := "asc"
		if q.Order.Desc {
			dir = "desc"
		}
		params.Set("order", q.Order.Column+"."+dir)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	extra := map[string]string{}
	if q.Count {
		extra["Prefer"] = "count=exact"
	}

	var rows []json.RawMessage
	res, err := c.http.Do(ctx, http.MethodGet, restPath(table, params), c.headers(extra), nil, &rows)
	if err != nil {
		return persistence.Result{}, mapError("select", table, err)
	}
	if rows == nil {
		rows = []json.RawMessage{}
	}

	out := persistence.Result{Rows: rows}
	if q.Count {
		n, err := parseContentRange(res.Header.Get("Content-Range"))
		if err != nil {
			return persistence.Result{}, &persistence.BackendError{Op: "select", Table: table, Message: err.Error()}
		}
		out.Count = n
	}
	return out, nil
}

// quoteList escapa valores para in.(...): comillas dobles si traen separadores.
func quoteList(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if strings.ContainsAny(v, `,()" `) {
			v = `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, ",")
}

// parseContentRange lee el total de "0-24/57" o "*/0".
func parseContentRange(h string) (int, error) {
	i := strings.LastIndex(h, "/")
	if i < 0 {
		return 0, fmt.Errorf("missing count in Content-Range %q", h)
	}
	total := h[i+1:]
	if total == "*" {
		return 0, fmt.Errorf("count not computed in Content-Range %q", h)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("bad Content-Range %q", h)
	}
	return n, nil
}
