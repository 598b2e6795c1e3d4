package persistence

import "fmt"

type Op string

const (
	OpEq Op = "eq"
	OpIn Op = "in"
)

// Filter es una condición de igualdad o pertenencia sobre una columna.
type Filter struct {
	Column string
	Op     Op
	Values []string
}

func Eq(column, value string) Filter {
	return Filter{Column: column, Op: OpEq, Values: []string{value}}
}

func In(column string, values ...string) Filter {
	return Filter{Column: column, Op: OpIn, Values: values}
}

type Order struct {
	Column string
	Desc   bool
}

// Query describe un select: filtros AND, un orden opcional, conteo exacto opcional.
type Query struct {
	Filters []Filter
	Order   *Order
	Count   bool
	Limit   int
}

func Select() Query { return Query{} }

func (q Query) Where(f ...Filter) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), f...)
	return q
}

func (q Query) OrderBy(column string, desc bool) Query {
	q.Order = &Order{Column: column, Desc: desc}
	return q
}

func (q Query) WithCount() Query {
	q.Count = true
	return q
}

func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// Validate rechaza columnas u operadores que ningún backend debe recibir.
func (q Query) Validate() error {
	for _, f := range q.Filters {
		if !ValidColumn(f.Column) {
			return fmt.Errorf("%w: bad column %q", ErrInvalidQuery, f.Column)
		}
		if f.Op != OpEq && f.Op != OpIn {
			return fmt.Errorf("%w: bad operator %q", ErrInvalidQuery, f.Op)
		}
		if f.Op == OpEq && len(f.Values) != 1 {
			return fmt.Errorf("%w: eq needs exactly one value", ErrInvalidQuery)
		}
	}
	if q.Order != nil && !ValidColumn(q.Order.Column) {
		return fmt.Errorf("%w: bad order column %q", ErrInvalidQuery, q.Order.Column)
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidQuery)
	}
	return nil
}

// Empty indica si algún filtro "in" no tiene valores (el resultado es vacío por definición).
func (q Query) Empty() bool {
	for _, f := range q.Filters {
		if f.Op == OpIn && len(f.Values) == 0 {
			return true
		}
	}
	return false
}
