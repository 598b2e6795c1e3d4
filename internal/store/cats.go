package store

import (
	"context"
	"fmt"

	"cat-lifecycle/internal/domain/appointments"
	"cat-lifecycle/internal/domain/healthlogs"
	"cat-lifecycle/internal/domain/homechecks"
	"cat-lifecycle/internal/domain/medications"
	"cat-lifecycle/internal/domain/pets"
	"cat-lifecycle/internal/domain/todos"
	"cat-lifecycle/internal/ports/persistence"
)

// AddCat da de alta un gato para la cuenta actual y lo deja como activo.
func (s *Store) AddCat(ctx context.Context, d pets.Draft) (pets.Cat, error) {
	u, err := s.signedIn()
	if err != nil {
		return pets.Cat{}, err
	}
	d.UserID = u.ID
	d, err = d.Validate()
	if err != nil {
		return pets.Cat{}, err
	}

	var created pets.Cat
	err = s.run(ctx, "addCat", func(ctx context.Context, b persistence.Backend) error {
		var err error
		created, err = persistence.InsertAs[pets.Cat](ctx, b, persistence.Cats, d)
		return err
	})
	if err != nil {
		return pets.Cat{}, err
	}

	s.commit(func(st *State) {
		st.Cats = append(st.Cats, created)
		st.CurrentCatID = created.ID
	})
	return created, nil
}

// UpdateCat aplica p al gato id. Si el backend no tiene la columna bcs (esquema
// viejo) reintenta una vez sin ese campo; localmente se aplica lo que se guardó.
func (s *Store) UpdateCat(ctx context.Context, id string, p pets.Patch) error {
	p, err := p.Validate()
	if err != nil {
		return err
	}
	cat, err := s.activeCat(id)
	if err != nil {
		return err
	}
	id = cat.ID

	applied := p
	err = s.run(ctx, "updateCat", func(ctx context.Context, b persistence.Backend) error {
		err := persistence.UpdateWith(ctx, b, persistence.Cats, id, p)
		col, missing := persistence.MissingColumn(err)
		if !missing || col != "bcs" || p.BCS == nil {
			return err
		}

		s.log.Warn("cats.bcs missing, retrying without it", map[string]any{"cat_id": id, "backend": b.Name()})
		if s.metrics != nil {
			s.metrics.ColumnFallback(string(persistence.Cats), col)
		}
		applied = p.WithoutBCS()
		if applied.IsEmpty() {
			return nil
		}
		return persistence.UpdateWith(ctx, b, persistence.Cats, id, applied)
	})
	if err != nil {
		return err
	}

	s.commit(func(st *State) {
		if i := pets.IndexOf(st.Cats, id); i >= 0 {
			st.Cats[i] = applied.Apply(st.Cats[i])
		}
	})
	return nil
}

// DeleteCat borra el gato. El backend borra en cascada; acá se replica sobre
// las colecciones cargadas. El activo pasa al primero que quede.
func (s *Store) DeleteCat(ctx context.Context, id string) error {
	cat, err := s.activeCat(id)
	if err != nil {
		return err
	}
	id = cat.ID

	err = s.run(ctx, "deleteCat", func(ctx context.Context, b persistence.Backend) error {
		return b.Delete(ctx, persistence.Cats, id)
	})
	if err != nil {
		return err
	}

	s.commit(func(st *State) {
		st.Cats = removeByID(st.Cats, id, func(c pets.Cat) string { return c.ID })
		st.Logs = dropCat(st.Logs, id, func(e healthlogs.Entry) string { return e.CatID })
		st.Todos = dropCat(st.Todos, id, func(t todos.Todo) string { return t.CatID })
		st.HomeChecks = dropCat(st.HomeChecks, id, func(c homechecks.Check) string { return c.CatID })
		st.Appointments = dropCat(st.Appointments, id, func(a appointments.Appointment) string { return a.CatID })
		st.Medications = dropCat(st.Medications, id, func(m medications.Medication) string { return m.CatID })

		if st.CurrentCatID == id || pets.IndexOf(st.Cats, st.CurrentCatID) < 0 {
			st.CurrentCatID = ""
			if len(st.Cats) > 0 {
				st.CurrentCatID = st.Cats[0].ID
			}
		}
	})
	return nil
}

// SetCurrentCat cambia el gato activo. Solo local.
func (s *Store) SetCurrentCat(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id required", pets.ErrInvalidInput)
	}
	if _, err := s.activeCat(id); err != nil {
		return err
	}
	s.commit(func(st *State) { st.CurrentCatID = id })
	return nil
}

func dropCat[T any](list []T, catID string, catOf func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if catOf(v) != catID {
			out = append(out, v)
		}
	}
	return out
}
