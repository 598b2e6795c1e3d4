package store

import (
	"context"

	"cat-lifecycle/internal/domain/appointments"
	"cat-lifecycle/internal/domain/homechecks"
	"cat-lifecycle/internal/domain/medications"
	"cat-lifecycle/internal/domain/todos"
	"cat-lifecycle/internal/ports/persistence"
)

func todoID(t todos.Todo) string                      { return t.ID }
func checkID(c homechecks.Check) string               { return c.ID }
func appointmentID(a appointments.Appointment) string { return a.ID }
func medicationID(m medications.Medication) string    { return m.ID }

// lookup busca id en la colección cargada que devuelve pick.
func lookup[T any](s *Store, pick func(*State) []T, id string, idOf func(T) string, notFound error) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var zero T
	if s.state.User == nil {
		return zero, ErrNotSignedIn
	}
	list := pick(&s.state)
	i := indexByID(list, id, idOf)
	if i < 0 {
		return zero, notFound
	}
	return list[i], nil
}

// remove borra la fila en el backend y, si acepta, de la colección local.
func remove[T any](ctx context.Context, s *Store, action string, table persistence.Table, id string,
	pick func(*State) *[]T, idOf func(T) string, notFound error) error {
	if _, err := lookup(s, func(st *State) []T { return *pick(st) }, id, idOf, notFound); err != nil {
		return err
	}
	err := s.run(ctx, action, func(ctx context.Context, b persistence.Backend) error {
		return b.Delete(ctx, table, id)
	})
	if err != nil {
		return err
	}
	s.commit(func(st *State) {
		list := pick(st)
		*list = removeByID(*list, id, idOf)
	})
	return nil
}

// ---- Todos ----

// AddTodo agrega un ítem al checklist; queda primero.
func (s *Store) AddTodo(ctx context.Context, d todos.Draft) (todos.Todo, error) {
	cat, err := s.activeCat(d.CatID)
	if err != nil {
		return todos.Todo{}, err
	}
	d.CatID = cat.ID
	d, err = d.Validate()
	if err != nil {
		return todos.Todo{}, err
	}

	var created todos.Todo
	err = s.run(ctx, "addTodo", func(ctx context.Context, b persistence.Backend) error {
		var err error
		created, err = persistence.InsertAs[todos.Todo](ctx, b, persistence.Todos, d)
		return err
	})
	if err != nil {
		return todos.Todo{}, err
	}
	s.commit(func(st *State) { st.Todos = append([]todos.Todo{created}, st.Todos...) })
	return created, nil
}

// ToggleTodo invierte is_completed.
func (s *Store) ToggleTodo(ctx context.Context, id string) error {
	current, err := lookup(s, func(st *State) []todos.Todo { return st.Todos }, id, todoID, todos.ErrNotFound)
	if err != nil {
		return err
	}
	next := todos.Toggle{IsCompleted: !current.IsCompleted}

	err = s.run(ctx, "toggleTodo", func(ctx context.Context, b persistence.Backend) error {
		return persistence.UpdateWith(ctx, b, persistence.Todos, id, next)
	})
	if err != nil {
		return err
	}
	s.commit(func(st *State) {
		if i := indexByID(st.Todos, id, todoID); i >= 0 {
			st.Todos[i].IsCompleted = next.IsCompleted
		}
	})
	return nil
}

func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	return remove(ctx, s, "deleteTodo", persistence.Todos, id,
		func(st *State) *[]todos.Todo { return &st.Todos }, todoID, todos.ErrNotFound)
}

// ---- Home checks ----

func (s *Store) AddHomeCheck(ctx context.Context, d homechecks.Draft) (homechecks.Check, error) {
	cat, err := s.activeCat(d.CatID)
	if err != nil {
		return homechecks.Check{}, err
	}
	d.CatID = cat.ID
	d, err = d.Validate()
	if err != nil {
		return homechecks.Check{}, err
	}

	var created homechecks.Check
	err = s.run(ctx, "addHomeCheck", func(ctx context.Context, b persistence.Backend) error {
		var err error
		created, err = persistence.InsertAs[homechecks.Check](ctx, b, persistence.HomeChecks, d)
		return err
	})
	if err != nil {
		return homechecks.Check{}, err
	}
	s.commit(func(st *State) { st.HomeChecks = append([]homechecks.Check{created}, st.HomeChecks...) })
	return created, nil
}

func (s *Store) UpdateHomeCheck(ctx context.Context, id string, p homechecks.Patch) error {
	if _, err := lookup(s, func(st *State) []homechecks.Check { return st.HomeChecks }, id, checkID, homechecks.ErrNotFound); err != nil {
		return err
	}
	p, err := p.Validate()
	if err != nil {
		return err
	}

	err = s.run(ctx, "updateHomeCheck", func(ctx context.Context, b persistence.Backend) error {
		return persistence.UpdateWith(ctx, b, persistence.HomeChecks, id, p)
	})
	if err != nil {
		return err
	}
	s.commit(func(st *State) {
		if i := indexByID(st.HomeChecks, id, checkID); i >= 0 {
			st.HomeChecks[i] = p.Apply(st.HomeChecks[i])
		}
	})
	return nil
}

func (s *Store) DeleteHomeCheck(ctx context.Context, id string) error {
	return remove(ctx, s, "deleteHomeCheck", persistence.HomeChecks, id,
		func(st *State) *[]homechecks.Check { return &st.HomeChecks }, checkID, homechecks.ErrNotFound)
}

// ---- Appointments ----

// AddAppointment agenda un turno. La colección se mantiene ordenada por fecha.
func (s *Store) AddAppointment(ctx context.Context, d appointments.Draft) (appointments.Appointment, error) {
	cat, err := s.activeCat(d.CatID)
	if err != nil {
		return appointments.Appointment{}, err
	}
	d.CatID = cat.ID
	d, err = d.Validate()
	if err != nil {
		return appointments.Appointment{}, err
	}

	var created appointments.Appointment
	err = s.run(ctx, "addAppointment", func(ctx context.Context, b persistence.Backend) error {
		var err error
		created, err = persistence.InsertAs[appointments.Appointment](ctx, b, persistence.Appointments, d)
		return err
	})
	if err != nil {
		return appointments.Appointment{}, err
	}
	s.commit(func(st *State) {
		st.Appointments = append(st.Appointments, created)
		appointments.SortByDate(st.Appointments)
	})
	return created, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, id string, p appointments.Patch) error {
	if _, err := lookup(s, func(st *State) []appointments.Appointment { return st.Appointments }, id, appointmentID, appointments.ErrNotFound); err != nil {
		return err
	}
	p, err := p.Validate()
	if err != nil {
		return err
	}

	err = s.run(ctx, "updateAppointment", func(ctx context.Context, b persistence.Backend) error {
		return persistence.UpdateWith(ctx, b, persistence.Appointments, id, p)
	})
	if err != nil {
		return err
	}
	s.commit(func(st *State) {
		if i := indexByID(st.Appointments, id, appointmentID); i >= 0 {
			st.Appointments[i] = p.Apply(st.Appointments[i])
		}
		appointments.SortByDate(st.Appointments)
	})
	return nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	return remove(ctx, s, "deleteAppointment", persistence.Appointments, id,
		func(st *State) *[]appointments.Appointment { return &st.Appointments }, appointmentID, appointments.ErrNotFound)
}

// ---- Medications ----

func (s *Store) AddMedication(ctx context.Context, d medications.Draft) (medications.Medication, error) {
	cat, err := s.activeCat(d.CatID)
	if err != nil {
		return medications.Medication{}, err
	}
	d.CatID = cat.ID
	d, err = d.Validate()
	if err != nil {
		return medications.Medication{}, err
	}

	var created medications.Medication
	err = s.run(ctx, "addMedication", func(ctx context.Context, b persistence.Backend) error {
		var err error
		created, err = persistence.InsertAs[medications.Medication](ctx, b, persistence.Medications, d)
		return err
	})
	if err != nil {
		return medications.Medication{}, err
	}
	s.commit(func(st *State) { st.Medications = append([]medications.Medication{created}, st.Medications...) })
	return created, nil
}

// UpdateMedication valida el patch contra el tratamiento actual (end >= start).
func (s *Store) UpdateMedication(ctx context.Context, id string, p medications.Patch) error {
	current, err := lookup(s, func(st *State) []medications.Medication { return st.Medications }, id, medicationID, medications.ErrNotFound)
	if err != nil {
		return err
	}
	p, err = p.Validate(current)
	if err != nil {
		return err
	}

	err = s.run(ctx, "updateMedication", func(ctx context.Context, b persistence.Backend) error {
		return persistence.UpdateWith(ctx, b, persistence.Medications, id, p)
	})
	if err != nil {
		return err
	}
	s.commit(func(st *State) {
		if i := indexByID(st.Medications, id, medicationID); i >= 0 {
			st.Medications[i] = p.Apply(st.Medications[i])
		}
	})
	return nil
}

func (s *Store) DeleteMedication(ctx context.Context, id string) error {
	return remove(ctx, s, "deleteMedication", persistence.Medications, id,
		func(st *State) *[]medications.Medication { return &st.Medications }, medicationID, medications.ErrNotFound)
}
