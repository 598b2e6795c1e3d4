package store

import (
	"context"
	"fmt"

	"cat-lifecycle/internal/domain/healthlogs"
	"cat-lifecycle/internal/domain/pets"
	"cat-lifecycle/internal/ports/persistence"
)

func entryID(e healthlogs.Entry) string { return e.ID }

// AddLog agrega un registro al gato indicado (o al activo). Un registro de peso
// también actualiza weight_kg del gato dentro de la misma acción.
func (s *Store) AddLog(ctx context.Context, d healthlogs.Draft) (healthlogs.Entry, error) {
	cat, err := s.activeCat(d.CatID)
	if err != nil {
		return healthlogs.Entry{}, err
	}
	d.CatID = cat.ID
	d, err = d.Validate()
	if err != nil {
		return healthlogs.Entry{}, err
	}

	var (
		created   healthlogs.Entry
		inserted  bool
		weightErr error
	)
	err = s.run(ctx, "addLog", func(ctx context.Context, b persistence.Backend) error {
		var err error
		created, err = persistence.InsertAs[healthlogs.Entry](ctx, b, persistence.HealthLogs, d)
		if err != nil {
			return err
		}
		inserted = true
		weightErr = s.syncWeight(ctx, b, cat.ID, d.Value)
		return weightErr
	})
	if !inserted {
		return healthlogs.Entry{}, err
	}

	s.commit(func(st *State) {
		st.Logs = append(st.Logs, created)
		if weightErr == nil {
			applyWeight(st, cat.ID, d.Value)
		}
	})
	return created, err
}

// UpdateLog edita fecha, valor, nota o imagen. La categoría no cambia.
func (s *Store) UpdateLog(ctx context.Context, id string, p healthlogs.Patch) error {
	current, err := s.findLog(id)
	if err != nil {
		return err
	}
	p, err = p.Validate(current.Category)
	if err != nil {
		return err
	}

	var (
		updated   bool
		weightErr error
	)
	err = s.run(ctx, "updateLog", func(ctx context.Context, b persistence.Backend) error {
		if err := persistence.UpdateWith(ctx, b, persistence.HealthLogs, id, p); err != nil {
			return err
		}
		updated = true
		weightErr = s.syncWeight(ctx, b, current.CatID, p.Value)
		return weightErr
	})
	if !updated {
		return err
	}

	s.commit(func(st *State) {
		if i := indexByID(st.Logs, id, entryID); i >= 0 {
			st.Logs[i] = p.Apply(st.Logs[i])
		}
		if weightErr == nil {
			applyWeight(st, current.CatID, p.Value)
		}
	})
	return err
}

func (s *Store) DeleteLog(ctx context.Context, id string) error {
	if _, err := s.findLog(id); err != nil {
		return err
	}
	err := s.run(ctx, "deleteLog", func(ctx context.Context, b persistence.Backend) error {
		return b.Delete(ctx, persistence.HealthLogs, id)
	})
	if err != nil {
		return err
	}
	s.commit(func(st *State) { st.Logs = removeByID(st.Logs, id, entryID) })
	return nil
}

func (s *Store) findLog(id string) (healthlogs.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return healthlogs.Entry{}, ErrNotSignedIn
	}
	i := indexByID(s.state.Logs, id, entryID)
	if i < 0 {
		return healthlogs.Entry{}, healthlogs.ErrNotFound
	}
	return s.state.Logs[i], nil
}

// syncWeight copia un valor de peso al perfil del gato. Otros valores no hacen nada.
func (s *Store) syncWeight(ctx context.Context, b persistence.Backend, catID string, v healthlogs.Value) error {
	w, ok := v.(healthlogs.WeightValue)
	if !ok {
		return nil
	}
	kg := w.Kg
	if err := persistence.UpdateWith(ctx, b, persistence.Cats, catID, pets.Patch{WeightKg: &kg}); err != nil {
		return fmt.Errorf("sync cat weight: %w", err)
	}
	return nil
}

func applyWeight(st *State, catID string, v healthlogs.Value) {
	w, ok := v.(healthlogs.WeightValue)
	if !ok {
		return
	}
	if i := pets.IndexOf(st.Cats, catID); i >= 0 {
		st.Cats[i].WeightKg = w.Kg
	}
}
