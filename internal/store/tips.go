package store

import (
	"context"

	"cat-lifecycle/internal/domain/accounts"
	"cat-lifecycle/internal/domain/healthtips"
	"cat-lifecycle/internal/ports/persistence"
)

func tipID(t healthtips.Tip) string { return t.ID }

// AddHealthTip publica contenido nuevo. Solo administradores.
func (s *Store) AddHealthTip(ctx context.Context, d healthtips.Draft) (healthtips.Tip, error) {
	if err := s.requireCapability(accounts.CapManageTips); err != nil {
		return healthtips.Tip{}, err
	}
	d, err := d.Validate()
	if err != nil {
		return healthtips.Tip{}, err
	}

	var created healthtips.Tip
	err = s.run(ctx, "addHealthTip", func(ctx context.Context, b persistence.Backend) error {
		var err error
		created, err = persistence.InsertAs[healthtips.Tip](ctx, b, persistence.HealthTips, d)
		return err
	})
	if err != nil {
		return healthtips.Tip{}, err
	}
	s.commit(func(st *State) { st.HealthTips = append([]healthtips.Tip{created}, st.HealthTips...) })
	return created, nil
}

func (s *Store) UpdateHealthTip(ctx context.Context, id string, p healthtips.Patch) error {
	if err := s.requireCapability(accounts.CapManageTips); err != nil {
		return err
	}
	if _, err := lookup(s, func(st *State) []healthtips.Tip { return st.HealthTips }, id, tipID, healthtips.ErrNotFound); err != nil {
		return err
	}
	p, err := p.Validate()
	if err != nil {
		return err
	}

	err = s.run(ctx, "updateHealthTip", func(ctx context.Context, b persistence.Backend) error {
		return persistence.UpdateWith(ctx, b, persistence.HealthTips, id, p)
	})
	if err != nil {
		return err
	}
	s.commit(func(st *State) {
		if i := indexByID(st.HealthTips, id, tipID); i >= 0 {
			st.HealthTips[i] = p.Apply(st.HealthTips[i])
		}
	})
	return nil
}

func (s *Store) DeleteHealthTip(ctx context.Context, id string) error {
	if err := s.requireCapability(accounts.CapManageTips); err != nil {
		return err
	}
	return remove(ctx, s, "deleteHealthTip", persistence.HealthTips, id,
		func(st *State) *[]healthtips.Tip { return &st.HealthTips }, tipID, healthtips.ErrNotFound)
}
