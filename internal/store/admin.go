package store

import (
	"context"
	"fmt"
	"strings"

	"cat-lifecycle/internal/domain/accounts"
	"cat-lifecycle/internal/ports/persistence"
)

// ListProfiles devuelve todas las cuentas, más nuevas primero.
func (s *Store) ListProfiles(ctx context.Context) ([]accounts.Profile, error) {
	if err := s.requireCapability(accounts.CapManageUsers); err != nil {
		return nil, err
	}

	var out []accounts.Profile
	err := s.run(ctx, "listProfiles", func(ctx context.Context, b persistence.Backend) error {
		rows, err := persistence.SelectAs[accounts.Profile](ctx, b, persistence.Profiles,
			persistence.Select().OrderBy("created_at", true))
		if err != nil {
			return err
		}
		out = make([]accounts.Profile, 0, len(rows))
		for _, p := range rows {
			out = append(out, p.Normalize())
		}
		return nil
	})
	return out, err
}

// SetAdmin cambia el flag de administrador de la cuenta id.
func (s *Store) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	if err := s.requireCapability(accounts.CapManageUsers); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id required", accounts.ErrInvalidInput)
	}

	err := s.run(ctx, "setAdmin", func(ctx context.Context, b persistence.Backend) error {
		return persistence.UpdateWith(ctx, b, persistence.Profiles, id, accounts.AdminPatch{IsAdmin: isAdmin})
	})
	if err != nil {
		return err
	}
	s.commit(func(st *State) {
		if st.User != nil && st.User.ID == id {
			st.User.IsAdmin = isAdmin
		}
	})
	return nil
}

// AdminStats cuenta filas con el conteo exacto del backend.
func (s *Store) AdminStats(ctx context.Context) (accounts.Stats, error) {
	if err := s.requireCapability(accounts.CapViewStats); err != nil {
		return accounts.Stats{}, err
	}

	var out accounts.Stats
	err := s.run(ctx, "adminStats", func(ctx context.Context, b persistence.Backend) error {
		counts := []struct {
			table persistence.Table
			dst   *int
		}{
			{persistence.Profiles, &out.Users},
			{persistence.Cats, &out.Cats},
			{persistence.HealthLogs, &out.Logs},
			{persistence.HealthTips, &out.Tips},
		}
		for _, c := range counts {
			n, err := persistence.Count(ctx, b, c.table)
			if err != nil {
				return fmt.Errorf("count %s: %w", c.table, err)
			}
			*c.dst = n
		}
		return nil
	})
	return out, err
}
