package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cat-lifecycle/internal/domain/accounts"
	"cat-lifecycle/internal/domain/appointments"
	"cat-lifecycle/internal/domain/healthlogs"
	"cat-lifecycle/internal/domain/healthtips"
	"cat-lifecycle/internal/domain/homechecks"
	"cat-lifecycle/internal/domain/medications"
	"cat-lifecycle/internal/domain/pets"
	"cat-lifecycle/internal/domain/todos"
	"cat-lifecycle/internal/ports/auth"
	"cat-lifecycle/internal/ports/persistence"
)

// LoadInitialData recarga todo para la identidad actual. Sin identidad limpia el estado.
// Loading queda en false al salir, haya error o no.
func (s *Store) LoadInitialData(ctx context.Context) error {
	s.commit(func(st *State) { st.Loading = true })
	defer s.commit(func(st *State) { st.Loading = false })

	return s.run(ctx, "loadInitialData", func(ctx context.Context, b persistence.Backend) error {
		id, err := b.Auth().CurrentUser(ctx)
		if err != nil {
			return fmt.Errorf("resolve identity: %w", err)
		}
		if id == nil {
			s.commit(func(st *State) { *st = emptyState() })
			return nil
		}

		next, err := s.fetchAll(ctx, b, *id)
		if err != nil {
			return err
		}

		s.commit(func(st *State) {
			prev := st.CurrentCatID
			*st = next
			st.Loading = true
			if prev != "" && pets.IndexOf(st.Cats, prev) >= 0 {
				st.CurrentCatID = prev
			} else if len(st.Cats) > 0 {
				st.CurrentCatID = st.Cats[0].ID
			}
		})
		return nil
	})
}

func (s *Store) fetchAll(ctx context.Context, b persistence.Backend, id auth.Identity) (State, error) {
	next := emptyState()

	profile, err := s.fetchProfile(ctx, b, id)
	if err != nil {
		return State{}, err
	}
	next.User = &profile

	cats, err := persistence.SelectAs[pets.Cat](ctx, b, persistence.Cats,
		persistence.Select().Where(persistence.Eq("user_id", id.ID)).OrderBy("created_at", false))
	if err != nil {
		return State{}, fmt.Errorf("load cats: %w", err)
	}
	next.Cats = cats

	tips, err := s.fetchTips(ctx, b)
	if err != nil {
		return State{}, err
	}
	next.HealthTips = tips

	if len(cats) == 0 {
		return next, nil
	}

	byCats := persistence.Select().Where(persistence.In("cat_id", pets.IDs(cats)...))

	if next.Logs, err = persistence.SelectAs[healthlogs.Entry](ctx, b, persistence.HealthLogs, byCats); err != nil {
		return State{}, fmt.Errorf("load health logs: %w", err)
	}
	if next.Todos, err = persistence.SelectAs[todos.Todo](ctx, b, persistence.Todos, byCats.OrderBy("created_at", true)); err != nil {
		return State{}, fmt.Errorf("load todos: %w", err)
	}
	if next.HomeChecks, err = persistence.SelectAs[homechecks.Check](ctx, b, persistence.HomeChecks, byCats); err != nil {
		return State{}, fmt.Errorf("load home checks: %w", err)
	}
	if next.Appointments, err = persistence.SelectAs[appointments.Appointment](ctx, b, persistence.Appointments, byCats.OrderBy("date", false)); err != nil {
		return State{}, fmt.Errorf("load appointments: %w", err)
	}
	if next.Medications, err = persistence.SelectAs[medications.Medication](ctx, b, persistence.Medications, byCats.OrderBy("start_date", true)); err != nil {
		return State{}, fmt.Errorf("load medications: %w", err)
	}
	return next, nil
}

// fetchProfile lee el perfil o crea el de defaults. Si el alta falla se sigue con
// los defaults en memoria: el perfil no bloquea el uso de la app.
func (s *Store) fetchProfile(ctx context.Context, b persistence.Backend, id auth.Identity) (accounts.Profile, error) {
	rows, err := persistence.SelectAs[accounts.Profile](ctx, b, persistence.Profiles,
		persistence.Select().Where(persistence.Eq("id", id.ID)).WithLimit(1))
	if err != nil {
		return accounts.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if len(rows) > 0 {
		p := rows[0].Normalize()
		if p.Email == "" {
			p.Email = id.Email
		}
		return p, nil
	}

	p := accounts.Default(id.ID, id.Email)
	created, err := persistence.InsertAs[accounts.Profile](ctx, b, persistence.Profiles, p)
	if err != nil {
		s.log.Warn("profile create failed, using defaults", map[string]any{"user_id": id.ID, "err": err.Error()})
		return p, nil
	}
	return created.Normalize(), nil
}

// fetchTips trae el catálogo y agrega por título los tips incorporados que falten.
// Un catálogo que no se puede sembrar (sin permisos) se usa tal cual.
func (s *Store) fetchTips(ctx context.Context, b persistence.Backend) ([]healthtips.Tip, error) {
	q := persistence.Select().OrderBy("created_at", true)
	tips, err := persistence.SelectAs[healthtips.Tip](ctx, b, persistence.HealthTips, q)
	if err != nil {
		return nil, fmt.Errorf("load health tips: %w", err)
	}

	missing := healthtips.Missing(tips)
	if len(missing) == 0 {
		return tips, nil
	}

	for _, d := range missing {
		if _, err := persistence.InsertAs[healthtips.Tip](ctx, b, persistence.HealthTips, d); err != nil {
			s.log.Warn("health tip sync failed", map[string]any{"title": d.Title, "err": err.Error()})
			return tips, nil
		}
	}
	s.log.Info("health tips synced", map[string]any{"added": len(missing)})

	tips, err = persistence.SelectAs[healthtips.Tip](ctx, b, persistence.HealthTips, q)
	if err != nil {
		return nil, fmt.Errorf("reload health tips: %w", err)
	}
	return tips, nil
}

// Login inicia OAuth contra el backend remoto y devuelve la URL de redirección.
func (s *Store) Login(ctx context.Context, provider string) (string, error) {
	var redirect string
	err := s.runLive(ctx, "login", func(ctx context.Context, b persistence.Backend) error {
		var err error
		redirect, err = b.Auth().SignInWithOAuth(ctx, provider, s.redirectURL)
		return err
	})
	return redirect, err
}

// LoginWithEmail envía el link de acceso.
func (s *Store) LoginWithEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email required", accounts.ErrInvalidInput)
	}
	return s.runLive(ctx, "loginWithEmail", func(ctx context.Context, b persistence.Backend) error {
		return b.Auth().SignInWithOTP(ctx, email, s.redirectURL)
	})
}

// SetSessionToken entrega al backend remoto el access token que la vista obtuvo
// de la redirección y recarga los datos.
func (s *Store) SetSessionToken(ctx context.Context, token string) error {
	if err := s.useLive(); err != nil {
		return err
	}
	s.live.Auth().SetSession(token)
	return s.LoadInitialData(ctx)
}

// tokenExchanger lo implementan proveedores cuyo link trae un token de un solo uso.
type tokenExchanger interface {
	Exchange(ctx context.Context, linkToken string) (string, *auth.Identity, error)
}

// CompleteSignIn cierra el login por link: canjea el token si el proveedor lo
// requiere (o lo usa como sesión) y recarga. Devuelve el token de sesión.
func (s *Store) CompleteSignIn(ctx context.Context, token string) (string, error) {
	if err := s.useLive(); err != nil {
		return "", err
	}
	ex, ok := s.live.Auth().(tokenExchanger)
	if !ok {
		return token, s.SetSessionToken(ctx, token)
	}

	var session string
	err := s.run(ctx, "completeSignIn", func(ctx context.Context, b persistence.Backend) error {
		var err error
		session, _, err = ex.Exchange(ctx, token)
		return err
	})
	if err != nil {
		return "", err
	}
	return session, s.LoadInitialData(ctx)
}

// LoginAsDemo cambia la sesión al backend demo (en memoria, sin red) y carga el fixture.
func (s *Store) LoginAsDemo(ctx context.Context) error {
	demo, err := s.demo(s.now)
	if err != nil {
		return fmt.Errorf("demo backend: %w", err)
	}
	s.mu.Lock()
	s.backend = demo
	s.isDemo = true
	s.mu.Unlock()

	return s.LoadInitialData(ctx)
}

// Logout invalida la sesión del backend actual, limpia todo y vuelve al backend remoto.
// El estado se limpia aunque el backend falle.
func (s *Store) Logout(ctx context.Context) error {
	err := s.run(ctx, "logout", func(ctx context.Context, b persistence.Backend) error {
		return b.Auth().SignOut(ctx)
	})

	s.mu.Lock()
	s.backend = s.live
	s.isDemo = false
	s.mu.Unlock()
	s.commit(func(st *State) { *st = emptyState() })

	if errors.Is(err, ErrNoBackend) {
		return nil
	}
	return err
}

// runLive fuerza el backend remoto para la sesión y corre la acción.
func (s *Store) runLive(ctx context.Context, action string, fn func(ctx context.Context, b persistence.Backend) error) error {
	if err := s.useLive(); err != nil {
		return err
	}
	return s.run(ctx, action, fn)
}

func (s *Store) useLive() error {
	if s.live == nil {
		return ErrNoBackend
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isDemo {
		s.state = emptyState()
	}
	s.backend = s.live
	s.isDemo = false
	return nil
}
