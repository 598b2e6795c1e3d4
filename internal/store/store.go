// Package store es el contenedor de estado de la aplicación: la cuenta, sus gatos,
// el gato activo y todas las colecciones de cuidado. Cada acción pasa por el
// backend de la sesión y, si el backend acepta, aplica la misma mutación local.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"cat-lifecycle/internal/adapters/media"
	"cat-lifecycle/internal/adapters/storage/memory"
	"cat-lifecycle/internal/domain/accounts"
	"cat-lifecycle/internal/domain/appointments"
	"cat-lifecycle/internal/domain/healthlogs"
	"cat-lifecycle/internal/domain/healthtips"
	"cat-lifecycle/internal/domain/homechecks"
	"cat-lifecycle/internal/domain/medications"
	"cat-lifecycle/internal/domain/pets"
	"cat-lifecycle/internal/domain/todos"
	"cat-lifecycle/internal/platform/logger"
	"cat-lifecycle/internal/ports/persistence"
)

var (
	ErrNotSignedIn = errors.New("not signed in")
	ErrNoActivePet = errors.New("no active pet")
	ErrNoBackend   = errors.New("no live backend configured")
)

// State es lo que ve la vista. Snapshot devuelve copias.
type State struct {
	User         *accounts.Profile          `json:"user"`
	Cats         []pets.Cat                 `json:"cats"`
	CurrentCatID string                     `json:"current_cat_id,omitempty"`
	Logs         []healthlogs.Entry         `json:"logs"`
	Todos        []todos.Todo               `json:"todos"`
	HomeChecks   []homechecks.Check         `json:"home_checks"`
	HealthTips   []healthtips.Tip           `json:"health_tips"`
	Appointments []appointments.Appointment `json:"appointments"`
	Medications  []medications.Medication   `json:"medications"`
	Loading      bool                       `json:"loading"`
}

func (st State) clone() State {
	out := st
	if st.User != nil {
		u := *st.User
		u.CreatedAt = clonePtr(u.CreatedAt)
		out.User = &u
	}
	out.Cats = cloneEach(st.Cats, func(c *pets.Cat) {
		c.BCS = clonePtr(c.BCS)
		c.CreatedAt = clonePtr(c.CreatedAt)
	})
	out.Logs = cloneEach(st.Logs, func(e *healthlogs.Entry) { e.CreatedAt = clonePtr(e.CreatedAt) })
	out.Todos = cloneEach(st.Todos, func(t *todos.Todo) { t.CreatedAt = clonePtr(t.CreatedAt) })
	out.HomeChecks = cloneEach(st.HomeChecks, func(c *homechecks.Check) { c.CreatedAt = clonePtr(c.CreatedAt) })
	out.HealthTips = cloneEach(st.HealthTips, func(t *healthtips.Tip) { t.CreatedAt = clonePtr(t.CreatedAt) })
	out.Appointments = cloneEach(st.Appointments, func(a *appointments.Appointment) { a.CreatedAt = clonePtr(a.CreatedAt) })
	out.Medications = cloneEach(st.Medications, func(m *medications.Medication) { m.CreatedAt = clonePtr(m.CreatedAt) })
	return out
}

// cloneEach copia la lista y deja que fix separe los punteros de cada elemento.
// Los valores de healthlogs son structs inmutables; se comparten.
func cloneEach[T any](list []T, fix func(*T)) []T {
	out := make([]T, len(list))
	copy(out, list)
	for i := range out {
		fix(&out[i])
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ActionObserver recibe una medición por acción (métricas).
type ActionObserver interface {
	ObserveAction(action, backend string, err error, d time.Duration)
	ColumnFallback(table, column string)
}

// DemoFactory arma el backend en memoria del modo demo.
type DemoFactory func(now func() time.Time) (persistence.Backend, error)

type Options struct {
	// Live es el backend remoto. Puede ser nil: solo queda disponible el modo demo.
	Live    persistence.Backend
	Demo    DemoFactory
	Logger  logger.Logger
	Metrics ActionObserver
	Now     func() time.Time
	// Media convierte imágenes subidas en la URL que se guarda.
	Media media.Encoder
	// RedirectURL es adonde vuelve el usuario después de OAuth o del link por email.
	RedirectURL string
}

type Store struct {
	live        persistence.Backend
	demo        DemoFactory
	log         logger.Logger
	metrics     ActionObserver
	now         func() time.Time
	media       media.Encoder
	redirectURL string

	mu      sync.RWMutex
	state   State
	backend persistence.Backend
	isDemo  bool

	subMu  sync.Mutex
	subs   map[int]func(State)
	nextID int
}

func New(opts Options) *Store {
	s := &Store{
		live:        opts.Live,
		demo:        opts.Demo,
		log:         opts.Logger,
		metrics:     opts.Metrics,
		now:         opts.Now,
		media:       opts.Media,
		redirectURL: opts.RedirectURL,
		backend:     opts.Live,
		subs:        map[int]func(State){},
	}
	if s.demo == nil {
		s.demo = func(now func() time.Time) (persistence.Backend, error) {
			b, err := memory.NewDemoBackend(now)
			if err != nil {
				return nil, err
			}
			return b, nil
		}
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.media == nil {
		s.media = media.DataURL{}
	}
	s.state = emptyState()
	return s
}

func emptyState() State {
	return State{
		Cats:         []pets.Cat{},
		Logs:         []healthlogs.Entry{},
		Todos:        []todos.Todo{},
		HomeChecks:   []homechecks.Check{},
		HealthTips:   []healthtips.Tip{},
		Appointments: []appointments.Appointment{},
		Medications:  []medications.Medication{},
	}
}

// Snapshot devuelve una copia del estado; modificarla no afecta al store.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registra fn para cada mutación confirmada. Devuelve la baja.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// IsDemo indica si la sesión actual usa el backend del modo demo.
func (s *Store) IsDemo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isDemo
}

// BackendName es el nombre del backend de la sesión ("" si no hay).
func (s *Store) BackendName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.backend == nil {
		return ""
	}
	return s.backend.Name()
}

// Now es el reloj del store (los selectores lo usan por defecto).
func (s *Store) Now() time.Time { return s.now() }

func (s *Store) session() (persistence.Backend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.backend == nil {
		return nil, ErrNoBackend
	}
	return s.backend, nil
}

// run es el único pipeline de acciones: resuelve el backend de la sesión,
// ejecuta fn, loguea y mide.
func (s *Store) run(ctx context.Context, action string, fn func(ctx context.Context, b persistence.Backend) error) error {
	start := time.Now()
	b, err := s.session()
	if err == nil {
		err = fn(ctx, b)
	}

	name := ""
	if b != nil {
		name = b.Name()
	}
	if s.metrics != nil {
		s.metrics.ObserveAction(action, name, err, time.Since(start))
	}

	fields := map[string]any{"action": action, "backend": name}
	if err != nil {
		fields["err"] = err.Error()
		s.log.Warn("store action failed", fields)
		return err
	}
	s.log.Debug("store action", fields)
	return nil
}

// commit aplica fn bajo lock y notifica a los suscriptores con el estado nuevo.
func (s *Store) commit(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.clone()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *Store) notify(snap State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// signedIn devuelve el perfil actual o ErrNotSignedIn.
func (s *Store) signedIn() (accounts.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return accounts.Profile{}, ErrNotSignedIn
	}
	return *s.state.User, nil
}

// requireCapability corta antes de tocar el backend si el perfil no puede.
func (s *Store) requireCapability(c accounts.Capability) error {
	u, err := s.signedIn()
	if err != nil {
		return err
	}
	return accounts.Require(&u, c)
}

// activeCat resuelve el gato destino: catID explícito o el activo.
// El gato tiene que estar cargado (pertenecer a la cuenta).
func (s *Store) activeCat(catID string) (pets.Cat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return pets.Cat{}, ErrNotSignedIn
	}
	if catID == "" {
		catID = s.state.CurrentCatID
	}
	if catID == "" {
		return pets.Cat{}, ErrNoActivePet
	}
	i := pets.IndexOf(s.state.Cats, catID)
	if i < 0 || !pets.OwnedBy(s.state.Cats[i], s.state.User.ID) {
		return pets.Cat{}, pets.ErrNotFound
	}
	return s.state.Cats[i], nil
}

func indexByID[T any](list []T, id string, idOf func(T) string) int {
	for i := range list {
		if idOf(list[i]) == id {
			return i
		}
	}
	return -1
}

func removeByID[T any](list []T, id string, idOf func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if idOf(v) != id {
			out = append(out, v)
		}
	}
	return out
}
