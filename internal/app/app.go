// Package app arma todas las dependencias a partir de la configuración.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"cat-lifecycle/internal/adapters/auth/localauth"
	"cat-lifecycle/internal/adapters/media"
	"cat-lifecycle/internal/adapters/storage/memory"
	"cat-lifecycle/internal/adapters/storage/migrations"
	"cat-lifecycle/internal/adapters/storage/postgres"
	"cat-lifecycle/internal/adapters/storage/sqlite"
	"cat-lifecycle/internal/adapters/storage/supabase"
	"cat-lifecycle/internal/platform/config"
	"cat-lifecycle/internal/platform/logger"
	"cat-lifecycle/internal/platform/metrics"
	"cat-lifecycle/internal/ports/auth"
	"cat-lifecycle/internal/ports/persistence"
	"cat-lifecycle/internal/store"
)

// App es la capa entre los entrypoints (api, catlogctl) y el store.
// El caller tiene que llamar Close.
type App struct {
	Config   *config.Config
	Log      logger.Logger
	Store    *store.Store
	Live     persistence.Backend
	Verifier auth.AuthVerifier // nil: el middleware no valida tokens

	closers []io.Closer
}

// Backend es lo que arma NewBackendFromConfig.
type Backend struct {
	persistence.Backend
	Verifier auth.AuthVerifier
	// DB es la conexión de los backends SQL (nil en memory/supabase).
	DB      *sql.DB
	closers []io.Closer
}

func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}

	b, err := NewBackendFromConfig(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("creating backend: %w", err)
	}

	enc, err := NewMediaFromConfig(ctx, cfg.Media)
	if err != nil {
		closeAll(b.closers)
		return nil, fmt.Errorf("creating media encoder: %w", err)
	}

	s := store.New(store.Options{
		Live:        b.Backend,
		Logger:      log.With(map[string]any{"component": "store"}),
		Metrics:     metrics.Store{},
		Media:       enc,
		RedirectURL: cfg.Server.RedirectURL,
	})

	log.Info("app ready", map[string]any{"backend": b.Name(), "media": cfg.Media.Type})
	return &App{
		Config:   cfg,
		Log:      log,
		Store:    s,
		Live:     b.Backend,
		Verifier: b.Verifier,
		closers:  b.closers,
	}, nil
}

func (a *App) Close() error {
	return closeAll(a.closers)
}

// NewBackendFromConfig crea el backend remoto según backend.type.
func NewBackendFromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (*Backend, error) {
	bc := cfg.Backend
	switch bc.Type {
	case "memory":
		// Sin identidad: solo sirve el modo demo (o tests).
		return &Backend{Backend: memory.NewBackend(nil)}, nil

	case "supabase":
		c, err := supabase.New(supabase.Config{
			URL:       bc.SupabaseURL,
			AnonKey:   bc.SupabaseAnonKey,
			JWTSecret: bc.SupabaseJWTSecret,
			Timeout:   bc.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return &Backend{Backend: c, Verifier: c.Verifier()}, nil

	case "postgres":
		db, err := postgres.Open(bc.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return newSQLBackend(ctx, cfg, log, db, migrations.Postgres, func(p auth.Provider) persistence.Backend {
			return postgres.NewBackend(db, p)
		})

	case "sqlite":
		db, err := sqlite.OpenConnection(bc.SQLitePath)
		if err != nil {
			return nil, err
		}
		return newSQLBackend(ctx, cfg, log, db, migrations.SQLite, func(p auth.Provider) persistence.Backend {
			return sqlite.NewBackend(db, p)
		})

	default:
		return nil, fmt.Errorf("unknown backend type: %s", bc.Type)
	}
}

func newSQLBackend(ctx context.Context, cfg *config.Config, log logger.Logger, db *sql.DB, d migrations.Dialect,
	build func(auth.Provider) persistence.Backend) (*Backend, error) {
	closers := []io.Closer{db}

	if cfg.Backend.AutoMigrate {
		if err := migrations.MigrateUp(db, d); err != nil {
			closeAll(closers)
			return nil, err
		}
	}
	if err := migrations.CheckDBMigrationStatus(db, d); err != nil {
		// Un esquema viejo sigue funcionando (cats.bcs se tolera); solo se avisa.
		log.Warn("database schema out of date", map[string]any{"dialect": string(d), "err": err})
	}

	revoked, err := NewRevocationsFromConfig(cfg.Auth)
	if err != nil {
		closeAll(closers)
		return nil, fmt.Errorf("creating session store: %w", err)
	}
	if c, ok := revoked.(io.Closer); ok {
		closers = append(closers, c)
	}

	p, err := localauth.New(localauth.Config{
		Secret:     cfg.Auth.Secret,
		LinkTTL:    cfg.Auth.LinkTTL,
		SessionTTL: cfg.Auth.SessionTTL,
	}, nil, revoked, localauth.WithLogger(log.With(map[string]any{"component": "localauth"})))
	if err != nil {
		closeAll(closers)
		return nil, err
	}

	return &Backend{Backend: build(p), Verifier: p, DB: db, closers: closers}, nil
}

// NewRevocationsFromConfig elige dónde se guardan las sesiones revocadas.
func NewRevocationsFromConfig(cfg config.AuthConfig) (localauth.RevocationStore, error) {
	switch cfg.SessionStore {
	case "memory", "":
		return localauth.NewMemoryRevocations(), nil
	case "redis":
		r, err := localauth.NewRedisRevocations(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown session store: %s", cfg.SessionStore)
	}
}

// NewMediaFromConfig elige cómo se guardan las imágenes subidas.
func NewMediaFromConfig(ctx context.Context, cfg config.MediaConfig) (media.Encoder, error) {
	switch cfg.Type {
	case "dataurl", "":
		return media.DataURL{}, nil
	case "minio":
		return media.NewMinIO(ctx, media.MinIOConfig{
			Endpoint:   cfg.MinIOEndpoint,
			AccessKey:  cfg.MinIOAccessKey,
			SecretKey:  cfg.MinIOSecretKey,
			Bucket:     cfg.MinIOBucket,
			UseSSL:     cfg.MinIOUseSSL,
			PublicBase: cfg.MinIOPublicBase,
			Prefix:     "uploads",
		})
	default:
		return nil, fmt.Errorf("unknown media type: %s", cfg.Type)
	}
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
