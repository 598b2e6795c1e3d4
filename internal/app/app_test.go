package app

import (
	"context"
	"testing"

	"cat-lifecycle/internal/adapters/auth/localauth"
	"cat-lifecycle/internal/adapters/media"
	"cat-lifecycle/internal/adapters/storage/migrations"
	"cat-lifecycle/internal/platform/config"
	"cat-lifecycle/internal/platform/logger"

	"github.com/stretchr/testify/require"
)

func TestNew_MemoryBackendRunsDemo(t *testing.T) {
	a, err := New(context.Background(), config.Default(), logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, "memory", a.Live.Name())
	require.Nil(t, a.Verifier)

	require.NoError(t, a.Store.LoginAsDemo(context.Background()))
	require.True(t, a.Store.IsDemo())
	require.Len(t, a.Store.Snapshot().Cats, 1)
}

func TestNewBackendFromConfig_SQLiteAutoMigrate(t *testing.T) {
	cfg := config.Default()
	cfg.Backend.Type = "sqlite"
	cfg.Backend.SQLitePath = ":memory:"
	cfg.Backend.AutoMigrate = true
	cfg.Auth.Secret = "test-secret"

	b, err := NewBackendFromConfig(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer closeAll(b.closers)

	require.Equal(t, "sqlite", b.Name())
	require.NotNil(t, b.DB)
	_, ok := b.Verifier.(*localauth.Provider)
	require.True(t, ok)

	st, err := migrations.CurrentStatus(b.DB, migrations.SQLite)
	require.NoError(t, err)
	require.True(t, st.UpToDate())
}

func TestNewBackendFromConfig_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.Backend.Type = "mongo"
	_, err := NewBackendFromConfig(context.Background(), cfg, logger.Nop())
	require.Error(t, err)

	cfg = config.Default()
	cfg.Backend.Type = "supabase"
	_, err = NewBackendFromConfig(context.Background(), cfg, logger.Nop())
	require.Error(t, err)

	cfg = config.Default()
	cfg.Backend.Type = "sqlite"
	cfg.Backend.SQLitePath = ":memory:"
	_, err = NewBackendFromConfig(context.Background(), cfg, logger.Nop())
	require.ErrorIs(t, err, localauth.ErrNoSecret)
}

func TestNewBackendFromConfig_Supabase(t *testing.T) {
	cfg := config.Default()
	cfg.Backend.Type = "supabase"
	cfg.Backend.SupabaseURL = "https://project.supabase.co"
	cfg.Backend.SupabaseAnonKey = "anon"
	cfg.Backend.SupabaseJWTSecret = "jwt-secret"

	b, err := NewBackendFromConfig(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	require.Equal(t, "supabase", b.Name())
	require.NotNil(t, b.Verifier)
}

func TestFactories_UnknownTypes(t *testing.T) {
	_, err := NewRevocationsFromConfig(config.AuthConfig{SessionStore: "etcd"})
	require.Error(t, err)

	r, err := NewRevocationsFromConfig(config.AuthConfig{})
	require.NoError(t, err)
	require.IsType(t, &localauth.MemoryRevocations{}, r)

	enc, err := NewMediaFromConfig(context.Background(), config.MediaConfig{Type: "dataurl"})
	require.NoError(t, err)
	require.IsType(t, media.DataURL{}, enc)

	_, err = NewMediaFromConfig(context.Background(), config.MediaConfig{Type: "s3"})
	require.Error(t, err)
}
