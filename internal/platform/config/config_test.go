package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManager_ReadKeepsDefaults(t *testing.T) {
	in := `
[backend]
type = "sqlite"
sqlite_path = "/tmp/cats.db"

[auth]
secret = "s3cret"
`
	cfg, err := (&Manager{}).Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Backend.Type)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "dataurl", cfg.Media.Type)
	require.NoError(t, cfg.Validate())
}

func TestManager_RoundTrip(t *testing.T) {
	m := &Manager{}
	cfg := Default()
	cfg.Backend.Type = "supabase"
	cfg.Backend.SupabaseURL = "https://x.supabase.co"
	cfg.Backend.SupabaseAnonKey = "anon"

	var buf bytes.Buffer
	require.NoError(t, m.Write(&buf, cfg))
	got, err := m.Read(&buf)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Backend.Type = "postgres"
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "postgres_dsn")
	require.Contains(t, err.Error(), "auth.secret")

	cfg = Default()
	cfg.Backend.Type = "mongo"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Media.Type = "minio"
	require.Error(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("CATLOG_BACKEND", "postgres")
	t.Setenv("DB_DSN", "postgres://localhost/cats")
	t.Setenv("CATLOG_AUTH_SECRET", "env-secret")
	t.Setenv("CATLOG_SESSION_TTL", "1h")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))
	require.Equal(t, "postgres", cfg.Backend.Type)
	require.Equal(t, "postgres://localhost/cats", cfg.Backend.PostgresDSN)
	require.Equal(t, time.Hour, cfg.Auth.SessionTTL)
	// Lo no definido conserva el default.
	require.Equal(t, ":8080", cfg.Server.Addr)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catlog.toml")
	require.NoError(t, Init(path, Default()))
	require.Error(t, Init(path, Default()))

	cfg, err := ReadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}
