// Package config carga la configuración: archivo TOML, .env y variables de entorno
// (en ese orden de precedencia creciente).
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
	Backend BackendConfig `toml:"backend"`
	Auth    AuthConfig    `toml:"auth"`
	Media   MediaConfig   `toml:"media"`
}

type ServerConfig struct {
	Addr         string        `toml:"addr" env:"CATLOG_ADDR"`
	ReadTimeout  time.Duration `toml:"read_timeout" env:"CATLOG_READ_TIMEOUT"`
	WriteTimeout time.Duration `toml:"write_timeout" env:"CATLOG_WRITE_TIMEOUT"`
	// RedirectURL es adonde vuelve el usuario después del login (OAuth o link por email).
	RedirectURL string `toml:"redirect_url" env:"CATLOG_REDIRECT_URL"`
}

type LogConfig struct {
	Level  string `toml:"level" env:"LOG_LEVEL"`
	Format string `toml:"format" env:"LOG_FORMAT"`
	App    string `toml:"app" env:"APP_NAME"`
}

// BackendConfig usa el patrón tagged union: Type decide qué campos aplican.
type BackendConfig struct {
	Type string `toml:"type" env:"CATLOG_BACKEND"` // "memory", "supabase", "postgres" o "sqlite"

	// type == "supabase"
	SupabaseURL       string        `toml:"supabase_url,omitempty" env:"SUPABASE_URL"`
	SupabaseAnonKey   string        `toml:"supabase_anon_key,omitempty" env:"SUPABASE_ANON_KEY"`
	SupabaseJWTSecret string        `toml:"supabase_jwt_secret,omitempty" env:"SUPABASE_JWT_SECRET"`
	Timeout           time.Duration `toml:"timeout,omitempty" env:"CATLOG_BACKEND_TIMEOUT"`

	// type == "postgres"
	PostgresDSN string `toml:"postgres_dsn,omitempty" env:"DB_DSN"`

	// type == "sqlite"
	SQLitePath string `toml:"sqlite_path,omitempty" env:"CATLOG_SQLITE_PATH"`

	// postgres/sqlite: aplica migraciones pendientes al arrancar.
	AutoMigrate bool `toml:"auto_migrate" env:"CATLOG_AUTO_MIGRATE"`
}

// AuthConfig configura la identidad de los backends SQL.
type AuthConfig struct {
	Secret       string        `toml:"secret,omitempty" env:"CATLOG_AUTH_SECRET"`
	LinkTTL      time.Duration `toml:"link_ttl,omitempty" env:"CATLOG_LINK_TTL"`
	SessionTTL   time.Duration `toml:"session_ttl,omitempty" env:"CATLOG_SESSION_TTL"`
	SessionStore string        `toml:"session_store" env:"CATLOG_SESSION_STORE"` // "memory" o "redis"

	// session_store == "redis"
	RedisAddr     string `toml:"redis_addr,omitempty" env:"REDIS_ADDR"`
	RedisPassword string `toml:"redis_password,omitempty" env:"REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db,omitempty" env:"REDIS_DB"`
}

type MediaConfig struct {
	Type string `toml:"type" env:"CATLOG_MEDIA"` // "dataurl" o "minio"

	// type == "minio"
	MinIOEndpoint   string `toml:"minio_endpoint,omitempty" env:"MINIO_ENDPOINT"`
	MinIOAccessKey  string `toml:"minio_access_key,omitempty" env:"MINIO_ACCESS_KEY"`
	MinIOSecretKey  string `toml:"minio_secret_key,omitempty" env:"MINIO_SECRET_KEY"`
	MinIOBucket     string `toml:"minio_bucket,omitempty" env:"MINIO_BUCKET"`
	MinIOUseSSL     bool   `toml:"minio_use_ssl,omitempty" env:"MINIO_USE_SSL"`
	MinIOPublicBase string `toml:"minio_public_base,omitempty" env:"MINIO_PUBLIC_BASE"`
}

// Default es una configuración local funcional: backend en memoria, imágenes como data URL.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RedirectURL:  "http://localhost:8080/auth/callback",
		},
		Log: LogConfig{Level: "info", Format: "text", App: "cat-lifecycle"},
		Backend: BackendConfig{
			Type:    "memory",
			Timeout: 10 * time.Second,
		},
		Auth:  AuthConfig{SessionStore: "memory"},
		Media: MediaConfig{Type: "dataurl"},
	}
}

// Validate revisa que cada tagged union tenga los campos de su tipo.
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend.Type {
	case "memory":
	case "supabase":
		if c.Backend.SupabaseURL == "" || c.Backend.SupabaseAnonKey == "" {
			errs = append(errs, errors.New("backend.supabase_url and backend.supabase_anon_key required for supabase backend"))
		}
	case "postgres":
		if c.Backend.PostgresDSN == "" {
			errs = append(errs, errors.New("backend.postgres_dsn required for postgres backend"))
		}
	case "sqlite":
		if c.Backend.SQLitePath == "" {
			errs = append(errs, errors.New("backend.sqlite_path required for sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend type: %q", c.Backend.Type))
	}

	if c.Backend.Type == "postgres" || c.Backend.Type == "sqlite" {
		if c.Auth.Secret == "" {
			errs = append(errs, fmt.Errorf("auth.secret required for %s backend", c.Backend.Type))
		}
		switch c.Auth.SessionStore {
		case "memory", "":
		case "redis":
			if c.Auth.RedisAddr == "" {
				errs = append(errs, errors.New("auth.redis_addr required for redis session store"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown session store: %q", c.Auth.SessionStore))
		}
	}

	switch c.Media.Type {
	case "dataurl", "":
	case "minio":
		if c.Media.MinIOEndpoint == "" || c.Media.MinIOBucket == "" {
			errs = append(errs, errors.New("media.minio_endpoint and media.minio_bucket required for minio media"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown media type: %q", c.Media.Type))
	}

	return errors.Join(errs...)
}

// Manager lee y escribe configuración.
type Manager struct{}

// Read decodifica sobre los defaults: lo que el archivo no define conserva su valor.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Load arma la config final: defaults, archivo (si path != ""), .env y entorno.
func Load(path string) (*Config, error) {
	// .env es opcional.
	_ = godotenv.Load()

	cfg := Default()
	if strings.TrimSpace(path) != "" {
		var err error
		cfg, err = ReadFromFile(path)
		if err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv pisa con las variables de entorno definidas; las ausentes no tocan nada.
func ApplyEnv(cfg *Config) error {
	sections := []any{&cfg.Server, &cfg.Log, &cfg.Backend, &cfg.Auth, &cfg.Media}
	for _, s := range sections {
		if err := envdecode.Decode(s); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return fmt.Errorf("env overrides: %w", err)
		}
	}
	return nil
}

// Init escribe un archivo nuevo; falla si ya existe.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
