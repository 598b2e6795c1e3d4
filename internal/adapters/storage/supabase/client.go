// Package supabase implementa el servicio de persistencia sobre Supabase:
// PostgREST para las tablas y GoTrue para la identidad.
package supabase

import (
	"errors"
	"strings"
	"sync"
	"time"

	"cat-lifecycle/internal/platform/httpclient"
	"cat-lifecycle/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("supabase: url and anon key are required")
)

type Config struct {
	URL       string
	AnonKey   string
	JWTSecret string // opcional: verifica el access token localmente
	Timeout   time.Duration
}

// Client es el backend Supabase. Guarda el access token de la sesión actual.
type Client struct {
	http     *httpclient.Client
	anonKey  string
	verifier auth.AuthVerifier

	mu    sync.RWMutex
	token string
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" || strings.TrimSpace(cfg.AnonKey) == "" {
		return nil, ErrNotConfigured
	}
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.URL), cfg.Timeout)
	if err != nil {
		return nil, err
	}

	c := &Client{
		http:    hc,
		anonKey: strings.TrimSpace(cfg.AnonKey),
	}
	if s := strings.TrimSpace(cfg.JWTSecret); s != "" {
		c.verifier = NewVerifier(s)
	}
	return c, nil
}

func (c *Client) Name() string { return "supabase" }

func (c *Client) Auth() auth.Provider { return c }

// Verifier es nil si no se configuró JWT secret.
func (c *Client) Verifier() auth.AuthVerifier { return c.verifier }

func (c *Client) session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// headers arma apikey + Authorization. Sin sesión se usa la anon key (RLS decide).
func (c *Client) headers(extra map[string]string) map[string]string {
	bearer := c.session()
	if bearer == "" {
		bearer = c.anonKey
	}
	h := map[string]string{
		"apikey":        c.anonKey,
		"Authorization": "Bearer " + bearer,
	}
	for k, v := range extra {
		h[k] = v
	}
	return h
}
