package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cat-lifecycle/internal/platform/httpclient"
	"cat-lifecycle/internal/ports/auth"
)

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignInWithOAuth arma la URL de /auth/v1/authorize; no hace requests.
func (c *Client) SignInWithOAuth(ctx context.Context, provider, redirectTo string) (string, error) {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		provider = auth.ProviderGoogle
	}
	q := url.Values{}
	q.Set("provider", provider)
	if strings.TrimSpace(redirectTo) != "" {
		q.Set("redirect_to", redirectTo)
	}
	return c.http.BaseURL + "/auth/v1/authorize?" + q.Encode(), nil
}

func (c *Client) SignInWithOTP(ctx context.Context, email, redirectTo string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("supabase: email required")
	}

	path := "/auth/v1/otp"
	if strings.TrimSpace(redirectTo) != "" {
		path += "?" + url.Values{"redirect_to": {redirectTo}}.Encode()
	}
	body := map[string]any{"email": email, "create_user": true}
	if err := c.http.DoJSON(ctx, http.MethodPost, path, c.headers(nil), body, nil); err != nil {
		return mapAuthError("otp", err)
	}
	return nil
}

// SignOut invalida la sesión remota (si hay) y siempre olvida el token local.
func (c *Client) SignOut(ctx context.Context) error {
	token := c.session()
	c.SetSession("")
	if token == "" {
		return nil
	}

	h := map[string]string{
		"apikey":        c.anonKey,
		"Authorization": "Bearer " + token,
	}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/logout", h, nil, nil); err != nil {
		var he *httpclient.HTTPError
		// Token vencido o ya revocado: la sesión ya no existe.
		if errors.As(err, &he) && (he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusNotFound) {
			return nil
		}
		return mapAuthError("logout", err)
	}
	return nil
}

// CurrentUser resuelve la identidad del token actual. Token inválido o vencido => sin sesión.
func (c *Client) CurrentUser(ctx context.Context) (*auth.Identity, error) {
	token := c.session()
	if token == "" {
		return nil, nil
	}

	if c.verifier != nil {
		claims, err := c.verifier.Verify(ctx, token)
		if err == nil {
			return &auth.Identity{ID: claims.UserID, Email: claims.Email}, nil
		}
	}

	h := map[string]string{
		"apikey":        c.anonKey,
		"Authorization": "Bearer " + token,
	}
	var u gotrueUser
	if err := c.http.DoJSON(ctx, http.MethodGet, "/auth/v1/user", h, nil, &u); err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && (he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden) {
			c.SetSession("")
			return nil, nil
		}
		return nil, mapAuthError("user", err)
	}
	if strings.TrimSpace(u.ID) == "" {
		return nil, nil
	}
	return &auth.Identity{ID: u.ID, Email: u.Email}, nil
}

func (c *Client) SetSession(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func mapAuthError(op string, err error) error {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		return fmt.Errorf("supabase auth %s: %w", op, mapError(op, "", err))
	}
	return fmt.Errorf("supabase auth %s: %w", op, err)
}
