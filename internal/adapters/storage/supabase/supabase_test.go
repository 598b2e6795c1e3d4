package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cat-lifecycle/internal/ports/persistence"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{URL: srv.URL, AnonKey: "anon", Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresURLAndKey(t *testing.T) {
	_, err := New(Config{URL: "http://localhost"})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestSelect_EncodesQuery(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Range", "0-1/2")
		_, _ = w.Write([]byte(`[{"id":"l1"},{"id":"l2"}]`))
	})
	c.SetSession("user-token")

	q := persistence.Select().
		Where(persistence.In("cat_id", "c1", "c2")).
		OrderBy("created_at", true).
		WithCount()
	res, err := c.Select(context.Background(), persistence.HealthLogs, q)
	require.NoError(t, err)

	require.Equal(t, "/rest/v1/health_logs", got.URL.Path)
	require.Equal(t, "in.(c1,c2)", got.URL.Query().Get("cat_id"))
	require.Equal(t, "created_at.desc", got.URL.Query().Get("order"))
	require.Equal(t, "anon", got.Header.Get("apikey"))
	require.Equal(t, "Bearer user-token", got.Header.Get("Authorization"))
	require.Equal(t, "count=exact", got.Header.Get("Prefer"))

	require.Len(t, res.Rows, 2)
	require.Equal(t, 2, res.Count)
}

func TestSelect_EmptyInSkipsRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected, got %s", r.URL)
	})
	res, err := c.Select(context.Background(), persistence.HealthLogs, persistence.Select().Where(persistence.In("cat_id")))
	require.NoError(t, err)
	require.Empty(t, res.Rows)
}

func TestInsert_ReturnsRepresentation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "return=representation", r.Header.Get("Prefer"))
		body, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"name":"나비"}`, string(body))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":"c1","name":"나비","created_at":"2024-05-01T00:00:00Z"}]`))
	})

	row, err := c.Insert(context.Background(), persistence.Cats, json.RawMessage(`{"name":"나비"}`))
	require.NoError(t, err)
	require.Contains(t, string(row), `"id":"c1"`)
}

func TestUpdate_MissingColumnIsColumnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "eq.c1", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"PGRST204","message":"Could not find the 'bcs' column of 'cats' in the schema cache"}`))
	})

	err := c.Update(context.Background(), persistence.Cats, "c1", json.RawMessage(`{"bcs":5}`))
	col, ok := persistence.MissingColumn(err)
	require.True(t, ok)
	require.Equal(t, "bcs", col)
	require.Contains(t, err.Error(), "'bcs'")
}

func TestUpdate_UndefinedColumn(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"42703","message":"column cats.bcs does not exist"}`))
	})

	err := c.Update(context.Background(), persistence.Cats, "c1", json.RawMessage(`{"bcs":5}`))
	col, ok := persistence.MissingColumn(err)
	require.True(t, ok)
	require.Equal(t, "bcs", col)
}

func TestDelete_BackendMessageSurvives(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code":"42501","message":"permission denied for table cats"}`))
	})

	err := c.Delete(context.Background(), persistence.Cats, "c1")
	var be *persistence.BackendError
	require.True(t, errors.As(err, &be))
	require.Equal(t, http.StatusForbidden, be.StatusCode)
	require.Equal(t, "permission denied for table cats", be.Message)
}

func TestParseContentRange(t *testing.T) {
	n, err := parseContentRange("0-24/57")
	require.NoError(t, err)
	require.Equal(t, 57, n)

	n, err = parseContentRange("*/0")
	require.NoError(t, err)
	require.Equal(t, 0, n)

	_, err = parseContentRange("0-24/*")
	require.Error(t, err)
}

func TestQuoteList(t *testing.T) {
	require.Equal(t, `a,"b,c"`, quoteList([]string{"a", "b,c"}))
}

func TestAuth_OAuthURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	u, err := c.SignInWithOAuth(context.Background(), "", "http://localhost:3000")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(strings.SplitN(u, "?", 2)[0], "/auth/v1/authorize"))
	require.Contains(t, u, "provider=google")
	require.Contains(t, u, "redirect_to=http%3A%2F%2Flocalhost%3A3000")
}

func TestAuth_OTP(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/otp", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, c.SignInWithOTP(context.Background(), " me@example.com ", ""))
	require.Equal(t, "me@example.com", body["email"])
	require.Error(t, c.SignInWithOTP(context.Background(), "  ", ""))
}

func TestAuth_CurrentUserRemote(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","email":"me@example.com"}`))
	})

	id, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Nil(t, id)

	c.SetSession("good")
	id, err = c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", id.ID)

	c.SetSession("expired")
	id, err = c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Nil(t, id)
	require.Empty(t, c.session())
}

func TestAuth_SignOutClearsSession(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/auth/v1/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.SignOut(context.Background()))
	require.Equal(t, 0, calls)

	c.SetSession("tok")
	require.NoError(t, c.SignOut(context.Background()))
	require.Equal(t, 1, calls)
	require.Empty(t, c.session())
}

func TestVerifier(t *testing.T) {
	v := NewVerifier("secret")
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u1",
		"email": "me@example.com",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), signed)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "me@example.com", claims.Email)

	_, err = v.Verify(context.Background(), "")
	require.ErrorIs(t, err, ErrTokenEmpty)

	other, _ := tok.SignedString([]byte("other"))
	_, err = v.Verify(context.Background(), other)
	require.Error(t, err)
}
