package localauth

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"cat-lifecycle/internal/ports/auth"

	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	email, link string
}

func (m *captureMailer) SendLink(ctx context.Context, email, link string) error {
	m.email, m.link = email, link
	return nil
}

func tokenFrom(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

func TestMagicLinkRoundTrip(t *testing.T) {
	ctx := context.Background()
	mail := &captureMailer{}
	p, err := New(Config{Secret: "s3cret"}, mail, nil)
	require.NoError(t, err)

	require.NoError(t, p.SignInWithOTP(ctx, " Me@Example.com ", "http://localhost:3000/auth/callback"))
	require.Equal(t, "me@example.com", mail.email)

	linkToken := tokenFrom(t, mail.link)
	require.NotEmpty(t, linkToken)

	// El token de link no sirve como sesión.
	_, err = p.Verify(ctx, linkToken)
	require.ErrorIs(t, err, ErrWrongTokenType)

	session, id, err := p.Exchange(ctx, linkToken)
	require.NoError(t, err)
	require.Equal(t, AccountID("me@example.com"), id.ID)

	cur, err := p.CurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, id.ID, cur.ID)

	claims, err := p.Verify(ctx, session)
	require.NoError(t, err)
	require.Equal(t, "me@example.com", claims.Email)

	// Un solo uso.
	_, _, err = p.Exchange(ctx, linkToken)
	require.ErrorIs(t, err, ErrTokenRevoked)

	require.NoError(t, p.SignOut(ctx))
	cur, err = p.CurrentUser(ctx)
	require.NoError(t, err)
	require.Nil(t, cur)

	_, err = p.Verify(ctx, session)
	require.ErrorIs(t, err, ErrTokenRevoked)
}

func TestExpiredLink(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	mail := &captureMailer{}
	p, err := New(Config{Secret: "s3cret", LinkTTL: time.Minute}, mail, nil, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	require.NoError(t, p.SignInWithOTP(ctx, "me@example.com", "http://localhost/cb"))
	now = now.Add(2 * time.Minute)

	_, _, err = p.Exchange(ctx, tokenFrom(t, mail.link))
	require.Error(t, err)
}

func TestForeignSignatureRejected(t *testing.T) {
	ctx := context.Background()
	mail := &captureMailer{}
	a, _ := New(Config{Secret: "a"}, mail, nil)
	b, _ := New(Config{Secret: "b"}, nil, nil)

	require.NoError(t, a.SignInWithOTP(ctx, "me@example.com", "http://localhost/cb"))
	_, _, err := b.Exchange(ctx, tokenFrom(t, mail.link))
	require.Error(t, err)
}

func TestInvalidSessionMeansSignedOut(t *testing.T) {
	p, err := New(Config{Secret: "s3cret"}, nil, nil)
	require.NoError(t, err)

	p.SetSession("garbage")
	id, err := p.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Nil(t, id)
}

func TestOAuthUnsupportedAndConfig(t *testing.T) {
	p, err := New(Config{Secret: "s3cret"}, nil, nil)
	require.NoError(t, err)

	_, err = p.SignInWithOAuth(context.Background(), auth.ProviderGoogle, "")
	require.ErrorIs(t, err, auth.ErrUnsupported)

	require.Error(t, p.SignInWithOTP(context.Background(), "not-an-email", ""))

	_, err = New(Config{}, nil, nil)
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestAccountID_Stable(t *testing.T) {
	require.Equal(t, AccountID("A@b.com"), AccountID(" a@B.COM"))
	require.NotEqual(t, AccountID("a@b.com"), AccountID("c@b.com"))
}

func TestRedisRevocations(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	r, err := NewRedisRevocations(addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer r.Close()

	ctx := context.Background()
	id := "test-" + time.Now().Format("150405.000000000")
	ok, err := r.Revoked(ctx, id)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.Revoke(ctx, id, time.Now().Add(time.Minute)))
	ok, err = r.Revoked(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
}
