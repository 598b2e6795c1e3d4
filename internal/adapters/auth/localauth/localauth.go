// Package localauth da identidad a los backends SQL: login por link de email
// con tokens firmados de un solo uso y tokens de sesión revocables.
package localauth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"cat-lifecycle/internal/platform/logger"
	"cat-lifecycle/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrTokenRevoked   = errors.New("token revoked")
	ErrWrongTokenType = errors.New("wrong token type")
	ErrNoSecret       = errors.New("localauth: secret is required")
)

const (
	DefaultLinkTTL    = 15 * time.Minute
	DefaultSessionTTL = 7 * 24 * time.Hour

	typeLink    = "link"
	typeSession = "session"
)

// accountNamespace deriva ids estables de cuenta a partir del email.
var accountNamespace = uuid.MustParse("8f0c6f5e-64a7-4c55-9d0b-2a8f1f5bb6d1")

// AccountID es el id de cuenta para un email (minúsculas, sin espacios).
func AccountID(email string) string {
	return uuid.NewSHA1(accountNamespace, []byte(normalizeEmail(email))).String()
}

type Config struct {
	Secret     string
	Issuer     string
	LinkTTL    time.Duration
	SessionTTL time.Duration
}

type tokenClaims struct {
	Email string `json:"email"`
	Type  string `json:"typ"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Provider implementa auth.Provider y auth.AuthVerifier.
type Provider struct {
	secret     []byte
	issuer     string
	linkTTL    time.Duration
	sessionTTL time.Duration

	mailer  Mailer
	revoked RevocationStore
	log     logger.Logger
	now     func() time.Time

	mu    sync.RWMutex
	token string
}

type Option func(*Provider)

func WithClock(now func() time.Time) Option { return func(p *Provider) { p.now = now } }
func WithLogger(l logger.Logger) Option     { return func(p *Provider) { p.log = l } }

func New(cfg Config, mailer Mailer, revoked RevocationStore, opts ...Option) (*Provider, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, ErrNoSecret
	}
	p := &Provider{
		secret:     []byte(cfg.Secret),
		issuer:     strings.TrimSpace(cfg.Issuer),
		linkTTL:    cfg.LinkTTL,
		sessionTTL: cfg.SessionTTL,
		mailer:     mailer,
		revoked:    revoked,
		log:        logger.Nop(),
		now:        time.Now,
	}
	if p.issuer == "" {
		p.issuer = "cat-lifecycle"
	}
	if p.linkTTL <= 0 {
		p.linkTTL = DefaultLinkTTL
	}
	if p.sessionTTL <= 0 {
		p.sessionTTL = DefaultSessionTTL
	}
	if p.revoked == nil {
		p.revoked = NewMemoryRevocations()
	}
	for _, o := range opts {
		o(p)
	}
	if p.mailer == nil {
		p.mailer = NewLogMailer(p.log)
	}
	return p, nil
}

func (p *Provider) SignInWithOAuth(ctx context.Context, provider, redirectTo string) (string, error) {
	return "", fmt.Errorf("%w: oauth %s", auth.ErrUnsupported, provider)
}

// SignInWithOTP envía un link con un token de un solo uso. redirectTo recibe ?token=.
func (p *Provider) SignInWithOTP(ctx context.Context, email, redirectTo string) error {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("localauth: valid email required")
	}

	token, err := p.issue(AccountID(email), email, typeLink, p.linkTTL)
	if err != nil {
		return err
	}

	link, err := buildLink(redirectTo, token)
	if err != nil {
		return err
	}
	if err := p.mailer.SendLink(ctx, email, link); err != nil {
		return fmt.Errorf("localauth: send link: %w", err)
	}
	p.log.Info("sign-in link issued", map[string]any{"email": email})
	return nil
}

// Exchange canjea un token de link por un token de sesión y la deja activa.
func (p *Provider) Exchange(ctx context.Context, linkToken string) (string, *auth.Identity, error) {
	c, err := p.parse(ctx, linkToken, typeLink)
	if err != nil {
		return "", nil, err
	}
	if err := p.revoked.Revoke(ctx, c.ID, c.ExpiresAt.Time); err != nil {
		return "", nil, fmt.Errorf("localauth: consume link: %w", err)
	}

	session, err := p.issue(c.Subject, c.Email, typeSession, p.sessionTTL)
	if err != nil {
		return "", nil, err
	}
	p.SetSession(session)
	return session, &auth.Identity{ID: c.Subject, Email: c.Email}, nil
}

func (p *Provider) SignOut(ctx context.Context) error {
	token := p.session()
	p.SetSession("")
	if token == "" {
		return nil
	}

	c, err := p.parse(ctx, token, typeSession)
	if err != nil {
		// vencido o ya revocado
		return nil
	}
	return p.revoked.Revoke(ctx, c.ID, c.ExpiresAt.Time)
}

func (p *Provider) CurrentUser(ctx context.Context) (*auth.Identity, error) {
	token := p.session()
	if token == "" {
		return nil, nil
	}
	c, err := p.parse(ctx, token, typeSession)
	if err != nil {
		p.log.Debug("session token rejected", map[string]any{"err": err.Error()})
		p.SetSession("")
		return nil, nil
	}
	return &auth.Identity{ID: c.Subject, Email: c.Email}, nil
}

func (p *Provider) SetSession(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = strings.TrimSpace(token)
}

// Verify implementa auth.AuthVerifier para tokens de sesión.
func (p *Provider) Verify(ctx context.Context, token string) (auth.Claims, error) {
	c, err := p.parse(ctx, token, typeSession)
	if err != nil {
		return auth.Claims{}, err
	}
	return auth.Claims{UserID: c.Subject, Email: c.Email, Role: c.Role}, nil
}

func (p *Provider) session() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token
}

func (p *Provider) issue(subject, email, typ string, ttl time.Duration) (string, error) {
	now := p.now()
	claims := tokenClaims{
		Email: email,
		Type:  typ,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    p.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("localauth: sign token: %w", err)
	}
	return signed, nil
}

func (p *Provider) parse(ctx context.Context, token, typ string) (*tokenClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenEmpty
	}

	c := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	},
		jwt.WithIssuer(p.issuer),
		jwt.WithTimeFunc(p.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("jwt parse: %w", err)
	}
	if c.Type != typ {
		return nil, ErrWrongTokenType
	}

	revoked, err := p.revoked.Revoked(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("localauth: revocation lookup: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return c, nil
}

func buildLink(redirectTo, token string) (string, error) {
	redirectTo = strings.TrimSpace(redirectTo)
	if redirectTo == "" {
		return "?token=" + url.QueryEscape(token), nil
	}
	u, err := url.Parse(redirectTo)
	if err != nil {
		return "", fmt.Errorf("localauth: bad redirect: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
