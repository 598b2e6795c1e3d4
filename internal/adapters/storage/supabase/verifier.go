package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cat-lifecycle/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
)

// Verifier valida access tokens de Supabase (HS256 con el JWT secret del proyecto).
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt parse: %w", err)
	}
	if !parsed.Valid {
		return auth.Claims{}, errors.New("jwt invalid")
	}

	out := auth.Claims{
		UserID: getStringClaim(claims, "sub"),
		Email:  getStringClaim(claims, "email"),
		Role:   getStringClaim(claims, "role"),
	}
	if out.UserID == "" {
		return auth.Claims{}, errors.New("jwt missing sub")
	}
	return out, nil
}

func getStringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
