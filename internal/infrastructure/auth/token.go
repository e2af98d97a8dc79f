package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// Issue returns a signed session for id that expires after ttl.
func (t *TokenIssuer) Issue(id domain.Identity, ttl time.Duration) (*domain.Session, error) {
	now := t.now()
	expires := now.Add(ttl).Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.Session{AccessToken: signed, ExpiresAt: expires.UTC(), Identity: id}, nil
}

// Parse verifies raw and rebuilds its session. Expired or tampered tokens
// yield domain.ErrInvalidToken.
func (t *TokenIssuer) Parse(raw string) (*domain.Session, error) {
	var claims sessionClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, errors.Join(domain.ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Session{
		AccessToken: raw,
		ExpiresAt:   claims.ExpiresAt.Time.UTC(),
		Identity:    domain.Identity{ID: claims.Subject, Email: claims.Email},
	}, nil
}
