package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/core/domain"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	id := domain.Identity{ID: "user-1", Email: "ann@example.com"}

	session, err := issuer.Issue(id, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)

	parsed, err := issuer.Parse(session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, id, parsed.Identity)
	require.WithinDuration(t, session.ExpiresAt, parsed.ExpiresAt, time.Second)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	past := time.Now().Add(-2 * time.Hour)
	issuer.now = func() time.Time { return past }

	session, err := issuer.Issue(domain.Identity{ID: "user-1"}, time.Hour)
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(session.AccessToken)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	session, err := NewTokenIssuer("secret").Issue(domain.Identity{ID: "user-1"}, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenIssuer("other").Parse(session.AccessToken)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret").Parse(signed)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenIssuer_RequiresSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret").Parse(signed)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}
