package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhive/account-api/internal/core/domain"
)

func TestJWTIssuer_Roundtrip(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	token, err := issuer.Issue("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", subject)
}

func TestJWTIssuer_Expired(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	// Sign a token with the same key whose expiry is already in the past.
	claims := jwt.MapClaims{
		"sub": "user-42",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(expired)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestJWTIssuer_WrongKey(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)
	other := NewJWTIssuer("other-secret", time.Hour)

	token, err := other.Issue("user-42")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTIssuer_Malformed(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	_, err := issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = issuer.Verify("")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTIssuer_RejectsForeignAlgorithm(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	claims := jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTIssuer_MissingSubject(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
