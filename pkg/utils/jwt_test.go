package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = JWTConfig{Secret: "test-secret", ExpiryHours: 24}

func TestIssueAndParseToken(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	token, expiresAt, err := IssueToken(testJWT, userID, "admin", "admin@example.com", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), expiresAt)

	claims, err := ParseToken(testJWT, token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestParseToken_Expired(t *testing.T) {
	token, _, err := IssueToken(testJWT, uuid.New(), "customer", "a@example.com", time.Now().Add(-48*time.Hour))
	require.NoError(t, err)

	_, err = ParseToken(testJWT, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := IssueToken(testJWT, uuid.New(), "customer", "a@example.com", time.Now())
	require.NoError(t, err)

	_, err = ParseToken(JWTConfig{Secret: "other-secret"}, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(testJWT, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(testJWT, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
