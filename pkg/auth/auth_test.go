package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("s3cret", "not-a-hash"))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateAndValidateToken(t *testing.T) {
	issued := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	m, err := NewJWTManager("0123456789abcdef", 24*time.Hour)
	require.NoError(t, err)
	m.WithClock(fixedClock(issued))

	token, err := m.GenerateToken()
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Authenticated)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, issued.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issued.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestExpiredTokenRejected(t *testing.T) {
	issued := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	m, err := NewJWTManager("0123456789abcdef", 24*time.Hour)
	require.NoError(t, err)
	m.WithClock(fixedClock(issued))

	token, err := m.GenerateToken()
	require.NoError(t, err)

	m.WithClock(fixedClock(issued.Add(24*time.Hour + time.Second)))
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	m.WithClock(fixedClock(issued.Add(24 * time.Hour)))
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	m.WithClock(fixedClock(issued.Add(23 * time.Hour)))
	_, err = m.ValidateToken(token)
	assert.NoError(t, err)
}

func TestTokenFromOtherSecretRejected(t *testing.T) {
	a, err := NewJWTManager("aaaaaaaaaaaaaaaa", time.Hour)
	require.NoError(t, err)
	b, err := NewJWTManager("bbbbbbbbbbbbbbbb", time.Hour)
	require.NoError(t, err)

	token, err := a.GenerateToken()
	require.NoError(t, err)

	_, err = b.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRandomSecretPerManager(t *testing.T) {
	a, err := NewJWTManager("", time.Hour)
	require.NoError(t, err)
	b, err := NewJWTManager("", time.Hour)
	require.NoError(t, err)

	token, err := a.GenerateToken()
	require.NoError(t, err)

	_, err = a.ValidateToken(token)
	assert.NoError(t, err)
	_, err = b.ValidateToken(token)
	assert.Error(t, err)
}

func TestUnauthenticatedClaimRejected(t *testing.T) {
	m, err := NewJWTManager("0123456789abcdef", time.Hour)
	require.NoError(t, err)

	claims := &Claims{
		Authenticated: false,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("0123456789abcdef"))
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestGarbageTokenRejected(t *testing.T) {
	m, err := NewJWTManager("0123456789abcdef", time.Hour)
	require.NoError(t, err)

	_, err = m.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, time.Hour, m.GetTokenDuration())
}
