package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("super-secret")
	tok, err := svc.GenerateToken("user-123")
	require.NoError(t, err)

	got, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestGenerateToken_Payload(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewJWTService("k", WithClock(fixedClock(issued)))
	tok, err := svc.GenerateToken("abc")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims["id"])
	assert.Equal(t, float64(issued.Add(time.Hour).Unix()), claims["exp"])
}

func TestGenerateToken_EmptyUserID(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService("k").GenerateToken("")
	require.Error(t, err)
}

func TestValidateToken_ExpiryWindow(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tok, err := NewJWTService("k", WithClock(fixedClock(issued))).GenerateToken("u1")
	require.NoError(t, err)

	within := NewJWTService("k", WithClock(fixedClock(issued.Add(59*time.Minute))))
	got, err := within.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", got)

	after := NewJWTService("k", WithClock(fixedClock(issued.Add(61*time.Minute))))
	_, err = after.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidateToken_CustomTTL(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tok, err := NewJWTService("k", WithTTL(time.Minute), WithClock(fixedClock(issued))).GenerateToken("u1")
	require.NoError(t, err)

	_, err = NewJWTService("k", WithClock(fixedClock(issued.Add(2*time.Minute)))).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewJWTService("right-secret").GenerateToken("u2")
	require.NoError(t, err)

	_, err = NewJWTService("wrong-secret").ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateToken_UnexpectedAlgorithm(t *testing.T) {
	t.Parallel()

	claims := Claims{
		UserID: "u3",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewJWTService("k").ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("k")
	for _, tok := range []string{"", "not.a.jwt", "abc", "a.b"} {
		_, err := svc.ValidateToken(tok)
		assert.ErrorIs(t, err, ErrMalformed, "token %q", tok)
	}
}

func TestValidateToken_MissingClaims(t *testing.T) {
	t.Parallel()

	secret := []byte("k")

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": "u4",
	}).SignedString(secret)
	require.NoError(t, err)

	svc := NewJWTService(string(secret))
	_, err = svc.ValidateToken(noID)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = svc.ValidateToken(noExp)
	assert.ErrorIs(t, err, ErrMalformed)
}
