package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ombreaffaire/authsvc/domain"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", "authsvc", 7*24*time.Hour)
	user := &domain.User{ID: 42, Name: "Jane", Email: "jane@example.com"}

	token, err := svc.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Jane", claims.Name)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestJWTService_ValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", "authsvc", time.Hour)
	verifier := NewJWTService("secret-b", "authsvc", time.Hour)

	token, err := issuer.Generate(&domain.User{ID: 1, Email: "jane@example.com"})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_ValidateRejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", "authsvc", -time.Minute)

	token, err := svc.Generate(&domain.User{ID: 1, Email: "jane@example.com"})
	require.NoError(t, err)

	// jwt.Parse already fails on exp, so the expiry surfaces as invalid.
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_ValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", "authsvc", time.Hour)

	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_ValidateRejectsUnsignedToken(t *testing.T) {
	svc := NewJWTService("test-secret", "authsvc", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id": 1, "email": "jane@example.com",
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(raw)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("Valid1Pass!")
	require.NoError(t, err)
	assert.NotEqual(t, "Valid1Pass!", hash)

	assert.True(t, svc.Verify(hash, "Valid1Pass!"))
	assert.False(t, svc.Verify(hash, "Wrong1Pass!"))
}
