package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)

	got, err := claims.UserID()
	assert.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, err := svc.GenerateToken(uuid.New())
	assert.NoError(t, err)

	other := NewJWTService("different-secret")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsTamperedSignature(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, err := svc.GenerateToken(uuid.New())
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	secret := "test-secret"
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)

	svc := NewJWTService(secret)
	_, err = svc.ValidateToken(expired)
	assert.Error(t, err)
}

func TestJWTService_TokenExpiry(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, err := svc.GenerateToken(uuid.New())
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)

	// Tokens are valid for 30 days from issuance.
	expected := time.Now().Add(TokenExpiry)
	assert.WithinDuration(t, expected, claims.ExpiresAt.Time, time.Minute)
}
