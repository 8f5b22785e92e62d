package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "jwt-test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestVerify_ValidToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	got, err := NewHS256Verifier(testSecret).Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerify_WrongSecret(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: uuid.New().String(),
	})

	_, err := NewHS256Verifier("another-secret").Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerify_ExpiredToken(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})

	_, err := NewHS256Verifier(testSecret).Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerify_SubjectMustBeUUID(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-42",
	})

	_, err := NewHS256Verifier(testSecret).Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerify_MissingSubject(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	_, err := NewHS256Verifier(testSecret).Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewHS256Verifier(testSecret).Verify(context.Background(), "not.a.token")
	assert.Error(t, err)
}
