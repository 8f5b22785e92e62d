// Package identity consumes tokens issued by the external identity
// provider. The core only ever sees the stable user reference (a UUID
// subject claim); profile and session management live elsewhere.
package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verifier resolves a bearer token to the authenticated user reference.
type Verifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

type hs256Verifier struct {
	secret []byte
}

// NewHS256Verifier builds a verifier for HS256-signed tokens sharing a
// secret with the identity provider. Constructed once at startup and
// injected; never cached process-wide.
func NewHS256Verifier(secret string) Verifier {
	return &hs256Verifier{secret: []byte(secret)}
}

func (v *hs256Verifier) Verify(ctx context.Context, token string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, fmt.Errorf("token missing subject")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("subject %q is not a valid user reference: %w", sub, err)
	}

	return userID, nil
}
