// Package auth verifies Firebase ID tokens for incoming requests.
package auth

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/domain/service"

	firebaseauth "firebase.google.com/go/v4/auth"
)

// firebaseVerifier implements service.TokenVerifier on top of the Firebase
// Auth Admin client.
type firebaseVerifier struct {
	client *firebaseauth.Client
	logger *slog.Logger
}

// NewTokenVerifier creates a Firebase-backed token verifier.
func NewTokenVerifier(client *firebaseauth.Client, logger *slog.Logger) service.TokenVerifier {
	return &firebaseVerifier{
		client: client,
		logger: logger,
	}
}

// Verify checks the ID token signature and expiry and extracts the caller's
// identity. Revoked sessions are treated the same as invalid tokens.
func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (*service.Identity, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, domainerrors.ErrSessionRequired
	}

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		v.logger.Warn("ID token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrTokenInvalid
	}

	identity := &service.Identity{
		UID: token.UID,
	}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}

	return identity, nil
}
