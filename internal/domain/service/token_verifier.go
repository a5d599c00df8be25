// Package service defines interfaces for external collaborators the use
// cases depend on: the identity provider, push messaging, event publishing
// and pairing code generation.
package service

import "context"

// Identity is the verified result of an authentication token: the opaque
// subject the identity provider assigned plus the claims the application
// cares about.
type Identity struct {
	UID   string
	Email string
}

// TokenVerifier validates an opaque bearer token from the identity provider
// and resolves it to an Identity.
type TokenVerifier interface {
	// Verify checks the token signature and expiry. Invalid, expired and
	// revoked tokens all fail verification.
	Verify(ctx context.Context, idToken string) (*Identity, error)
}
