package usecase

import (
	"context"

	"petfeeder/internal/domain/entity"
)

// SessionUsecase defines the interface for session and identity resolution
type SessionUsecase interface {
	// Resolve verifies a Firebase ID token and returns the caller's account,
	// provisioning a minimal one when none exists yet
	Resolve(ctx context.Context, idToken string) (*entity.UserAccount, error)

	// Watch streams live account snapshots for a uid. Attaching a new watch
	// for the same uid tears the previous listener down first. The returned
	// release func detaches this listener only; calling it after a
	// replacement attached leaves the replacement running
	Watch(ctx context.Context, uid string) (<-chan *entity.UserAccount, func(), error)
}
