// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"petfeeder/internal/domain/entity"
)

// ErrAccountNotFound is a domain-specific error returned when an account record is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByUID retrieves a single account by the identity provider subject.
	FindByUID(ctx context.Context, uid string) (*entity.UserAccount, error)

	// Create persists a new account record.
	Create(ctx context.Context, account *entity.UserAccount) error

	// Update modifies an existing account record.
	Update(ctx context.Context, account *entity.UserAccount) error

	// List retrieves accounts ordered by creation time, newest first.
	List(ctx context.Context, limit int) ([]*entity.UserAccount, error)

	// Watch streams the account record on every backend update until ctx is
	// cancelled. The channel is closed on teardown.
	Watch(ctx context.Context, uid string) (<-chan *entity.UserAccount, error)
}
