// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"petfeeder/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrStatusNotFound is returned when a device has no realtime status fragment.
var ErrStatusNotFound = errors.New("realtime status not found")

// StatusRepository defines the interface for the ephemeral realtime status
// fragment keyed by device id. Writes here are best-effort and never
// transactional: the durable device record stays the source of truth.
type StatusRepository interface {
	// Get reads the current status fragment for a device.
	Get(ctx context.Context, deviceID string) (*entity.RealtimeStatus, error)

	// Init writes a fresh fragment for a newly paired device.
	Init(ctx context.Context, deviceID string, status *entity.RealtimeStatus) error

	// Update patches individual fields of the fragment.
	Update(ctx context.Context, deviceID string, fields map[string]any) error

	// PushCommand appends a command to the device's pending queue.
	PushCommand(ctx context.Context, deviceID string, cmd entity.Command) error

	// Watch streams the status fragment on every observed change until ctx is
	// cancelled. A device without a fragment yields no events until one
	// appears. The channel is closed on teardown.
	Watch(ctx context.Context, deviceID string) (<-chan *entity.RealtimeStatus, error)
}
