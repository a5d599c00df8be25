// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"petfeeder/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for device persistence.
var (
	// ErrDeviceNotFound is returned when a device is not found.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrDuplicateDevice is returned when trying to provision a device id that already exists.
	ErrDuplicateDevice = errors.New("device already exists")
)

// DeviceRepository defines the interface for durable device operations.
type DeviceRepository interface {
	// FindByID retrieves a device by its unique ID.
	FindByID(ctx context.Context, id string) (*entity.Device, error)

	// Create persists a newly provisioned device.
	Create(ctx context.Context, device *entity.Device) error

	// Update modifies an existing device record.
	Update(ctx context.Context, device *entity.Device) error

	// List retrieves devices ordered by creation time, newest first.
	List(ctx context.Context, limit int) ([]*entity.Device, error)

	// ArchiveSchedule copies a schedule entry into the durable removal log.
	// Callers archive before removing the entry from the device record, so a
	// removed schedule is never silently lost.
	ArchiveSchedule(ctx context.Context, deviceID string, schedule entity.Schedule) error

	// Watch streams the device record on every backend update until ctx is
	// cancelled. The channel is closed on teardown.
	Watch(ctx context.Context, id string) (<-chan *entity.Device, error)
}
