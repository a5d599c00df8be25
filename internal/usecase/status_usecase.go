package usecase

import (
	"context"

	"petfeeder/internal/domain/entity"
)

// StatusUsecase defines the interface for reconciled device status
type StatusUsecase interface {
	// Status returns a one-shot merged view of the device's durable record
	// and its realtime fragment
	Status(ctx context.Context, actor *entity.UserAccount, deviceID string) (*entity.DeviceStatusView, error)

	// Watch streams merged views as either source changes. The stream closes
	// when ctx is cancelled
	Watch(ctx context.Context, actor *entity.UserAccount, deviceID string) (<-chan *entity.DeviceStatusView, error)

	// Dispense pushes a manual feed command and publishes the matching
	// feeder event
	Dispense(ctx context.Context, actor *entity.UserAccount, deviceID string, grams int) error
}
