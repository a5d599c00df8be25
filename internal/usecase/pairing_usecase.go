package usecase

import (
	"context"

	"petfeeder/internal/domain/entity"
)

// ProvisionDeviceInput carries the fields needed to register a factory device
type ProvisionDeviceInput struct {
	DeviceID string `json:"device_id" validate:"required"`
	Firmware string `json:"firmware"`
}

// PairingUsecase defines the interface for device pairing and lifecycle
type PairingUsecase interface {
	// Pair links a device to the actor's account in a single transaction
	Pair(ctx context.Context, actor *entity.UserAccount, deviceID string) (*entity.Device, error)

	// Unlink detaches a device from the actor's account
	Unlink(ctx context.Context, actor *entity.UserAccount, deviceID string) error

	// Provision registers a freshly manufactured device (admin only)
	Provision(ctx context.Context, actor *entity.UserAccount, input *ProvisionDeviceInput) (*entity.Device, error)

	// Calibrate pushes a calibration command with the given reference weight
	Calibrate(ctx context.Context, actor *entity.UserAccount, deviceID string, grams int) error

	// PairingCode renders the QR code a user scans to pair the device
	PairingCode(ctx context.Context, deviceID string) ([]byte, error)

	// ListDevices returns every registered device (admin only)
	ListDevices(ctx context.Context, actor *entity.UserAccount) ([]*entity.Device, error)
}
